package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"rsl/internal/diag"
	"rsl/internal/driver"
	"rsl/internal/engine"
	"rsl/internal/entity"
	"rsl/internal/token"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

type recorder struct {
	mu     sync.Mutex
	events []driver.Event
}

func (r *recorder) OnEvent(ev driver.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) count(status driver.Status) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.File != "" && ev.Status == status {
			n++
		}
	}
	return n
}

func TestDiscoverHonoursIgnoreFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.mac":           "var a;\n",
		"lib/c.mac":       "var c;\n",
		"skip/d.mac":      "var d;\n",
		"gen.mac":         "var g;\n",
		".hidden/e.mac":   "var e;\n",
		"mod.d32":         "\x00\x01",
		"notes.txt":       "text",
		".gitignore":      "skip/\n",
		driver.IgnoreFile: "# generated\ngen.mac\n",
	})

	files, err := driver.Discover(root, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.mac"),
		filepath.Join(root, "lib", "c.mac"),
	}, files)
}

func TestIndexDirUsesCache(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"lib.mac":  "macro Helper(x)\nend\n",
		"main.mac": "import lib;\nclass Point\n  var x;\nend\nrecord old;\n",
		"bad.mac":  "import nowhere;\n",
	})
	cache, err := driver.NewDiskCache(t.TempDir())
	require.NoError(t, err)

	rec := &recorder{}
	opts := driver.IndexOptions{
		Engine:   engine.DefaultOptions(),
		Jobs:     2,
		Cache:    cache,
		Progress: rec,
	}
	res, err := driver.IndexDir(context.Background(), root, opts)
	require.NoError(t, err)
	require.Len(t, res.Files, 3)
	require.Zero(t, res.CacheHits)
	require.Equal(t, 3, rec.count(driver.StatusDone))

	byName := make(map[string]driver.FileSummary)
	for _, f := range res.Files {
		require.Empty(t, f.Error)
		byName[filepath.Base(f.Path)] = f
	}

	main := byName["main.mac"]
	require.Equal(t, []string{"lib"}, main.Imports)
	var names []string
	for _, s := range main.Symbols {
		names = append(names, s.Container+"/"+s.Name)
	}
	require.Equal(t, []string{"/Point", "Point/x: variant", "/old: record"}, names)
	require.Equal(t, entity.KindClass, main.Symbols[0].Kind)
	require.Equal(t, uint32(2), main.Symbols[0].Line)

	var codes []string
	for _, d := range main.Diagnostics {
		codes = append(codes, d.Code)
	}
	require.ElementsMatch(t, []string{"SYN2001", "LNT5001"}, codes)

	bad := byName["bad.mac"]
	require.Equal(t, 1, bad.Errors())
	require.Equal(t, "IMP4001", bad.Diagnostics[0].Code)

	again, err := driver.IndexDir(context.Background(), root, driver.IndexOptions{
		Engine: engine.DefaultOptions(),
		Cache:  cache,
	})
	require.NoError(t, err)
	require.Equal(t, 3, again.CacheHits)
	require.Equal(t, res.Files, again.Files)
}

func TestIndexFilesReportsUnreadable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"ok.mac": "var ok;\n"})
	missing := filepath.Join(root, "missing.mac")

	rec := &recorder{}
	sums, hits, err := driver.IndexFiles(context.Background(),
		[]string{filepath.Join(root, "ok.mac"), missing},
		driver.IndexOptions{Engine: engine.DefaultOptions(), Progress: rec})
	require.NoError(t, err)
	require.Zero(t, hits)
	require.Len(t, sums, 2)
	require.Empty(t, sums[0].Error)
	require.NotEmpty(t, sums[1].Error)
	require.Equal(t, 1, rec.count(driver.StatusError))
}

func TestIndexFilesCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.mac": "var a;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := driver.IndexFiles(ctx, []string{filepath.Join(root, "a.mac")},
		driver.IndexOptions{Engine: engine.DefaultOptions()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestChannelSink(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.mac": "var a;\n"})
	events := make(chan driver.Event, 16)
	_, err := driver.IndexDir(context.Background(), root, driver.IndexOptions{
		Engine:   engine.DefaultOptions(),
		Progress: driver.ChannelSink(events),
	})
	require.NoError(t, err)
	close(events)

	var got []string
	for ev := range events {
		got = append(got, string(ev.Stage)+":"+string(ev.Status))
	}
	require.Equal(t, []string{
		"discover:working", "discover:done",
		"parse:queued", "parse:working", "parse:done",
	}, got)
}

func TestLoadSession(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"one.mac": "record r;\n",
		"two.mac": "var t = 1;\n",
	})
	sess, err := driver.Load([]string{
		filepath.Join(root, "one.mac"),
		filepath.Join(root, "two.mac"),
		filepath.Join(root, "three.mac"),
	}, engine.DefaultOptions())
	require.Error(t, err)
	require.NotNil(t, sess)
	require.Len(t, sess.Files, 2)
	require.Equal(t, "t: integer", sess.Files[1].Symbols[0].Name)

	bag := sess.Bag(0)
	require.Equal(t, 2, bag.Len())
	require.False(t, bag.HasErrors())
	for _, d := range bag.Items() {
		require.True(t, d.HasTag(diag.TagDeprecated))
	}
}

func TestTokenizeDecodesLegacyEncoding(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "cp.mac")
	// "var имя;" в cp866
	require.NoError(t, os.WriteFile(path, []byte{'v', 'a', 'r', ' ', 0xA8, 0xAC, 0xEF, ';'}, 0o600))

	res, err := driver.Tokenize(path, engine.DefaultOptions().Encoding)
	require.NoError(t, err)
	require.Len(t, res.Tokens, 3)
	require.Equal(t, token.KwVar, res.Tokens[0].Kind)
	require.Equal(t, "имя", res.Tokens[1].Text)
	require.True(t, res.Tokens[2].Is(';'))
}
