package search

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestRoot(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/srv/bank/mac/cb/sub", "/srv/bank/mac"},
		{"/srv/bank/MAC", "/srv/bank/MAC"},
		{`C:\RSBank\Mac\report`, `C:\RSBank\Mac`},
		{"/home/me/project", "/home/me/project"},
		{"/srv/macros/x", "/srv/macros/x"},
	}
	for _, tt := range tests {
		if got := Root(tt.in); got != tt.want {
			t.Errorf("Root(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindPlainRoot(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "lib.mac"))
	touch(t, filepath.Join(dir, "bin.d32"))

	p := Default()
	if got := p.Find(dir, "lib"); got != filepath.Join(dir, "lib.mac") {
		t.Errorf("Find(lib) = %q", got)
	}
	if got := p.Find(dir, "lib.mac"); got != filepath.Join(dir, "lib.mac") {
		t.Errorf("Find(lib.mac) = %q", got)
	}
	if got := p.Find(dir, "bin"); got != filepath.Join(dir, "bin.d32") || !IsBinary(got) {
		t.Errorf("Find(bin) = %q", got)
	}
	if got := p.Find(dir, "missing"); got != "" {
		t.Errorf("Find(missing) = %q", got)
	}
}

func TestFindLegacyLayout(t *testing.T) {
	mac := filepath.Join(t.TempDir(), "mac")
	touch(t, filepath.Join(mac, "util", "common.mac"))
	touch(t, filepath.Join(mac, "cb", "common.mac")) // cb раньше util в списке

	p := Default()
	from := filepath.Join(mac, "report", "balance")
	if got := p.Find(from, "common"); got != filepath.Join(mac, "cb", "common.mac") {
		t.Fatalf("Find(common) = %q", got)
	}
}

func TestFindCustomDirsAndProbe(t *testing.T) {
	var probed []string
	p := Policy{
		Dirs:       []string{"a", "b"},
		Extensions: []string{".mac"},
		Exists: func(path string) bool {
			probed = append(probed, filepath.ToSlash(path))
			return filepath.Base(filepath.Dir(path)) == "b"
		},
	}
	got := p.Find("/root", "x")
	if filepath.ToSlash(got) != "/root/b/x.mac" {
		t.Fatalf("Find = %q", got)
	}
	if len(probed) != 2 || probed[0] != "/root/a/x.mac" {
		t.Fatalf("probe order = %v", probed)
	}
}
