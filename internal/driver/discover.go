package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"rsl/internal/search"
)

// IgnoreFile holds extra exclusion patterns on top of .gitignore.
const IgnoreFile = ".rslignore"

// DefaultExtensions are the text sources worth parsing; .d32 modules are
// binary and only ever referenced by imports.
var DefaultExtensions = []string{".mac"}

var skipDirs = map[string]struct{}{
	".git":         {},
	".hg":          {},
	".svn":         {},
	"node_modules": {},
	".vscode":      {},
}

// Discover lists the RSL sources under root, sorted, as absolute paths.
// Hidden entries and whatever .gitignore or .rslignore exclude are skipped.
func Discover(root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	gi := loadIgnore(root)

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// недоступный каталог не повод бросать обход
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !search.HasExtension(name, extensions) || search.IsBinary(path) {
			return nil
		}
		if gi != nil {
			if rel, err := filepath.Rel(root, path); err == nil && gi.MatchesPath(filepath.ToSlash(rel)) {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func loadIgnore(root string) *ignore.GitIgnore {
	var lines []string
	for _, name := range []string{".gitignore", IgnoreFile} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")...)
	}
	if len(lines) == 0 {
		return nil
	}
	return ignore.CompileIgnoreLines(lines...)
}
