// Package search locates the file an import statement names.
package search

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// Binary module extension: imported for completeness, never parsed.
const BinaryExt = ".d32"

var macRootRe = regexp.MustCompile(`(?i)^(.*[\\/]mac)([\\/]|$)`)

// Policy is the ordered list of places an import is looked up in.
type Policy struct {
	// Dirs are relative to the detected root. nil selects the legacy layout
	// when the root is named "mac", and the root itself otherwise.
	Dirs []string
	// Extensions are tried in order when the name has none of them.
	Extensions []string
	// Exists is the filesystem probe; nil uses os.Stat.
	Exists func(path string) bool
}

// Default returns the policy of a standard installation.
func Default() Policy {
	return Policy{Extensions: []string{".mac", BinaryExt}}
}

// LegacyDirs returns a copy of the built-in directory list.
func LegacyDirs() []string {
	return slices.Clone(legacyDirs)
}

// Root returns the "mac" directory enclosing dir, or dir itself.
func Root(dir string) string {
	if m := macRootRe.FindStringSubmatch(dir); m != nil {
		return m[1]
	}
	return dir
}

func isLegacyRoot(root string) bool {
	return strings.EqualFold(filepath.Base(root), "mac")
}

func (p Policy) searchDirs(root string) []string {
	if len(p.Dirs) > 0 {
		return p.Dirs
	}
	if isLegacyRoot(root) {
		return legacyDirs
	}
	return []string{""}
}

func (p Policy) extensions() []string {
	if len(p.Extensions) == 0 {
		return Default().Extensions
	}
	return p.Extensions
}

func (p Policy) exists(path string) bool {
	if p.Exists != nil {
		return p.Exists(path)
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Find returns the first existing file for name, or "" when none exists.
// currentDir is the directory of the importing file.
func (p Policy) Find(currentDir, name string) string {
	if name == "" {
		return ""
	}
	exts := p.extensions()
	if HasExtension(name, exts) {
		exts = []string{""}
	}
	root := Root(currentDir)
	for _, dir := range p.searchDirs(root) {
		base := filepath.Join(root, filepath.FromSlash(dir), name)
		for _, ext := range exts {
			if full := base + ext; p.exists(full) {
				return full
			}
		}
	}
	return ""
}

// HasExtension reports whether name already ends with one of exts.
func HasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(exts, func(e string) bool { return strings.EqualFold(e, ext) })
}

// IsBinary reports whether path is a compiled module.
func IsBinary(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BinaryExt)
}
