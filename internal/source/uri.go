package source

import (
	"net/url"
	"path/filepath"
	"strings"
)

// URIToPath converts a file:// URI to an absolute filesystem path.
// Non-file schemes yield "".
func URIToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		// "c:/..." парсится как схема "c"
		if len(parsed.Scheme) != 1 {
			return ""
		}
		parsed = &url.URL{Path: uri}
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	// /C:/dir -> C:/dir
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' {
		path = path[1:]
	}
	path = filepath.FromSlash(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return path
}

// PathToURI converts a filesystem path to a file:// URI.
func PathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	slashed := filepath.ToSlash(path)
	if len(slashed) >= 2 && slashed[1] == ':' {
		slashed = "/" + slashed
	}
	u := url.URL{Scheme: "file", Path: slashed}
	return u.String()
}

// CanonicalURI returns the identity form of a document URI. With upperDrive
// the Windows drive letter is upper-cased (some clients send "c%3A").
func CanonicalURI(uri string, upperDrive bool) string {
	path := URIToPath(uri)
	if path == "" {
		return uri
	}
	out := PathToURI(path)
	if upperDrive {
		const prefix = "file:///"
		if strings.HasPrefix(out, prefix) && len(out) > len(prefix)+1 && out[len(prefix)+1] == ':' {
			out = prefix + strings.ToUpper(out[len(prefix):len(prefix)+1]) + out[len(prefix)+1:]
		}
	}
	return out
}
