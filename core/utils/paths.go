package utils

import (
	"path"
	"path/filepath"
	"strings"
)

// HasExtension reports whether name ends with one of exts.
// The comparison ignores case and tolerates extensions given without a dot.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if ext == e {
			return true
		}
	}
	return false
}

// ObjectKey joins a bucket prefix and a relative file path into an object key.
// Separators are normalised to forward slashes and leading slashes dropped.
func ObjectKey(prefix, rel string) string {
	rel = strings.TrimLeft(filepath.ToSlash(rel), "/")
	prefix = strings.Trim(filepath.ToSlash(prefix), "/")
	if prefix == "" {
		return rel
	}
	return path.Join(prefix, rel)
}

// RelativeKey strips prefix from an object key. ok is false when the key
// lies outside the prefix.
func RelativeKey(prefix, key string) (rel string, ok bool) {
	prefix = strings.Trim(filepath.ToSlash(prefix), "/")
	if prefix == "" {
		return key, key != ""
	}
	if !strings.HasPrefix(key, prefix+"/") {
		return "", false
	}
	rel = strings.TrimPrefix(key, prefix+"/")
	return rel, rel != ""
}
