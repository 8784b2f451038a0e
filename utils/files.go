package utils

import (
	"path/filepath"
	"strings"
)

// FriendlyFileName returns a path relative to the working directory where that is shorter
func FriendlyFileName(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	wd, err := filepath.Abs(".")
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(wd, abs); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return abs
}

// FileExtension returns the lower-cased extension without its dot, or "" if there is none
func FileExtension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
