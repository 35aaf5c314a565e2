package lib

import (
	"path/filepath"
	"strings"
)

// PathsSplit splits a path into its directory, base name and extension.
func PathsSplit(path string) (string, string, string) {
	dirname, rest := filepath.Split(path)

	ext := filepath.Ext(rest)
	basename := strings.TrimSuffix(rest, ext)

	return dirname, basename, ext
}
