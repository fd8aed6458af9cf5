package tonesplit

import (
	"path/filepath"
	"strings"
)

const (
	HighlightsSuffix = "_highlights"
	ShadowsSuffix    = "_shadows"
)

// OutputPath inserts suffix between the file name and its extension.
// Leading dots of the base name are part of the name, so ".png" has no
// extension.
func OutputPath(path, suffix string) string {
	ext := filepath.Ext(strings.TrimLeft(filepath.Base(path), "."))
	return strings.TrimSuffix(path, ext) + suffix + ext
}

func HighlightsPath(path string) string { return OutputPath(path, HighlightsSuffix) }

func ShadowsPath(path string) string { return OutputPath(path, ShadowsSuffix) }
