// Package diagfmt renders diagnostic streams: compact one-line records,
// detailed annotated source excerpts, and machine-readable JSON.
package diagfmt

import (
	"path/filepath"
	"strings"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows the path relative to the base directory when the
	// file lives under it, otherwise as given.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// CompactOpts configures the one-line format.
type CompactOpts struct {
	PathMode PathMode
}

// PrettyOpts configures the detailed annotated format.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	// ShowSuggestions renders the suggestion line under the caret bar.
	ShowSuggestions bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	PathMode PathMode
	Max      int // 0 = no truncation
}

// displayPath renders path according to mode, relative to baseDir where
// applicable. Formatting failures fall back to the path as given.
func displayPath(path, baseDir string, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathModeRelative:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, path); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(path)
	case PathModeAuto:
		if baseDir != "" {
			if rel, err := filepath.Rel(baseDir, path); err == nil && !strings.HasPrefix(rel, "..") {
				return rel
			}
		}
	}
	return path
}
