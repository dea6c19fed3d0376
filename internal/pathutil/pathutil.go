package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandTilde expands a leading ~ in a path to the user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandTilde(path string) string {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if rest == "" {
		return home
	}
	return filepath.Join(home, rest[1:])
}

// IsHidden reports whether a file or directory name is hidden (dot-prefixed).
// "." and ".." are not hidden.
func IsHidden(name string) bool {
	return len(name) > 1 && name[0] == '.' && name != ".."
}

// Excluder decides which paths a scan skips, using doublestar patterns.
//
// A pattern without a slash matches the base name at any depth ("*.min.js",
// "node_modules"). A pattern with a slash matches the slash-separated path
// relative to the scan root ("vendor/**", "docs/*.txt").
type Excluder struct {
	patterns []string
}

// NewExcluder validates patterns and returns an Excluder for them.
func NewExcluder(patterns []string) (*Excluder, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Excluder{patterns: patterns}, nil
}

// Excluded reports whether rel, a path relative to the scan root, is excluded.
func (e *Excluder) Excluded(rel string) bool {
	if e == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := rel[strings.LastIndex(rel, "/")+1:]

	for _, p := range e.patterns {
		target := rel
		if !strings.Contains(p, "/") {
			target = base
		}
		// Patterns are validated up front, so Match cannot fail here.
		if matched, _ := doublestar.Match(p, target); matched {
			return true
		}
	}
	return false
}
