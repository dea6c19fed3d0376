package testutil

import (
	"path/filepath"
	"runtime"
)

// Path creates a platform-independent absolute path by joining parts with the
// OS-specific separator. Use this in tests instead of hardcoded paths so they
// pass on Windows.
//
// On Unix, Path("/", "src", "main.go") returns "/src/main.go".
// On Windows, it returns "C:\\src\\main.go".
//
// A first part of "/" marks an absolute path from the root; anything else is
// joined as-is.
func Path(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}

	if parts[0] == "/" {
		if runtime.GOOS == "windows" {
			// C: alone is relative
			return "C:\\" + filepath.Join(parts[1:]...)
		}
		return filepath.Join(parts...)
	}

	return filepath.Join(parts...)
}
