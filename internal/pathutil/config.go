package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
)

// ConfigFileName is the name of the per-project config file.
const ConfigFileName = ".typocheck.yaml"

// UserConfigPath returns the platform-appropriate user-level config file path.
func UserConfigPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("APPDATA not set and cannot determine home directory: %w", err)
			}
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		return filepath.Join(appData, "typocheck", "config.yaml"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", "typocheck", "config.yaml"), nil
	}
}

// FindConfig returns the config file that applies to a scan started in dir:
// dir/.typocheck.yaml if present, otherwise the user config if present.
// The second result is false when neither exists.
func FindConfig(afs afero.Fs, dir string) (string, bool) {
	candidates := []string{filepath.Join(dir, ConfigFileName)}
	if user, err := UserConfigPath(); err == nil {
		candidates = append(candidates, user)
	}

	for _, path := range candidates {
		if info, err := afs.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}
