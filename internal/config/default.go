package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/typocheck/internal/pathutil"
)

//go:embed config-example.yaml
var defaultConfigContent string

// WriteDefaultConfig writes the example config to configPath unless a file
// already exists there. It reports whether a file was created.
func WriteDefaultConfig(afs afero.Fs, configPath string) (bool, error) {
	expanded := pathutil.ExpandTilde(configPath)

	if _, err := afs.Stat(expanded); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	dir := filepath.Dir(expanded)
	if err := afs.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory %s: %w", dir, err)
	}

	if err := afero.WriteFile(afs, expanded, []byte(defaultConfigContent), 0644); err != nil {
		return false, fmt.Errorf("failed to create default config %s: %w", expanded, err)
	}

	slog.Info("created default config", "path", expanded)
	return true, nil
}

// Resolve loads the config for a scan started in dir. An explicit path must
// exist; otherwise the project or user config is used when present, and the
// defaults when not.
func Resolve(afs afero.Fs, explicit, dir string) (*Config, string, error) {
	path := explicit
	if path == "" {
		found, ok := pathutil.FindConfig(afs, dir)
		if !ok {
			return Default(), "", nil
		}
		path = found
	}

	cfg, err := LoadWithFs(path, afs)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, path, nil
}
