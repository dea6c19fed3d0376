package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/typocheck/internal/config"
	"github.com/prettymuchbryce/typocheck/internal/fs"
	"github.com/prettymuchbryce/typocheck/internal/pathutil"
	"github.com/prettymuchbryce/typocheck/internal/scan"
	"github.com/prettymuchbryce/typocheck/internal/watcher"
)

var watchOpts checkOptions

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Check files, then re-check them as they change",
	Long: `Check the given paths once, then keep watching them and re-check
each file shortly after it changes.

Runs until interrupted with SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg, err := loadConfig(cmd, &watchOpts)
		if err != nil {
			return err
		}
		return watch(ctx, fs.NewReal(), cfg, watchOpts.mode(), scanRoots(args), cmd.OutOrStdout())
	},
}

func init() {
	addCheckFlags(watchCmd, &watchOpts)
	rootCmd.AddCommand(watchCmd)
}

// watch runs an initial scan of roots and re-scans changed files until ctx
// is cancelled.
func watch(ctx context.Context, afs afero.Fs, cfg *config.Config, mode scan.Mode, roots []string, stdout io.Writer) error {
	var watchRoots []string
	for _, root := range roots {
		if root == scan.StdinPath {
			slog.Warn("standard input cannot be watched")
			continue
		}
		watchRoots = append(watchRoots, root)
	}

	s := newSession(afs, cfg, mode, stdout, nil)
	if err := s.scanner.Run(ctx, watchRoots); err != nil {
		return err
	}

	// Patterns were validated with the config.
	excluder, _ := pathutil.NewExcluder(cfg.Files.Exclude)

	w, err := watcher.New(afs, watchRoots, cfg.Watch.Debounce, func(path string) {
		if skipChanged(cfg.Files, excluder, watchRoots, path) {
			slog.Debug("ignoring change to skipped file", "path", path)
			return
		}
		if err := s.scanner.ScanFile(ctx, path); err != nil {
			slog.Error("failed to check file", "path", path, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}

// skipChanged reports whether the initial scan would have skipped path,
// either because a directory on the way to it or the file itself is hidden
// or excluded.
func skipChanged(files config.FilesConfig, excluder *pathutil.Excluder, roots []string, path string) bool {
	for _, root := range roots {
		if path == root {
			return false
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}

		parts := strings.Split(rel, string(filepath.Separator))
		for i, part := range parts {
			if files.IgnoreHidden && pathutil.IsHidden(part) {
				return true
			}
			if excluder.Excluded(filepath.Join(parts[:i+1]...)) {
				return true
			}
		}
		return false
	}
	return false
}
