package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/prettymuchbryce/typocheck/internal/config"
	"github.com/prettymuchbryce/typocheck/internal/fs"
	"github.com/prettymuchbryce/typocheck/internal/pathutil"
	"github.com/prettymuchbryce/typocheck/internal/report"
	"github.com/prettymuchbryce/typocheck/internal/scan"
	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// checkOptions holds the flags shared by check and watch.
type checkOptions struct {
	configPath  string
	format      string
	color       string
	exclude     []string
	hidden      bool
	binary      bool
	jobs        int
	files       bool
	identifiers bool
	words       bool
}

var checkOpts checkOptions

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check files for typos (the default command)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, &checkOpts, args)
	},
}

func init() {
	addCheckFlags(checkCmd, &checkOpts)
	rootCmd.AddCommand(checkCmd)
}

func addCheckFlags(c *cobra.Command, o *checkOptions) {
	f := c.Flags()
	f.StringVarP(&o.configPath, "config", "c", "", "path to config file (default ./"+pathutil.ConfigFileName+", then the user config)")
	f.StringVar(&o.format, "format", "", "output format: silent, brief, long or json")
	f.StringVar(&o.color, "color", "", "colorize output: auto, always or never")
	f.StringArrayVar(&o.exclude, "exclude", nil, "glob of paths to skip, in addition to the config (repeatable)")
	f.BoolVar(&o.hidden, "hidden", false, "check hidden files and directories")
	f.BoolVar(&o.binary, "binary", false, "check binary files instead of skipping them")
	f.IntVarP(&o.jobs, "jobs", "j", 0, "files to check in parallel (default GOMAXPROCS)")
	f.BoolVar(&o.files, "files", false, "list the files that would be checked")
	f.BoolVar(&o.identifiers, "identifiers", false, "list the identifiers found")
	f.BoolVar(&o.words, "words", false, "list the words found")
	c.MarkFlagsMutuallyExclusive("files", "identifiers", "words")
}

// mode returns the scan mode selected by the listing flags.
func (o *checkOptions) mode() scan.Mode {
	switch {
	case o.files:
		return scan.ModeFiles
	case o.identifiers:
		return scan.ModeIdentifiers
	case o.words:
		return scan.ModeWords
	default:
		return scan.ModeCheck
	}
}

// apply overrides cfg with the flags that were set on the command line.
func (o *checkOptions) apply(cfg *config.Config, changed func(name string) bool) error {
	if changed("format") {
		format, err := config.ParseFormat(o.format)
		if err != nil {
			return err
		}
		cfg.Output.Format = format
	}
	if changed("color") {
		color, err := config.ParseColorMode(o.color)
		if err != nil {
			return err
		}
		cfg.Output.Color = color
	}
	cfg.Files.Exclude = append(cfg.Files.Exclude, o.exclude...)
	if changed("hidden") {
		cfg.Files.IgnoreHidden = !o.hidden
	}
	if changed("binary") {
		cfg.Files.Binary = o.binary
	}
	if changed("jobs") {
		cfg.Jobs = o.jobs
	}
	return cfg.Validate()
}

// loadConfig resolves the config for the working directory and applies the
// command's flags on top.
func loadConfig(cmd *cobra.Command, o *checkOptions) (*config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, path, err := config.Resolve(fs.NewReal(), pathutil.ExpandTilde(o.configPath), wd)
	if err != nil {
		return nil, err
	}

	SetupLogging(cfg.Logging.Level)
	if path != "" {
		slog.Debug("loaded config", "path", path)
	}

	if err := o.apply(cfg, cmd.Flags().Changed); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCheck(cmd *cobra.Command, o *checkOptions, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}

	code, err := check(cmd.Context(), fs.NewReal(), cfg, o.mode(), scanRoots(args), cmd.OutOrStdout(), cmd.InOrStdin())
	if err != nil {
		return err
	}
	if code != exitOK {
		return &exitError{code: code}
	}
	return nil
}

// session wires a dictionary, renderer and status together for one
// invocation.
type session struct {
	status  *report.Status
	scanner *scan.Scanner
}

func newSession(afs afero.Fs, cfg *config.Config, mode scan.Mode, stdout io.Writer, stdin io.Reader) *session {
	dict := typos.NewDictionary()
	dict.ExtendWords(cfg.Default.ExtendWords)
	dict.ExtendIdentifiers(cfg.Default.ExtendIdentifiers)

	status := report.NewStatus(newRenderer(cfg.Output, stdout))
	scanner := scan.New(afs, dict, status, scan.Options{
		Mode:         mode,
		Exclude:      cfg.Files.Exclude,
		IgnoreHidden: cfg.Files.IgnoreHidden,
		Binary:       cfg.Files.Binary,
		Jobs:         cfg.Jobs,
		Stdin:        stdin,
	})
	return &session{status: status, scanner: scanner}
}

// exitCode maps what the scan found to the process exit status.
// Errors take precedence over typos.
func (s *session) exitCode() int {
	switch {
	case s.status.ErrorsFound():
		return exitFailure
	case s.status.TyposFound():
		return exitTypos
	default:
		return exitOK
	}
}

// check scans roots once and returns the exit code for what it found.
func check(ctx context.Context, afs afero.Fs, cfg *config.Config, mode scan.Mode, roots []string, stdout io.Writer, stdin io.Reader) (int, error) {
	s := newSession(afs, cfg, mode, stdout, stdin)
	if err := s.scanner.Run(ctx, roots); err != nil {
		return exitFailure, err
	}
	return s.exitCode(), nil
}

func newRenderer(out config.OutputConfig, w io.Writer) report.Reporter {
	switch out.Format {
	case config.FormatSilent:
		return report.Silent{}
	case config.FormatBrief:
		return report.NewBriefWithWriter(w, nil)
	case config.FormatJSON:
		return report.NewJSONWithWriter(w)
	default:
		return report.NewLongWithWriter(w, nil, useColor(out.Color))
	}
}

// useColor decides whether the long format is colorized and forces the
// lipgloss color profile to match.
func useColor(mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		lipgloss.SetColorProfile(termenv.ANSI256)
		return true
	case config.ColorNever:
		lipgloss.SetColorProfile(termenv.Ascii)
		return false
	default:
		return !termenv.EnvNoColor() && lipgloss.ColorProfile() != termenv.Ascii
	}
}

func scanRoots(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}
