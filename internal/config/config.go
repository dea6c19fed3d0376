package config

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/prettymuchbryce/typocheck/internal/pathutil"
)

// Config represents the top-level configuration.
type Config struct {
	Files   FilesConfig      `yaml:"files"`
	Default DictionaryConfig `yaml:"default"`
	Output  OutputConfig     `yaml:"output"`
	Jobs    int              `yaml:"jobs"`
	Watch   WatchConfig      `yaml:"watch"`
	Logging LoggingConfig    `yaml:"logging"`
}

// FilesConfig controls which files a scan visits.
type FilesConfig struct {
	Exclude      StringList `yaml:"exclude"`
	IgnoreHidden bool       `yaml:"ignore-hidden"`
	Binary       bool       `yaml:"binary"`
}

// DictionaryConfig extends the built-in dictionary.
// A value equal to its key accepts the word, an empty value disallows it,
// anything else is the correction.
type DictionaryConfig struct {
	ExtendWords       map[string]string `yaml:"extend-words"`
	ExtendIdentifiers map[string]string `yaml:"extend-identifiers"`
}

// OutputConfig selects how results are rendered.
type OutputConfig struct {
	Format Format    `yaml:"format"`
	Color  ColorMode `yaml:"color"`
}

// WatchConfig represents watch-mode configuration.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Format is an output format.
type Format string

const (
	FormatSilent Format = "silent"
	FormatBrief  Format = "brief"
	FormatLong   Format = "long"
	FormatJSON   Format = "json"
)

// ParseFormat validates s as an output format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatSilent, FormatBrief, FormatLong, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q (must be silent, brief, long, or json)", s)
}

// ColorMode controls terminal colors in long output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates s as a color mode.
func ParseColorMode(s string) (ColorMode, error) {
	switch c := ColorMode(s); c {
	case ColorAuto, ColorAlways, ColorNever:
		return c, nil
	}
	return "", fmt.Errorf("invalid color mode %q (must be auto, always, or never)", s)
}

// DefaultFilesConfig returns the default file selection.
func DefaultFilesConfig() FilesConfig {
	return FilesConfig{
		IgnoreHidden: true,
	}
}

// DefaultOutputConfig returns the default output configuration.
func DefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Format: FormatLong,
		Color:  ColorAuto,
	}
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		Debounce: 500 * time.Millisecond,
	}
}

// DefaultLoggingConfig returns the default logging configuration.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: "warn",
	}
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Files:   DefaultFilesConfig(),
		Output:  DefaultOutputConfig(),
		Watch:   DefaultWatchConfig(),
		Logging: DefaultLoggingConfig(),
	}
}

// Load reads and parses a configuration file using the real filesystem.
func Load(path string) (*Config, error) {
	return LoadWithFs(path, afero.NewOsFs())
}

// LoadWithFs reads and parses a configuration file using the provided filesystem.
// Fields missing from the file keep their defaults.
func LoadWithFs(path string, afs afero.Fs) (*Config, error) {
	expanded := pathutil.ExpandTilde(path)

	data, err := afero.ReadFile(afs, expanded)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", expanded, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", expanded, err)
	}

	return config, nil
}

// Validate checks values that YAML decoding alone cannot.
func (c *Config) Validate() error {
	if _, err := ParseFormat(string(c.Output.Format)); err != nil {
		return err
	}
	if _, err := ParseColorMode(string(c.Output.Color)); err != nil {
		return err
	}
	if c.Jobs < 0 {
		return fmt.Errorf("jobs must not be negative, got %d", c.Jobs)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q (must be debug, info, warn, or error)", c.Logging.Level)
	}
	if _, err := pathutil.NewExcluder(c.Files.Exclude); err != nil {
		return err
	}
	return nil
}
