package config

import (
	"bytes"
	"reflect"
	"testing"
	"text/template"
	"time"

	"github.com/prettymuchbryce/typocheck/internal/pathutil"
	"github.com/prettymuchbryce/typocheck/internal/testutil"

	"github.com/spf13/afero"
)

// renderYAML renders a YAML template with the given data.
func renderYAML(t *testing.T, tmpl string, data any) string {
	t.Helper()
	var buf bytes.Buffer
	template.Must(template.New("yaml").Parse(tmpl)).Execute(&buf, data)
	return buf.String()
}

func TestLoadWithFs_ValidConfig(t *testing.T) {
	configPath := testutil.Path("/", "project", ".typocheck.yaml")

	fs := afero.NewMemMapFs()
	configYAML := renderYAML(t, `
files:
  exclude:
    - "{{.Vendor}}"
    - "*.min.js"
  ignore-hidden: false
  binary: true
default:
  extend-words:
    teh: the
    foo: ""
  extend-identifiers:
    HashMpa: HashMap
output:
  format: json
  color: never
jobs: 4
watch:
  debounce: 1s
logging:
  level: debug
`, map[string]string{"Vendor": "vendor/**"})
	afero.WriteFile(fs, configPath, []byte(configYAML), 0644)

	cfg, err := LoadWithFs(configPath, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual([]string(cfg.Files.Exclude), []string{"vendor/**", "*.min.js"}) {
		t.Errorf("unexpected excludes: %v", cfg.Files.Exclude)
	}
	if cfg.Files.IgnoreHidden {
		t.Error("expected ignore-hidden false")
	}
	if !cfg.Files.Binary {
		t.Error("expected binary true")
	}
	if cfg.Default.ExtendWords["teh"] != "the" {
		t.Errorf("expected teh -> the, got %q", cfg.Default.ExtendWords["teh"])
	}
	if v, ok := cfg.Default.ExtendWords["foo"]; !ok || v != "" {
		t.Errorf("expected foo to be disallowed, got %q (present=%v)", v, ok)
	}
	if cfg.Default.ExtendIdentifiers["HashMpa"] != "HashMap" {
		t.Errorf("unexpected identifiers: %v", cfg.Default.ExtendIdentifiers)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("expected format json, got %q", cfg.Output.Format)
	}
	if cfg.Output.Color != ColorNever {
		t.Errorf("expected color never, got %q", cfg.Output.Color)
	}
	if cfg.Jobs != 4 {
		t.Errorf("expected 4 jobs, got %d", cfg.Jobs)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
}

func TestLoadWithFs_DefaultValues(t *testing.T) {
	configPath := testutil.Path("/", "config.yaml")

	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, configPath, []byte("files:\n  exclude: \"*.lock\"\n"), 0644)

	cfg, err := LoadWithFs(configPath, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual([]string(cfg.Files.Exclude), []string{"*.lock"}) {
		t.Errorf("expected single exclude, got %v", cfg.Files.Exclude)
	}
	if !cfg.Files.IgnoreHidden {
		t.Error("expected ignore-hidden to default to true")
	}
	if cfg.Output != DefaultOutputConfig() {
		t.Errorf("expected default output, got %+v", cfg.Output)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected default logging level 'warn', got %q", cfg.Logging.Level)
	}
}

func TestLoadWithFs_EmptyConfig(t *testing.T) {
	configPath := testutil.Path("/", "config.yaml")

	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, configPath, []byte(""), 0644)

	cfg, err := LoadWithFs(configPath, fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadWithFs_FileNotFound(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadWithFs(testutil.Path("/", "nonexistent.yaml"), fs)
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestLoadWithFs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "malformed yaml", yaml: "files:\n  exclude: [unclosed\n"},
		{name: "unknown format", yaml: "output:\n  format: xml\n"},
		{name: "unknown color", yaml: "output:\n  color: sometimes\n"},
		{name: "negative jobs", yaml: "jobs: -1\n"},
		{name: "bad level", yaml: "logging:\n  level: loud\n"},
		{name: "bad exclude pattern", yaml: "files:\n  exclude: \"[unclosed\"\n"},
		{name: "bad debounce", yaml: "watch:\n  debounce: soon\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := testutil.Path("/", "config.yaml")
			fs := afero.NewMemMapFs()
			afero.WriteFile(fs, configPath, []byte(tt.yaml), 0644)

			if _, err := LoadWithFs(configPath, fs); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"silent", "brief", "long", "json"} {
		f, err := ParseFormat(s)
		if err != nil {
			t.Errorf("ParseFormat(%q): unexpected error: %v", s, err)
		}
		if string(f) != s {
			t.Errorf("ParseFormat(%q) = %q", s, f)
		}
	}
	if _, err := ParseFormat("LONG"); err == nil {
		t.Error("expected error for upper-case format")
	}
}

func TestExampleConfigIsValid(t *testing.T) {
	configPath := testutil.Path("/", "project", pathutil.ConfigFileName)
	fs := afero.NewMemMapFs()

	created, err := WriteDefaultConfig(fs, configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatal("expected config to be created")
	}

	cfg, err := LoadWithFs(configPath, fs)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if len(cfg.Files.Exclude) != 3 {
		t.Errorf("expected 3 example excludes, got %v", cfg.Files.Exclude)
	}
}

func TestWriteDefaultConfig_KeepsExisting(t *testing.T) {
	configPath := testutil.Path("/", "project", pathutil.ConfigFileName)
	fs := afero.NewMemMapFs()
	afero.WriteFile(fs, configPath, []byte("jobs: 2\n"), 0644)

	created, err := WriteDefaultConfig(fs, configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected existing config to be kept")
	}

	data, _ := afero.ReadFile(fs, configPath)
	if string(data) != "jobs: 2\n" {
		t.Errorf("existing config was overwritten: %q", data)
	}
}

func TestResolve(t *testing.T) {
	dir := testutil.Path("/", "project")
	fs := afero.NewMemMapFs()
	fs.MkdirAll(dir, 0755)

	cfg, path, err := Resolve(fs, "", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" || !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("expected defaults with no path, got %q %+v", path, cfg)
	}

	local := testutil.Path("/", "project", pathutil.ConfigFileName)
	afero.WriteFile(fs, local, []byte("jobs: 3\n"), 0644)

	cfg, path, err = Resolve(fs, "", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != local || cfg.Jobs != 3 {
		t.Errorf("expected project config, got %q jobs=%d", path, cfg.Jobs)
	}

	if _, _, err := Resolve(fs, testutil.Path("/", "missing.yaml"), dir); err == nil {
		t.Error("expected error for missing explicit config")
	}
}
