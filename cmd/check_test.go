package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/prettymuchbryce/typocheck/internal/config"
	"github.com/prettymuchbryce/typocheck/internal/pathutil"
	"github.com/prettymuchbryce/typocheck/internal/scan"
	"github.com/prettymuchbryce/typocheck/internal/testutil"
)

func briefConfig() *config.Config {
	cfg := config.Default()
	cfg.Output.Format = config.FormatBrief
	return cfg
}

func TestCheck_ExitCodes(t *testing.T) {
	root := testutil.Path("/", "project")

	tests := []struct {
		name    string
		entries []testutil.FileEntry
		roots   []string
		want    int
	}{
		{
			name:    "clean",
			entries: []testutil.FileEntry{testutil.File("a.txt").WithContent("the quick brown fox\n")},
			roots:   []string{root},
			want:    exitOK,
		},
		{
			name:    "typos",
			entries: []testutil.FileEntry{testutil.File("a.txt").WithContent("the qick brown fox\n")},
			roots:   []string{root},
			want:    exitTypos,
		},
		{
			name:    "errors win over typos",
			entries: []testutil.FileEntry{testutil.File("a.txt").WithContent("teh\n")},
			roots:   []string{root, testutil.Path("/", "missing")},
			want:    exitFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			afs := afero.NewMemMapFs()
			testutil.WriteTree(t, afs, root, tt.entries...)

			var out bytes.Buffer
			code, err := check(context.Background(), afs, briefConfig(), scan.ModeCheck, tt.roots, &out, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if code != tt.want {
				t.Errorf("exit code %d, want %d (output %q)", code, tt.want, out.String())
			}
		})
	}
}

func TestCheck_BriefOutput(t *testing.T) {
	root := testutil.Path("/", "project")
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, root,
		testutil.File("a.txt").WithContent("ok\nthe qick fox\n"),
	)

	var out bytes.Buffer
	if _, err := check(context.Background(), afs, briefConfig(), scan.ModeCheck, []string{root}, &out, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := fmt.Sprintf("%s:2:4: `qick` -> `quick`\n", testutil.Path("/", "project", "a.txt"))
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestCheck_ConfigDictionary(t *testing.T) {
	root := testutil.Path("/", "project")
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, root,
		testutil.File("a.txt").WithContent("teh flase\n"),
	)

	cfg := briefConfig()
	cfg.Default.ExtendWords = map[string]string{"teh": "teh", "flase": "false"}

	var out bytes.Buffer
	code, err := check(context.Background(), afs, cfg, scan.ModeCheck, []string{root}, &out, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitTypos {
		t.Errorf("expected typos, got exit code %d", code)
	}
	if strings.Contains(out.String(), "`teh`") || !strings.Contains(out.String(), "`flase` -> `false`") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestCheck_JSONFromStdin(t *testing.T) {
	cfg := config.Default()
	cfg.Output.Format = config.FormatJSON

	var out bytes.Buffer
	code, err := check(context.Background(), afero.NewMemMapFs(), cfg, scan.ModeCheck, []string{"-"}, &out, strings.NewReader("teh\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitTypos {
		t.Errorf("expected typos, got exit code %d", code)
	}

	want := `{"type":"typo","path":"-","line_num":1,"byte_offset":0,"typo":"teh","corrections":["the"]}` + "\n"
	if out.String() != want {
		t.Errorf("got %q, want %q", out.String(), want)
	}
}

func TestCheck_ListingModesExitClean(t *testing.T) {
	root := testutil.Path("/", "project")
	afs := afero.NewMemMapFs()
	testutil.WriteTree(t, afs, root,
		testutil.File("a.txt").WithContent("teh\n"),
	)

	var out bytes.Buffer
	code, err := check(context.Background(), afs, briefConfig(), scan.ModeFiles, []string{root}, &out, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != exitOK {
		t.Errorf("expected clean exit, got %d", code)
	}
	if out.String() != testutil.Path("/", "project", "a.txt")+"\n" {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestCheckOptions_Apply(t *testing.T) {
	o := checkOptions{
		format:  "json",
		color:   "never",
		exclude: []string{"*.lock"},
		hidden:  true,
		binary:  true,
		jobs:    3,
	}
	set := map[string]bool{"format": true, "color": true, "hidden": true, "binary": true, "jobs": true}

	cfg := config.Default()
	cfg.Files.Exclude = config.StringList{"vendor/**"}
	if err := o.apply(cfg, func(name string) bool { return set[name] }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Output.Format != config.FormatJSON || cfg.Output.Color != config.ColorNever {
		t.Errorf("unexpected output config %+v", cfg.Output)
	}
	if !reflect.DeepEqual([]string(cfg.Files.Exclude), []string{"vendor/**", "*.lock"}) {
		t.Errorf("unexpected excludes %v", cfg.Files.Exclude)
	}
	if cfg.Files.IgnoreHidden || !cfg.Files.Binary || cfg.Jobs != 3 {
		t.Errorf("unexpected files config %+v jobs=%d", cfg.Files, cfg.Jobs)
	}
}

func TestCheckOptions_ApplyKeepsConfigForUnsetFlags(t *testing.T) {
	o := checkOptions{format: "json"}

	cfg := config.Default()
	cfg.Output.Format = config.FormatBrief
	cfg.Jobs = 5
	if err := o.apply(cfg, func(string) bool { return false }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != config.FormatBrief || cfg.Jobs != 5 {
		t.Errorf("flags that were not set overrode the config: %+v", cfg)
	}
}

func TestCheckOptions_ApplyInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts checkOptions
		flag string
	}{
		{name: "format", opts: checkOptions{format: "xml"}, flag: "format"},
		{name: "color", opts: checkOptions{color: "sometimes"}, flag: "color"},
		{name: "jobs", opts: checkOptions{jobs: -2}, flag: "jobs"},
		{name: "exclude", opts: checkOptions{exclude: []string{"[unclosed"}}, flag: "exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.apply(config.Default(), func(name string) bool { return name == tt.flag })
			if err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCheckOptions_Mode(t *testing.T) {
	tests := []struct {
		opts checkOptions
		want scan.Mode
	}{
		{opts: checkOptions{}, want: scan.ModeCheck},
		{opts: checkOptions{files: true}, want: scan.ModeFiles},
		{opts: checkOptions{identifiers: true}, want: scan.ModeIdentifiers},
		{opts: checkOptions{words: true}, want: scan.ModeWords},
	}
	for _, tt := range tests {
		if got := tt.opts.mode(); got != tt.want {
			t.Errorf("mode(%+v) = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestSkipChanged(t *testing.T) {
	root := testutil.Path("/", "project")
	excluder, err := pathutil.NewExcluder([]string{"vendor", "*.min.js"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files := config.FilesConfig{IgnoreHidden: true}

	tests := []struct {
		path string
		want bool
	}{
		{path: testutil.Path("/", "project", "main.go"), want: false},
		{path: testutil.Path("/", "project", "vendor", "lib", "a.go"), want: true},
		{path: testutil.Path("/", "project", "web", "app.min.js"), want: true},
		{path: testutil.Path("/", "project", ".git", "HEAD"), want: true},
		{path: testutil.Path("/", "project", "src", ".env"), want: true},
		{path: testutil.Path("/", "elsewhere", "vendor", "a.go"), want: false},
		{path: root, want: false},
	}

	for _, tt := range tests {
		if got := skipChanged(files, excluder, []string{root}, tt.path); got != tt.want {
			t.Errorf("skipChanged(%s) = %v, want %v", tt.path, got, tt.want)
		}
	}

	files.IgnoreHidden = false
	if skipChanged(files, excluder, []string{root}, testutil.Path("/", "project", ".env")) {
		t.Error("expected hidden file to be checked when hidden files are allowed")
	}
}

func TestExitError(t *testing.T) {
	err := fmt.Errorf("check: %w", &exitError{code: exitTypos})

	var exit *exitError
	if !errors.As(err, &exit) {
		t.Fatal("expected exitError to unwrap")
	}
	if exit.code != exitTypos {
		t.Errorf("expected code %d, got %d", exitTypos, exit.code)
	}
}

func TestScanRoots(t *testing.T) {
	if got := scanRoots(nil); !reflect.DeepEqual(got, []string{"."}) {
		t.Errorf("expected current directory by default, got %v", got)
	}
	if got := scanRoots([]string{"a", "-"}); !reflect.DeepEqual(got, []string{"a", "-"}) {
		t.Errorf("expected args unchanged, got %v", got)
	}
}
