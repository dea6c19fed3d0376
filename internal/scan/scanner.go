package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/prettymuchbryce/typocheck/internal/fs"
	"github.com/prettymuchbryce/typocheck/internal/pathutil"
	"github.com/prettymuchbryce/typocheck/internal/report"
	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// StdinPath is the root that reads standard input instead of the filesystem.
const StdinPath = report.DefaultPath

// Mode selects what a scan reports.
type Mode int

const (
	ModeCheck       Mode = iota // Report typos
	ModeFiles                   // Report each file that would be checked
	ModeIdentifiers             // Report each identifier
	ModeWords                   // Report each word
)

// Options configures a Scanner.
type Options struct {
	Mode         Mode
	Exclude      []string
	IgnoreHidden bool
	Binary       bool      // check binary files instead of skipping them
	Jobs         int       // files scanned in parallel; <= 0 uses GOMAXPROCS
	Stdin        io.Reader // content for the "-" root; nil means os.Stdin
}

// Scanner walks files and reports what it finds to a Reporter.
// Problems with individual files are reported as report.Error messages and
// do not stop the scan; only a failing Reporter or a cancelled context does.
type Scanner struct {
	fs       afero.Fs
	dict     *typos.Dictionary
	reporter report.Reporter
	opts     Options
}

// New creates a Scanner reading from afs and checking against dict.
func New(afs afero.Fs, dict *typos.Dictionary, reporter report.Reporter, opts Options) *Scanner {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	return &Scanner{
		fs:       afs,
		dict:     dict,
		reporter: reporter,
		opts:     opts,
	}
}

// Run scans every root. Roots may be files or directories; "-" reads stdin.
func (s *Scanner) Run(ctx context.Context, roots []string) error {
	excluder, err := pathutil.NewExcluder(s.opts.Exclude)
	if err != nil {
		if err := s.reporter.Report(report.NewError(err.Error())); err != nil {
			return err
		}
	}

	var files []string
	for _, root := range roots {
		if root == StdinPath {
			if err := s.scanStdin(ctx); err != nil {
				return err
			}
			continue
		}
		found, err := s.walk(root, excluder)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}

	if s.opts.Mode == ModeFiles {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Jobs)
	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return s.scanFile(gctx, path)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

// ScanFile scans a single file, regardless of exclusions.
func (s *Scanner) ScanFile(ctx context.Context, path string) error {
	if s.opts.Mode == ModeFiles {
		return s.reporter.Report(report.NewFile(path))
	}
	return s.scanFile(ctx, path)
}

// walk collects the regular files under root. In ModeFiles it reports them
// as it goes instead.
func (s *Scanner) walk(root string, excluder *pathutil.Excluder) ([]string, error) {
	var files []string
	err := afero.Walk(s.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return s.reportPathError(path, err)
		}

		// Roots were named explicitly, so they are never skipped.
		if path != root {
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			if (s.opts.IgnoreHidden && pathutil.IsHidden(info.Name())) || excluder.Excluded(rel) {
				slog.Debug("skipping", "path", path)
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if !info.Mode().IsRegular() {
			return nil
		}
		if s.opts.Mode == ModeFiles {
			return s.reporter.Report(report.NewFile(path))
		}
		files = append(files, path)
		return nil
	})
	return files, err
}

func (s *Scanner) scanStdin(ctx context.Context) error {
	if s.opts.Mode == ModeFiles {
		return s.reporter.Report(report.NewFile(StdinPath))
	}
	data, err := io.ReadAll(s.opts.Stdin)
	if err != nil {
		return s.reportPathError(StdinPath, err)
	}
	return s.scanContent(ctx, StdinPath, data)
}

func (s *Scanner) scanFile(ctx context.Context, path string) error {
	slog.Debug("scanning", "path", path)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return s.reportPathError(path, err)
	}
	return s.scanContent(ctx, path, data)
}

// scanContent reports on data, the full content of path.
func (s *Scanner) scanContent(ctx context.Context, path string, data []byte) error {
	if !s.opts.Binary && fs.IsBinaryContent(data[:min(len(data), fs.SniffLen)]) {
		return s.reporter.Report(report.NewBinaryFile(path))
	}

	lineNum := 0
	for len(data) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := bytes.IndexByte(data, '\n') + 1
		if end == 0 {
			end = len(data)
		}
		line := data[:end]
		data = data[end:]
		lineNum++

		ctxt := report.FileContext{Path: path, LineNum: lineNum}
		if err := s.scanLine(ctxt, line); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) scanLine(ctxt report.FileContext, line []byte) error {
	for _, ident := range typos.Identifiers(line) {
		var err error
		switch s.opts.Mode {
		case ModeCheck:
			err = s.checkIdent(ctxt, line, ident)
		case ModeIdentifiers:
			err = s.reporter.Report(report.Parse{Context: ctxt, Kind: report.Identifier, Data: ident.Text})
		case ModeWords:
			for _, word := range typos.Words(ident) {
				if err = s.reporter.Report(report.Parse{Context: ctxt, Kind: report.Word, Data: word.Text}); err != nil {
					break
				}
			}
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// checkIdent reports the identifier when the dictionary knows it, and its
// words otherwise.
func (s *Scanner) checkIdent(ctxt report.FileContext, line []byte, ident typos.Token) error {
	if status, ok := s.dict.CheckIdent(ident.Text); ok {
		return s.reportTypo(ctxt, line, ident, status)
	}
	for _, word := range typos.Words(ident) {
		status, ok := s.dict.CheckWord(word.Text)
		if !ok {
			continue
		}
		if err := s.reportTypo(ctxt, line, word, status); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scanner) reportTypo(ctxt report.FileContext, line []byte, tok typos.Token, status typos.Status) error {
	if status.IsValid() {
		return nil
	}
	return s.reporter.Report(report.Typo{
		Context:     ctxt,
		Buffer:      line,
		ByteOffset:  tok.Offset,
		Typo:        tok.Text,
		Corrections: status,
	})
}

func (s *Scanner) reportPathError(path string, err error) error {
	return s.reporter.Report(report.Error{
		Context: report.PathContext{Path: path},
		Msg:     err.Error(),
	})
}
