package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/lipgloss"

	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// Styles for the long reporter
var (
	severityStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")) // Red
	gutterStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4")) // Blue
	caretStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1")) // Red
)

// Long prints each typo as a compiler-style diagnostic with the offending
// source line and a caret marker:
//
//	error: `qick` should be `quick`
//	  --> a.txt:1:4
//	  |
//	1 | the qick brown fox
//	  |     ^^^^
//	  |
//
// The caret run is len(typo) bytes wide while its start column counts
// grapheme clusters, so multi-byte typos get a run longer than the token.
type Long struct {
	mu     sync.Mutex
	w      io.Writer
	logger Logger
	color  bool
}

// NewLong creates a Long reporter writing to stdout and logging through slog.
func NewLong(color bool) *Long {
	return NewLongWithWriter(os.Stdout, nil, color)
}

// NewLongWithWriter creates a Long reporter writing to w.
// A nil logger sends notices to slog.
func NewLongWithWriter(w io.Writer, logger Logger, color bool) *Long {
	return &Long{
		w:      w,
		logger: loggerOrDefault(logger),
		color:  color,
	}
}

// Report implements Reporter.
// Each diagnostic is written with a single call so concurrent reports sharing
// this reporter never interleave within a block.
func (r *Long) Report(m Message) error {
	switch m := m.(type) {
	case BinaryFile:
		r.logger.Log(slog.LevelInfo, m.String())
	case Typo:
		return r.write(r.longTypo(m))
	case File:
		return r.write(m.Path + "\n")
	case Parse:
		return r.write(m.Data + "\n")
	case Error:
		r.logger.Log(slog.LevelError, contextDisplay(m.Context)+": "+m.Msg)
	}
	return nil
}

func (r *Long) write(s string) error {
	if s == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.w, s)
	return err
}

func (r *Long) longTypo(m Typo) string {
	line := displayLine(m.Buffer)
	col := column(line, m.ByteOffset)

	var b strings.Builder
	switch m.Corrections.Kind() {
	case typos.StatusValid:
		return ""
	case typos.StatusInvalid:
		fmt.Fprintf(&b, "%s: `%s` is disallowed\n", r.paint(severityStyle, "error"), m.Typo)
	case typos.StatusCorrections:
		fmt.Fprintf(&b, "%s: `%s` should be %s\n", r.paint(severityStyle, "error"), m.Typo, quoteList(m.Corrections.List()))
	}
	fmt.Fprintf(&b, "  %s %s:%d\n", r.paint(gutterStyle, "-->"), contextDisplay(m.Context), col)

	if fc, ok := m.Context.(FileContext); ok {
		lineNum := strconv.Itoa(fc.LineNum)
		indent := strings.Repeat(" ", len(lineNum))
		bar := r.paint(gutterStyle, "|")
		source := strings.TrimRightFunc(strings.ToValidUTF8(string(line), "�"), unicode.IsSpace)
		carets := strings.Repeat("^", len(m.Typo))

		fmt.Fprintf(&b, "%s %s\n", indent, bar)
		fmt.Fprintf(&b, "%s %s %s\n", r.paint(gutterStyle, lineNum), bar, source)
		fmt.Fprintf(&b, "%s %s %s%s\n", indent, bar, strings.Repeat(" ", col), r.paint(caretStyle, carets))
		fmt.Fprintf(&b, "%s %s\n", indent, bar)
	}

	return b.String()
}

func (r *Long) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}
