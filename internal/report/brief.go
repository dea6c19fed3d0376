package report

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// Brief prints one line per message.
type Brief struct {
	mu     sync.Mutex
	w      io.Writer
	logger Logger
}

// NewBrief creates a Brief reporter writing to stdout and logging through slog.
func NewBrief() *Brief {
	return NewBriefWithWriter(os.Stdout, nil)
}

// NewBriefWithWriter creates a Brief reporter writing to w.
// A nil logger sends notices to slog.
func NewBriefWithWriter(w io.Writer, logger Logger) *Brief {
	return &Brief{
		w:      w,
		logger: loggerOrDefault(logger),
	}
}

// Report implements Reporter.
func (r *Brief) Report(m Message) error {
	switch m := m.(type) {
	case BinaryFile:
		r.logger.Log(slog.LevelInfo, m.String())
	case Typo:
		return r.write(briefTypo(m))
	case File:
		return r.write(m.Path + "\n")
	case Parse:
		return r.write(m.Data + "\n")
	case Error:
		r.logger.Log(slog.LevelError, contextDisplay(m.Context)+": "+m.Msg)
	}
	return nil
}

func (r *Brief) write(s string) error {
	if s == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := io.WriteString(r.w, s)
	return err
}

func briefTypo(m Typo) string {
	col := column(displayLine(m.Buffer), m.ByteOffset)

	switch m.Corrections.Kind() {
	case typos.StatusValid:
		return ""
	case typos.StatusInvalid:
		return fmt.Sprintf("%s:%d: `%s` is disallowed\n", contextDisplay(m.Context), col, m.Typo)
	case typos.StatusCorrections:
		return fmt.Sprintf("%s:%d: `%s` -> %s\n", contextDisplay(m.Context), col, m.Typo, quoteList(m.Corrections.List()))
	}
	return ""
}

// quoteList renders fixes as `a`, `b`.
func quoteList(fixes []string) string {
	quoted := make([]string, len(fixes))
	for i, fix := range fixes {
		quoted[i] = "`" + fix + "`"
	}
	return strings.Join(quoted, ", ")
}
