package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/prettymuchbryce/typocheck/internal/report"
)

// Recorder is a report.Reporter that keeps a copy of every message.
// Buffers are copied since messages only borrow them.
type Recorder struct {
	mu   sync.Mutex
	msgs []report.Message
	err  error
}

// FailWith makes every later Report call return err.
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Report implements report.Reporter.
func (r *Recorder) Report(m report.Message) error {
	if typo, ok := m.(report.Typo); ok {
		typo.Buffer = append([]byte(nil), typo.Buffer...)
		m = typo
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, m)
	return r.err
}

// Messages returns the recorded messages in arrival order.
func (r *Recorder) Messages() []report.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report.Message(nil), r.msgs...)
}

// Typos returns the recorded Typo messages sorted by location.
func (r *Recorder) Typos() []report.Typo {
	var out []report.Typo
	for _, m := range r.Messages() {
		if typo, ok := m.(report.Typo); ok {
			out = append(out, typo)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := location(out[i].Context), location(out[j].Context)
		if a != b {
			return a < b
		}
		return out[i].ByteOffset < out[j].ByteOffset
	})
	return out
}

// Paths returns the Path of every File and BinaryFile message, in arrival
// order, keyed by which variant carried it.
func (r *Recorder) Paths() (files, binaries []string) {
	for _, m := range r.Messages() {
		switch m := m.(type) {
		case report.File:
			files = append(files, m.Path)
		case report.BinaryFile:
			binaries = append(binaries, m.Path)
		}
	}
	return files, binaries
}

// Errors returns the recorded Error messages.
func (r *Recorder) Errors() []report.Error {
	var out []report.Error
	for _, m := range r.Messages() {
		if e, ok := m.(report.Error); ok {
			out = append(out, e)
		}
	}
	return out
}

// location orders contexts by path, then line.
func location(c report.Context) string {
	switch c := c.(type) {
	case report.FileContext:
		return fmt.Sprintf("%s\x00%010d", c.Path, c.LineNum)
	case report.PathContext:
		return c.Path
	}
	return ""
}
