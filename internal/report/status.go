package report

import "sync/atomic"

// Status wraps a Reporter and remembers whether any correction or error
// passed through it.
//
// Both flags are latches: once set they stay set for the life of the Status,
// whatever is reported afterwards. Updates are lock-free and never fail, so a
// Status can be shared by any number of goroutines.
type Status struct {
	typosFound  atomic.Bool
	errorsFound atomic.Bool
	reporter    Reporter
}

// NewStatus returns a Status forwarding to reporter.
func NewStatus(reporter Reporter) *Status {
	return &Status{reporter: reporter}
}

// TyposFound reports whether any message satisfying IsCorrection was seen.
func (s *Status) TyposFound() bool {
	return s.typosFound.Load()
}

// ErrorsFound reports whether any message satisfying IsError was seen.
func (s *Status) ErrorsFound() bool {
	return s.errorsFound.Load()
}

// Report latches the flags for m and forwards it unchanged.
func (s *Status) Report(m Message) error {
	// A false predicate must never clear a flag another message already set.
	if IsCorrection(m) {
		s.typosFound.Store(true)
	}
	if IsError(m) {
		s.errorsFound.Store(true)
	}
	return s.reporter.Report(m)
}
