package typos

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// StatusKind identifies which verdict a Status carries.
type StatusKind int

const (
	StatusInvalid     StatusKind = iota // Flagged, no suggestion (zero value)
	StatusValid                         // Not a typo
	StatusCorrections                   // Flagged with one or more suggestions
)

// Status is the verdict on a single token.
// The zero value is an Invalid status.
type Status struct {
	kind        StatusKind
	corrections []string
}

// Valid returns a status for a token that is not a typo.
func Valid() Status {
	return Status{kind: StatusValid}
}

// Invalid returns a status for a disallowed token with no suggested fix.
func Invalid() Status {
	return Status{kind: StatusInvalid}
}

// Corrections returns a status carrying the given suggestions in order.
// With no suggestions it is equivalent to Invalid.
func Corrections(fixes ...string) Status {
	if len(fixes) == 0 {
		return Invalid()
	}
	return Status{kind: StatusCorrections, corrections: fixes}
}

// Kind reports which verdict the status carries.
func (s Status) Kind() StatusKind {
	return s.kind
}

// IsValid reports whether the token was accepted.
func (s Status) IsValid() bool {
	return s.kind == StatusValid
}

// IsCorrection reports whether the token was flagged, with or without fixes.
func (s Status) IsCorrection() bool {
	return s.kind != StatusValid
}

// List returns the suggested fixes. It is nil unless Kind is StatusCorrections.
func (s Status) List() []string {
	return s.corrections
}

func (s Status) String() string {
	switch s.kind {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	case StatusCorrections:
		return strings.Join(s.corrections, ", ")
	}
	return "unknown"
}

// MarshalJSON encodes the status as "valid", "invalid" or an array of fixes.
func (s Status) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case StatusValid:
		return []byte(`"valid"`), nil
	case StatusCorrections:
		return json.Marshal(s.corrections)
	}
	return []byte(`"invalid"`), nil
}

// UnmarshalJSON accepts the encoding produced by MarshalJSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var word string
	if err := json.Unmarshal(data, &word); err == nil {
		switch word {
		case "valid":
			*s = Valid()
		case "invalid":
			*s = Invalid()
		default:
			return fmt.Errorf("unknown status %q", word)
		}
		return nil
	}

	var fixes []string
	if err := json.Unmarshal(data, &fixes); err != nil {
		return err
	}
	*s = Corrections(fixes...)
	return nil
}
