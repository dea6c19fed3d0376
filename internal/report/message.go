package report

import (
	"strconv"

	"github.com/prettymuchbryce/typocheck/internal/typos"
)

// DefaultPath is the placeholder path used for stdin.
const DefaultPath = "-"

// Message is one event produced while scanning.
//
// The set of implementations is closed: BinaryFile, Typo, File, Parse and
// Error. Consumers switch over all five and carry no default branch, so a new
// variant shows up as a lint failure in every consumer.
//
// Messages borrow their strings and byte slices from the scanner. A Reporter
// must not keep any part of a Message after Report returns; copy what needs
// to outlive the call.
//
//sumtype:decl
type Message interface {
	isMessage()
}

// BinaryFile reports a file that was skipped because its content is binary.
type BinaryFile struct {
	Path string
}

// NewBinaryFile returns a BinaryFile message for path.
func NewBinaryFile(path string) BinaryFile {
	return BinaryFile{Path: path}
}

func (m BinaryFile) String() string {
	return "Skipping binary file " + m.Path
}

// Typo reports a flagged token.
//
// ByteOffset indexes Buffer, which holds the raw line the token was found on.
// Buffer is used for rendering only and is never serialized.
type Typo struct {
	Context     Context
	Buffer      []byte
	ByteOffset  int
	Typo        string
	Corrections typos.Status
}

// WithContext returns a copy of m with its context replaced.
func (m Typo) WithContext(c Context) Typo {
	m.Context = c
	return m
}

// File reports a file that was visited.
type File struct {
	Path string
}

// NewFile returns a File message for path.
func NewFile(path string) File {
	return File{Path: path}
}

// ParseKind is the kind of token a Parse message carries.
type ParseKind int

const (
	Identifier ParseKind = iota
	Word
)

func (k ParseKind) String() string {
	switch k {
	case Identifier:
		return "identifier"
	case Word:
		return "word"
	}
	return "ParseKind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalJSON encodes the kind as its snake_case name.
func (k ParseKind) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// Parse reports a token produced by the tokenizer.
type Parse struct {
	Context Context
	Kind    ParseKind
	Data    string
}

// WithContext returns a copy of m with its context replaced.
func (m Parse) WithContext(c Context) Parse {
	m.Context = c
	return m
}

// Error reports a failure that did not stop the scan.
type Error struct {
	Context Context
	Msg     string
}

// NewError returns an Error message without context.
func NewError(msg string) Error {
	return Error{Msg: msg}
}

// WithContext returns a copy of m with its context replaced.
func (m Error) WithContext(c Context) Error {
	m.Context = c
	return m
}

func (BinaryFile) isMessage() {}
func (Typo) isMessage()       {}
func (File) isMessage()       {}
func (Parse) isMessage()      {}
func (Error) isMessage()      {}

// WithContext attaches c to m. Typo, Parse and Error take the new context,
// replacing any previous one; a nil c clears it. BinaryFile and File have no
// context and are returned unchanged.
func WithContext(m Message, c Context) Message {
	switch m := m.(type) {
	case BinaryFile:
		return m
	case Typo:
		return m.WithContext(c)
	case File:
		return m
	case Parse:
		return m.WithContext(c)
	case Error:
		return m.WithContext(c)
	}
	return m
}

// IsCorrection reports whether m is a Typo that was flagged, with or without
// suggested fixes.
func IsCorrection(m Message) bool {
	switch m := m.(type) {
	case BinaryFile:
		return false
	case Typo:
		return m.Corrections.IsCorrection()
	case File:
		return false
	case Parse:
		return false
	case Error:
		return false
	}
	return false
}

// IsError reports whether m is an Error.
func IsError(m Message) bool {
	switch m.(type) {
	case BinaryFile:
		return false
	case Typo:
		return false
	case File:
		return false
	case Parse:
		return false
	case Error:
		return true
	}
	return false
}

// Context locates a message. A nil Context means no location.
//
//sumtype:decl
type Context interface {
	isContext()
	String() string
}

// FileContext locates a message on a line of a file.
type FileContext struct {
	Path    string
	LineNum int
}

func (c FileContext) String() string {
	return c.Path + ":" + strconv.Itoa(c.LineNum)
}

// PathContext locates a message at a path with no line.
type PathContext struct {
	Path string
}

func (c PathContext) String() string {
	return c.Path
}

func (FileContext) isContext() {}
func (PathContext) isContext() {}

// contextDisplay renders c, or the empty string when there is no context.
func contextDisplay(c Context) string {
	if c == nil {
		return ""
	}
	return c.String()
}
