package typos

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

//go:embed words.csv
var builtinWords string

// Dictionary maps known misspellings to their status.
// Word lookups are case-insensitive; identifier lookups are exact.
// A Dictionary must not be modified once a scan has started.
type Dictionary struct {
	words  map[string]Status
	idents map[string]Status
}

// NewDictionary returns a dictionary loaded with the built-in word list.
func NewDictionary() *Dictionary {
	words, err := parseWordList(strings.NewReader(builtinWords))
	if err != nil {
		panic(fmt.Sprintf("typos: built-in word list: %v", err))
	}
	return &Dictionary{
		words:  words,
		idents: make(map[string]Status),
	}
}

// ExtendWords adds or overrides word entries.
// A value equal to its key accepts the word, an empty value disallows it,
// anything else becomes the suggested correction.
func (d *Dictionary) ExtendWords(entries map[string]string) {
	for word, fix := range entries {
		d.words[strings.ToLower(word)] = entryStatus(word, fix)
	}
}

// ExtendIdentifiers adds or overrides identifier entries, with the same
// value rules as ExtendWords.
func (d *Dictionary) ExtendIdentifiers(entries map[string]string) {
	for ident, fix := range entries {
		d.idents[ident] = entryStatus(ident, fix)
	}
}

// CheckWord looks up a single word. The second result is false when the
// dictionary has no opinion, which callers treat as valid.
// Suggested corrections are re-cased to match word.
func (d *Dictionary) CheckWord(word string) (Status, bool) {
	status, ok := d.words[strings.ToLower(word)]
	if !ok {
		return Valid(), false
	}
	if status.kind != StatusCorrections {
		return status, true
	}

	fixes := make([]string, len(status.corrections))
	for i, fix := range status.corrections {
		fixes[i] = matchCase(word, fix)
	}
	return Corrections(fixes...), true
}

// CheckIdent looks up a whole identifier.
func (d *Dictionary) CheckIdent(ident string) (Status, bool) {
	status, ok := d.idents[ident]
	if !ok {
		return Valid(), false
	}
	return status, true
}

func entryStatus(key, fix string) Status {
	switch {
	case fix == "":
		return Invalid()
	case strings.EqualFold(key, fix):
		return Valid()
	default:
		return Corrections(fix)
	}
}

func parseWordList(r io.Reader) (map[string]Status, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	words := make(map[string]Status)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return words, nil
		}
		if err != nil {
			return nil, err
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("entry %q has no correction", record[0])
		}
		words[strings.ToLower(record[0])] = Corrections(record[1:]...)
	}
}

// matchCase applies the case pattern of word (lower, Title or UPPER) to fix.
func matchCase(word, fix string) string {
	switch {
	case isUpper(word) && utf8.RuneCountInString(word) > 1:
		return strings.ToUpper(fix)
	case startsUpper(word):
		r, size := utf8.DecodeRuneInString(fix)
		return string(unicode.ToUpper(r)) + fix[size:]
	default:
		return fix
	}
}

func isUpper(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
