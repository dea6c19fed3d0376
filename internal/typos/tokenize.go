package typos

import (
	"unicode"
	"unicode/utf8"
)

// Token is a piece of a line with its byte offset into that line.
type Token struct {
	Text   string
	Offset int
}

// Identifiers returns the identifiers in line, in order.
//
// An identifier is a maximal run of letters, digits and underscores that
// contains at least one letter and does not start with a digit. Hex literals
// such as 0xdeadbeef are numbers and are skipped.
func Identifiers(line []byte) []Token {
	var tokens []Token
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRune(line[i:])
		if !isIdentRune(r) {
			i += size
			continue
		}

		start := i
		hasLetter := false
		for i < len(line) {
			r, size = utf8.DecodeRune(line[i:])
			if !isIdentRune(r) {
				break
			}
			if unicode.IsLetter(r) {
				hasLetter = true
			}
			i += size
		}

		first, _ := utf8.DecodeRune(line[start:])
		if !hasLetter || unicode.IsDigit(first) {
			continue
		}
		tokens = append(tokens, Token{Text: string(line[start:i]), Offset: start})
	}
	return tokens
}

// Words splits an identifier into its words, keeping offsets relative to the
// line the identifier came from.
//
// Words are separated by underscores, digits and case boundaries:
// "parseHTTPServer_v2" yields "parse", "HTTP", "Server", "v".
func Words(ident Token) []Token {
	var words []Token
	text := ident.Text
	start := -1

	flush := func(end int) {
		if start >= 0 && end > start {
			words = append(words, Token{Text: text[start:end], Offset: ident.Offset + start})
		}
		start = -1
	}

	var prev rune
	for i, r := range text {
		switch {
		case !unicode.IsLetter(r):
			flush(i)
		case start < 0:
			start = i
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			// fooBar
			flush(i)
			start = i
		case unicode.IsLower(r) && unicode.IsUpper(prev) && i-start > utf8.RuneLen(prev):
			// HTTPServer: the last upper-case rune starts the next word.
			boundary := i - utf8.RuneLen(prev)
			flush(boundary)
			start = boundary
		}
		prev = r
	}
	flush(len(text))

	return words
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
