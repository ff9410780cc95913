// Package rawstring maps decoded string-literal values back onto the raw source
// text of the literal, so findings inside a string can point at exact columns
// even when the literal contains escape sequences or line continuations.
package rawstring

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	// ErrRawMismatch reports a decoded value that cannot come from the raw text.
	ErrRawMismatch = errors.New("decoded value does not match raw literal text")
	// ErrUnmatchedEscape reports an escape introducer with no valid sequence after it.
	ErrUnmatchedEscape = errors.New("unmatched escape sequence in raw literal text")
)

// escapeSequence matches one JavaScript string escape at the start of the input.
//
// Besides the named and numeric escapes it accepts line continuations (which
// decode to nothing) and "useless" escapes of any other character, which decode
// to the character itself. A \u escape for a high surrogate followed by one for
// a low surrogate is a single sequence, since both decode to one code point.
var escapeSequence = regexp.MustCompile(`^\\(?:` +
	`\r\n|[\n\r\x{2028}\x{2029}]` +
	`|[0-3][0-7]{0,2}|[4-7][0-7]?|[89]` +
	`|['"\\bfnrtv]` +
	`|u[dD][89abAB][0-9a-fA-F]{2}\\u[dD][c-fC-F][0-9a-fA-F]{2}` +
	`|u[0-9a-fA-F]{4}` +
	`|u\{[0-9a-fA-F]{1,6}\}` +
	`|x[0-9a-fA-F]{2}` +
	`|[^'"\\bfnrtvux0-9\r\n\x{2028}\x{2029}])`)

// Entry maps one character of the decoded value to the raw text.
// Offset is relative to the start of the raw literal (the opening quote is at
// offset 0); Width is the number of raw bytes that produced the character.
type Entry struct {
	Char   rune
	Offset int
	Width  int
}

// End returns the raw offset just past the character.
func (e Entry) End() int {
	return e.Offset + e.Width
}

// MapIndices returns one Entry per character of value, in order.
//
// raw must be the literal exactly as written, including its quotes, and value
// its decoded string value.
func MapIndices(raw, value string) ([]Entry, error) {
	entries := make([]Entry, 0, utf8.RuneCountInString(value))

	// Without escapes the inner raw text is the value itself.
	if len(raw) >= 2 && raw[1:len(raw)-1] == value {
		for i, ch := range value {
			entries = append(entries, Entry{Char: ch, Offset: i + 1, Width: utf8.RuneLen(ch)})
		}
		return entries, nil
	}

	pos := 1 // skip the opening quote
	for index, ch := range []rune(value) {
		for {
			if pos >= len(raw) {
				return nil, fmt.Errorf("%w: value character %d (%q) is past the end of %q",
					ErrRawMismatch, index, ch, raw)
			}

			rawCh, size := utf8.DecodeRuneInString(raw[pos:])
			if rawCh == '\\' {
				seq := escapeSequence.FindString(raw[pos:])
				if seq == "" {
					return nil, fmt.Errorf("%w: at raw offset %d of %q", ErrUnmatchedEscape, pos, raw)
				}
				if isLineContinuation(seq) {
					// contributes nothing to the value; resolve ch again after it
					pos += len(seq)
					continue
				}
				entries = append(entries, Entry{Char: ch, Offset: pos, Width: len(seq)})
				pos += len(seq)
				break
			}

			if rawCh != ch {
				return nil, fmt.Errorf("%w: raw %q at offset %d, value %q at index %d (raw %q, value %q)",
					ErrRawMismatch, rawCh, pos, ch, index, raw, value)
			}
			entries = append(entries, Entry{Char: ch, Offset: pos, Width: size})
			pos += size
			break
		}
	}

	return entries, nil
}

func isLineContinuation(seq string) bool {
	switch seq {
	case "\\\n", "\\\r\n", "\\\r", "\\\u2028", "\\\u2029":
		return true
	}
	return false
}
