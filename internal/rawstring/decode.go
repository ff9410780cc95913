package rawstring

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Decode returns the string value of a quoted JavaScript string literal.
// It accepts exactly the escapes MapIndices understands. Lone surrogates and
// code points past U+10FFFF decode to U+FFFD.
func Decode(raw string) (string, error) {
	if len(raw) < 2 {
		return "", fmt.Errorf("%w: %q is not a quoted literal", ErrRawMismatch, raw)
	}
	inner := raw[1 : len(raw)-1]
	if !strings.Contains(inner, `\`) {
		return inner, nil
	}

	var b strings.Builder
	b.Grow(len(inner))

	for i := 0; i < len(inner); {
		if inner[i] != '\\' {
			b.WriteByte(inner[i])
			i++
			continue
		}

		seq := escapeSequence.FindString(inner[i:])
		if seq == "" {
			return "", fmt.Errorf("%w: at raw offset %d of %q", ErrUnmatchedEscape, i+1, raw)
		}
		i += len(seq)

		if isLineContinuation(seq) {
			continue
		}
		b.WriteRune(escapeValue(seq[1:]))
	}

	return b.String(), nil
}

// escapeValue decodes the body of one escape sequence (without the backslash).
func escapeValue(body string) rune {
	switch c := body[0]; {
	case c == 'u' && strings.HasPrefix(body, "u{"):
		return codePoint(body[2 : len(body)-1])
	case c == 'u' && len(body) == 11:
		high := codePoint(body[1:5])
		low := codePoint(body[7:11])
		return (high-0xD800)<<10 + (low - 0xDC00) + 0x10000
	case c == 'u' && len(body) == 5:
		return codePoint(body[1:])
	case c == 'x' && len(body) == 3:
		return codePoint(body[1:])
	case c >= '0' && c <= '7':
		n, _ := strconv.ParseUint(body, 8, 32)
		return rune(n)
	}

	switch body {
	case "n":
		return '\n'
	case "r":
		return '\r'
	case "t":
		return '\t'
	case "b":
		return '\b'
	case "f":
		return '\f'
	case "v":
		return '\v'
	}

	r, _ := utf8.DecodeRuneInString(body)
	return r
}

func codePoint(hex string) rune {
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || n > utf8.MaxRune || (n >= 0xD800 && n <= 0xDFFF && len(hex) != 4) {
		return utf8.RuneError
	}
	return rune(n)
}
