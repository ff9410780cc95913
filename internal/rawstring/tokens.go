package rawstring

import (
	"unicode"

	"github.com/yacobolo/classlint/internal/jsast"
)

// Token is one whitespace-delimited class name inside a string literal, with
// its byte range in the source file.
type Token struct {
	Text  string
	Range jsast.Span
}

// ExtractTokens splits value into maximal runs of non-whitespace characters.
// literalStart is the source offset of the literal's opening quote.
//
// Tokens are returned in source order. No normalization is applied: the token
// text is exactly the run of decoded characters.
func ExtractTokens(raw, value string, literalStart int) ([]Token, error) {
	entries, err := MapIndices(raw, value)
	if err != nil {
		return nil, err
	}

	var tokens []Token
	first := -1
	flush := func(last int) {
		if first < 0 {
			return
		}
		text := make([]rune, 0, last-first+1)
		for _, e := range entries[first : last+1] {
			text = append(text, e.Char)
		}
		tokens = append(tokens, Token{
			Text: string(text),
			Range: jsast.Span{
				Start: literalStart + entries[first].Offset,
				End:   literalStart + entries[last].End(),
			},
		})
		first = -1
	}

	for i, e := range entries {
		if isSpace(e.Char) {
			flush(i - 1)
			continue
		}
		if first < 0 {
			first = i
		}
	}
	flush(len(entries) - 1)

	return tokens, nil
}

// isSpace follows the JavaScript \s class, which includes the BOM.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}
