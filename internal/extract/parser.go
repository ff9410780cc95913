// Package extract is the built-in class compiler: it harvests class selectors
// from plain CSS, following local @import rules.
package extract

import (
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// parserState maintains context while scanning a stylesheet
type parserState struct {
	classes map[string]struct{}
	imports []string

	// candidates are class selectors seen since the last block boundary; they
	// only count once the prelude turns out to open a rule.
	candidates []string
	atRule     string
	afterDot   bool
}

// Stylesheet is the result of scanning one stylesheet.
type Stylesheet struct {
	// Classes are the distinct class selectors, sorted.
	Classes []string
	// Imports are the @import targets in source order, as written.
	Imports []string
}

// ParseCSS scans content for class selectors and @import targets.
//
// A class counts when it appears in the prelude of a rule (compound, comma and
// :not()/:is()/:where() selectors included, nested rules and rules inside
// at-rule blocks too). Names are returned with CSS escapes resolved.
func ParseCSS(content string) Stylesheet {
	state := &parserState{classes: make(map[string]struct{})}

	lexer := css.NewLexer(parse.NewInputString(content))

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}

		switch tt {
		case css.AtKeywordToken:
			name := strings.ToLower(string(text))
			if name == "@import" {
				state.handleImport(lexer)
				continue
			}
			if len(state.candidates) == 0 && state.atRule == "" {
				state.atRule = name
			}
		case css.DelimToken:
			if len(text) == 1 && text[0] == '.' {
				state.afterDot = true
				continue
			}
		case css.IdentToken:
			if state.afterDot {
				state.candidates = append(state.candidates, unescapeIdent(string(text)))
			}
		case css.LeftBraceToken:
			// @media, @supports and @layer blocks hold rules, not a selector
			if state.atRule == "" {
				for _, name := range state.candidates {
					state.classes[name] = struct{}{}
				}
			}
			state.reset()
		case css.RightBraceToken, css.SemicolonToken:
			// declarations and statement at-rules
			state.reset()
		case css.CommentToken:
			continue
		}
		state.afterDot = false
	}

	classes := make([]string, 0, len(state.classes))
	for name := range state.classes {
		classes = append(classes, name)
	}
	slices.Sort(classes)

	return Stylesheet{Classes: classes, Imports: state.imports}
}

func (s *parserState) reset() {
	s.candidates = s.candidates[:0]
	s.atRule = ""
	s.afterDot = false
}

// handleImport reads an @import prelude up to its semicolon
func (s *parserState) handleImport(lexer *css.Lexer) {
	found := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken, css.SemicolonToken:
			s.reset()
			return
		case css.StringToken:
			if !found {
				if target, err := strconv.Unquote(normalizeQuotes(string(text))); err == nil {
					s.imports = append(s.imports, target)
					found = true
				}
			}
		case css.URLToken:
			if !found {
				if target, ok := urlTarget(string(text)); ok {
					s.imports = append(s.imports, target)
					found = true
				}
			}
		}
	}
}

// normalizeQuotes turns a single-quoted CSS string into a double-quoted one so
// strconv can unquote it.
func normalizeQuotes(str string) string {
	if len(str) >= 2 && str[0] == '\'' {
		inner := str[1 : len(str)-1]
		inner = strings.ReplaceAll(inner, `\'`, `'`)
		inner = strings.ReplaceAll(inner, `"`, `\"`)
		return `"` + inner + `"`
	}
	return str
}

// urlTarget extracts the target of an unquoted url(...) token
func urlTarget(token string) (string, bool) {
	if len(token) < 5 || !strings.EqualFold(token[:4], "url(") || token[len(token)-1] != ')' {
		return "", false
	}
	target := strings.TrimSpace(token[4 : len(token)-1])
	if len(target) >= 2 && (target[0] == '"' || target[0] == '\'') {
		unquoted, err := strconv.Unquote(normalizeQuotes(target))
		if err != nil {
			return "", false
		}
		target = unquoted
	}
	return target, target != ""
}

// unescapeIdent resolves CSS escapes: a backslash followed by up to six hex
// digits (and one optional whitespace) is a code point, a backslash followed by
// anything else is that character.
func unescapeIdent(ident string) string {
	if !strings.Contains(ident, `\`) {
		return ident
	}

	var b strings.Builder
	b.Grow(len(ident))

	for i := 0; i < len(ident); {
		c := ident[i]
		if c != '\\' || i+1 >= len(ident) {
			b.WriteByte(c)
			i++
			continue
		}

		i++ // backslash
		j := i
		for j < len(ident) && j-i < 6 && isHex(ident[j]) {
			j++
		}
		if j == i {
			r, size := utf8.DecodeRuneInString(ident[i:])
			b.WriteRune(r)
			i += size
			continue
		}

		cp, _ := strconv.ParseUint(ident[i:j], 16, 32)
		r := rune(cp)
		if cp == 0 || cp > utf8.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
			r = utf8.RuneError
		}
		b.WriteRune(r)
		i = j
		if i < len(ident) {
			switch ident[i] {
			case ' ', '\t', '\n', '\f':
				i++
			case '\r':
				i++
				if i < len(ident) && ident[i] == '\n' {
					i++
				}
			}
		}
	}

	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
