package reduce

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"longform/internal/vocab"
)

// renderMacro lowers an unexpanded macro invocation. The delimiter
// flavor is part of the rendering ("paren" or "bracket") and the raw
// argument tokens are restricted to words, literals and commas.
func (r *reducer) renderMacro(n *sitter.Node) (string, bool) {
	name := n.ChildByFieldName("macro")
	if name == nil || name.Type() != "identifier" {
		return "", false
	}
	tokenTree := childOfType(n, "token_tree")
	if tokenTree == nil {
		return "", false
	}

	text := r.text(tokenTree)
	if len(text) < 2 {
		return "", false
	}
	flavor := "paren"
	if text[0] == '[' {
		flavor = "bracket"
	}

	tokens, ok := macroArgTokens(text[1 : len(text)-1])
	if !ok {
		return "", false
	}

	rendered := "macro " + vocab.Sanitize(r.text(name))
	if len(tokens) > 0 {
		rendered += " with " + strings.Join(tokens, " ")
	}
	return rendered + " " + flavor, true
}

// macroArgTokens splits a raw token tree body into verbose-safe tokens:
// identifiers (sanitized), plain numbers, string and character
// literals, and commas. Anything else fails the item over to verbatim.
func macroArgTokens(s string) ([]string, bool) {
	var tokens []string
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\n' || c == '\t' || c == '\r':
			i++

		case c == ',':
			tokens = append(tokens, ",")
			i++

		case c == '"' || c == '\'':
			end, ok := scanQuoted(s, i)
			if !ok {
				return nil, false
			}
			body := s[i+1 : end]
			if !escapesSupported(body) {
				return nil, false
			}
			tokens = append(tokens, s[i:end+1])
			i = end + 1

		case c == '-' && i+1 < len(s) && isDigitByte(s[i+1]):
			start := i
			i++
			for i < len(s) && (isDigitByte(s[i]) || s[i] == '_' || s[i] == '.') {
				i++
			}
			num := s[start:]
			num = num[:i-start]
			if !plainInteger(num[1:]) && !plainFloat(num[1:]) {
				return nil, false
			}
			tokens = append(tokens, num)

		case isDigitByte(c):
			start := i
			for i < len(s) && (isDigitByte(s[i]) || s[i] == '_' || s[i] == '.') {
				i++
			}
			num := s[start:i]
			if !plainInteger(num) && !plainFloat(num) {
				return nil, false
			}
			tokens = append(tokens, num)

		case isWordByte(c):
			start := i
			for i < len(s) && (isWordByte(s[i]) || isDigitByte(s[i])) {
				i++
			}
			tokens = append(tokens, vocab.Sanitize(s[start:i]))

		default:
			return nil, false
		}
	}
	return tokens, true
}

func scanQuoted(s string, start int) (int, bool) {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i, true
		}
	}
	return 0, false
}

func isWordByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
