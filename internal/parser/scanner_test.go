package parser

import (
	"testing"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := "function structure enumeration begin end define mutable as set customIdent"
	expected := []TokenType{
		FUNCTION, STRUCTURE, ENUMERATION, BEGIN, END,
		DEFINE, MUTABLE, AS, SET, IDENTIFIER,
	}

	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if len(scanner.Errors()) != 0 {
		t.Fatalf("expected no scan errors, got %v", scanner.Errors())
	}
	if len(tokens) < len(expected) {
		t.Fatalf("expected at least %d tokens, got %d", len(expected), len(tokens))
	}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %d, got %d (%q)", i, exp, tokens[i].Type, tokens[i].Lexeme)
		}
	}
}

func TestLongestPhraseWins(t *testing.T) {
	input := "a greater than or equal to b"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []TokenType{IDENTIFIER, GREATER_THAN_OR_EQUAL_TO, IDENTIFIER, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
}

func TestShorterPhraseStillMatches(t *testing.T) {
	input := "a greater than b"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[1].Type != GREATER_THAN {
		t.Errorf("expected 'greater than' to fuse, got %q", tokens[1].Lexeme)
	}
	if tokens[2].Type != IDENTIFIER || tokens[2].Lexeme != "b" {
		t.Errorf("expected identifier b after the operator")
	}
}

func TestTryPhraseFusesToOneToken(t *testing.T) {
	input := "call method first on arr unwrap or return error"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	found := false
	for _, tok := range tokens {
		if tok.Type == UNWRAP_OR_RETURN_ERROR {
			found = true
		}
	}
	if !found {
		t.Errorf("expected 'unwrap or return error' to lex as a single token")
	}
}

func TestUserPrefixIsStripped(t *testing.T) {
	input := "define user_function as 42"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[1].Type != IDENTIFIER || tokens[1].Lexeme != "function" {
		t.Errorf("expected stripped identifier 'function', got %q", tokens[1].Lexeme)
	}
}

func TestIndentationTokens(t *testing.T) {
	input := "begin\n    define x as 1\nend function"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []TokenType{BEGIN, NEWLINE, INDENT, DEFINE, IDENTIFIER, AS, NUMBER, NEWLINE, END, FUNCTION, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("token %d: expected %d, got %d", i, expected[i], got[i])
		}
	}
	if tokens[2].Depth != 1 {
		t.Errorf("expected indent depth 1, got %d", tokens[2].Depth)
	}
}

func TestConsecutiveNewlinesCollapse(t *testing.T) {
	input := "begin\n\n\nend function"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []TokenType{BEGIN, NEWLINE, END, FUNCTION, EOF}
	got := tokenTypes(tokens)
	if len(got) != len(expected) {
		t.Fatalf("expected %d tokens, got %v", len(expected), got)
	}
}

func TestProhibitedCharacters(t *testing.T) {
	for _, input := range []string{"a { b", "x = 1", "p :: q", "v < w", "m & n", "a | b", "x ; y"} {
		scanner := NewScanner(input)
		scanner.ScanTokens()
		errs := scanner.Errors()
		if len(errs) == 0 {
			t.Errorf("input %q: expected a prohibited-character error", input)
			continue
		}
		if errs[0].Kind != ErrProhibitedCharacter {
			t.Errorf("input %q: expected ErrProhibitedCharacter, got %v", input, errs[0].Kind)
		}
	}
}

func TestProhibitedCharacterPosition(t *testing.T) {
	scanner := NewScanner("define x as {")
	scanner.ScanTokens()
	errs := scanner.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %d", len(errs))
	}
	if errs[0].Position.Offset != 12 || errs[0].Position.Column != 13 || errs[0].Position.Line != 1 {
		t.Errorf("unexpected position: %+v", errs[0].Position)
	}
}

func TestSigilsInsideLiteralsAreContent(t *testing.T) {
	scanner := NewScanner(`macro println with "{} -> {}" paren`)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", scanner.Errors())
	}
	if tokens[3].Type != STRING || tokens[3].Lexeme != "{} -> {}" {
		t.Errorf("expected string content to pass through, got %q", tokens[3].Lexeme)
	}
}

func TestStringEscapes(t *testing.T) {
	scanner := NewScanner(`define s as "line\none \"quoted\" and back\\slash"`)
	tokens := scanner.ScanTokens()
	if len(scanner.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", scanner.Errors())
	}
	want := "line\none \"quoted\" and back\\slash"
	if tokens[3].Type != STRING || tokens[3].Lexeme != want {
		t.Errorf("expected %q, got %q", want, tokens[3].Lexeme)
	}
}

func TestNumbers(t *testing.T) {
	input := "42 1_000 3.25 -7"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	expected := []TokenType{NUMBER, NUMBER, FLOAT_NUMBER, NUMBER}
	for i, exp := range expected {
		if tokens[i].Type != exp {
			t.Errorf("token %d: expected %d, got %d (%q)", i, exp, tokens[i].Type, tokens[i].Lexeme)
		}
	}
	if tokens[3].Lexeme != "-7" {
		t.Errorf("expected negative literal to keep its sign, got %q", tokens[3].Lexeme)
	}
}

func TestNoteThatCommentsAreSkipped(t *testing.T) {
	input := "note that this line vanishes\ndefine x as 1"
	scanner := NewScanner(input)
	tokens := scanner.ScanTokens()

	if tokens[0].Type != NEWLINE || tokens[1].Type != DEFINE {
		t.Errorf("expected the comment line to produce no tokens, got %v", tokenTypes(tokens))
	}
}

func TestTabsAreRejected(t *testing.T) {
	scanner := NewScanner("begin\n\tdefine x as 1")
	scanner.ScanTokens()
	if len(scanner.Errors()) == 0 {
		t.Errorf("expected tab indentation to be rejected")
	}
}
