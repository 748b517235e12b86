package parser

import (
	"longform/internal/ast"
	"longform/internal/vocab"
)

// parseBlock reads statements until the matching "end <kindWord>". The
// final expression statement of a block is its tail and drops the
// symbolic separator; the reducer only produces blocks where that
// reading is sound.
func (p *Parser) parseBlock(kind TokenType, kindWord string) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		p.skipBreaks()
		if p.check(END) || p.isAtEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if err := p.expectEnd(kind, kindWord); err != nil {
		return nil, err
	}
	if n := len(stmts); n > 0 {
		if tail, ok := stmts[n-1].(*ast.ExprStmt); ok {
			tail.Semicolon = false
		}
	}
	return stmts, nil
}

func (p *Parser) parseStatement() (ast.Stmt, error) {
	switch p.peek().Type {
	case DEFINE:
		return p.parseLet()
	case SET:
		return p.parseAssign()
	case IF:
		return p.parseIfStmt()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseForEach()
	case LOOP:
		return p.parseLoop()
	case RETURN:
		return p.parseReturn()
	case EXIT:
		return p.parseBreak()
	case CONTINUE:
		return p.parseContinue()
	case COMPARE:
		return p.parseMatch()
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{X: expr, Semicolon: true}, nil
	}
}

func (p *Parser) parseLet() (*ast.Let, error) {
	if _, err := p.expect(DEFINE, "expected 'define'"); err != nil {
		return nil, err
	}
	let := &ast.Let{Mutable: p.match(MUTABLE)}
	name, err := p.expectIdent("expected variable name after 'define'")
	if err != nil {
		return nil, err
	}
	let.Name = name
	if p.match(OF) {
		let.Type, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(AS, "expected 'as' in definition"); err != nil {
		return nil, err
	}
	let.Value, err = p.parseExpr()
	if err != nil {
		return nil, err
	}
	return let, nil
}

func (p *Parser) parseAssign() (*ast.Assign, error) {
	if _, err := p.expect(SET, "expected 'set'"); err != nil {
		return nil, err
	}
	target, err := p.parseAssignTarget()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQUAL_TO, "expected 'equal to' after assignment target"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Target: target, Value: value}, nil
}

// parseAssignTarget reads an lvalue: an identifier, field access, index,
// or dereference. It deliberately stays below the binary level so the
// following "equal to" is not swallowed as a comparison.
func (p *Parser) parseAssignTarget() (ast.Expr, error) {
	if p.match(DEREFERENCE) {
		inner, err := p.parseAssignTarget()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: vocab.UnDeref, X: inner}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parseIfStmt() (*ast.If, error) {
	if _, err := p.expect(IF, "expected 'if'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN, "expected 'then' after condition"); err != nil {
		return nil, err
	}
	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the if body"); err != nil {
		return nil, err
	}
	stmt := &ast.If{Cond: cond}
	stmt.Then, err = p.parseBlock(IF, "if")
	if err != nil {
		return nil, err
	}

	p.skipBreaks()
	if p.match(OTHERWISE) {
		p.skipBreaks()
		if _, err := p.expect(BEGIN, "expected 'begin' after 'otherwise'"); err != nil {
			return nil, err
		}
		stmt.Else, err = p.parseBlock(IF, "if")
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	if _, err := p.expect(WHILE, "expected 'while'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(REPEAT, "expected 'repeat' after loop condition"); err != nil {
		return nil, err
	}
	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the loop body"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(WHILE, "while")
	if err != nil {
		return nil, err
	}
	return &ast.While{Cond: cond, Body: body}, nil
}

func (p *Parser) parseForEach() (*ast.ForEach, error) {
	if _, err := p.expect(FOR, "expected 'for'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(EACH, "expected 'each' after 'for'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected loop variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(IN, "expected 'in' after loop variable"); err != nil {
		return nil, err
	}
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(REPEAT, "expected 'repeat' after iterator"); err != nil {
		return nil, err
	}
	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the loop body"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(FOR, "for")
	if err != nil {
		return nil, err
	}
	return &ast.ForEach{Var: name, Iter: iter, Body: body}, nil
}

func (p *Parser) parseLoop() (*ast.Loop, error) {
	if _, err := p.expect(LOOP, "expected 'loop'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(FOREVER, "expected 'forever' after 'loop'"); err != nil {
		return nil, err
	}
	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the loop body"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(LOOP, "loop")
	if err != nil {
		return nil, err
	}
	return &ast.Loop{Body: body}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	if _, err := p.expect(RETURN, "expected 'return'"); err != nil {
		return nil, err
	}
	if p.atLineEnd() {
		return &ast.Return{}, nil
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Return{Value: value}, nil
}

func (p *Parser) parseBreak() (ast.Stmt, error) {
	if _, err := p.expect(EXIT, "expected 'exit'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LOOP, "expected 'loop' after 'exit'"); err != nil {
		return nil, err
	}
	return &ast.Break{}, nil
}

func (p *Parser) parseContinue() (ast.Stmt, error) {
	if _, err := p.expect(CONTINUE, "expected 'continue'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LOOP, "expected 'loop' after 'continue'"); err != nil {
		return nil, err
	}
	return &ast.Continue{}, nil
}

func (p *Parser) parseMatch() (*ast.Match, error) {
	if _, err := p.expect(COMPARE, "expected 'compare'"); err != nil {
		return nil, err
	}
	subject, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	m := &ast.Match{Subject: subject}
	for {
		p.skipBreaks()
		if !p.check(CASE) {
			break
		}
		p.advance()
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN, "expected 'then' after case pattern"); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		m.Arms = append(m.Arms, ast.MatchArm{Pat: pat, Value: value})
	}
	if err := p.expectEnd(COMPARE, "compare"); err != nil {
		return nil, err
	}
	return m, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	switch p.peek().Type {
	case OTHERWISE:
		p.advance()
		return &ast.WildcardPat{}, nil
	case SOME:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'some'"); err != nil {
			return nil, err
		}
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.CtorPat{Kind: ast.CtorSome, Sub: sub}, nil
	case NONE:
		p.advance()
		return &ast.CtorPat{Kind: ast.CtorNone}, nil
	case OK:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'ok'"); err != nil {
			return nil, err
		}
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.CtorPat{Kind: ast.CtorOk, Sub: sub}, nil
	case ERROR:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'error'"); err != nil {
			return nil, err
		}
		sub, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return &ast.CtorPat{Kind: ast.CtorErr, Sub: sub}, nil
	case VARIANT:
		p.advance()
		name, err := p.expectIdent("expected variant name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(OF, "expected 'of' after variant name"); err != nil {
			return nil, err
		}
		var segments []string
		for p.check(IDENTIFIER) {
			segments = append(segments, p.advance().Lexeme)
		}
		if len(segments) == 0 {
			return nil, p.errorAtCurrent("expected the enclosing type of the variant")
		}
		return &ast.VariantPat{Segments: segments, Name: name}, nil
	case TUPLE:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'tuple'"); err != nil {
			return nil, err
		}
		var elems []ast.Pattern
		for {
			sub, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, sub)
			if !p.match(AND) {
				break
			}
		}
		return &ast.TuplePat{Elems: elems}, nil
	case MUTABLE:
		p.advance()
		name, err := p.expectIdent("expected binding name after 'mutable'")
		if err != nil {
			return nil, err
		}
		return &ast.BindPat{Name: name, Mutable: true}, nil
	case IDENTIFIER:
		return &ast.BindPat{Name: p.advance().Lexeme}, nil
	case NUMBER, FLOAT_NUMBER, STRING, CHAR, TRUE, FALSE:
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &ast.LitPat{Lit: lit}, nil
	default:
		return nil, p.errorAtCurrent("expected a case pattern")
	}
}
