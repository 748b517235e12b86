package parser

import (
	"strings"

	"longform/internal/ast"
	"longform/internal/vocab"
)

// binOpForToken maps fused operator tokens to the shared operator table.
var binOpForToken = map[TokenType]vocab.BinOp{
	OR:                       vocab.OpOr,
	LOGICAL_AND:              vocab.OpAnd,
	EQUAL_TO:                 vocab.OpEq,
	NOT_EQUAL_TO:             vocab.OpNe,
	LESS_THAN:                vocab.OpLt,
	LESS_THAN_OR_EQUAL_TO:    vocab.OpLe,
	GREATER_THAN:             vocab.OpGt,
	GREATER_THAN_OR_EQUAL_TO: vocab.OpGe,
	BITWISE_OR:               vocab.OpBitOr,
	BITWISE_XOR:              vocab.OpBitXor,
	BITWISE_AND:              vocab.OpBitAnd,
	SHIFT_LEFT:               vocab.OpShl,
	SHIFT_RIGHT:              vocab.OpShr,
	PLUS:                     vocab.OpAdd,
	MINUS:                    vocab.OpSub,
	TIMES:                    vocab.OpMul,
	DIVIDED_BY:               vocab.OpDiv,
	MODULO:                   vocab.OpMod,
}

func (p *Parser) parseExpr() (ast.Expr, error) {
	return p.parseBinary(1)
}

func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := binOpForToken[p.peek().Type]
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.advance()
		right, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.peek().Type {
	case NOT:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: vocab.UnNot, X: x}, nil
	case NEGATE:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: vocab.UnNeg, X: x}, nil
	case DEREFERENCE:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: vocab.UnDeref, X: x}, nil
	case REFERENCE_TO:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Reference{X: x}, nil
	case MUTABLE_REFERENCE_TO:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Reference{Mutable: true, X: x}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.peek().Type {
	case IDENTIFIER:
		return &ast.Ident{Name: p.advance().Lexeme}, nil

	case CONTEXT:
		p.advance()
		return &ast.Ident{Name: "self"}, nil

	case NUMBER, FLOAT_NUMBER, STRING, CHAR, TRUE, FALSE:
		return p.parseLiteral()

	case UNIT:
		p.advance()
		return &ast.Unit{}, nil

	case SOME:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'some'"); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Ctor{Kind: ast.CtorSome, Arg: arg}, nil

	case NONE:
		p.advance()
		return &ast.Ctor{Kind: ast.CtorNone}, nil

	case OK:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'ok'"); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Ctor{Kind: ast.CtorOk, Arg: arg}, nil

	case ERROR:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'error'"); err != nil {
			return nil, err
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Ctor{Kind: ast.CtorErr, Arg: arg}, nil

	case TUPLE:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'tuple'"); err != nil {
			return nil, err
		}
		elems, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Elems: elems}, nil

	case ARRAY:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'array'"); err != nil {
			return nil, err
		}
		elems, err := p.parseExprList()
		if err != nil {
			return nil, err
		}
		return &ast.Array{Elems: elems}, nil

	case RANGE:
		p.advance()
		return p.parseRange(false)

	case INCLUSIVE:
		p.advance()
		if _, err := p.expect(RANGE, "expected 'range' after 'inclusive'"); err != nil {
			return nil, err
		}
		return p.parseRange(true)

	case INDEX:
		p.advance()
		base, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(AT, "expected 'at' in index expression"); err != nil {
			return nil, err
		}
		idx, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Index{X: base, Index: idx}, nil

	case FIELD:
		p.advance()
		name, err := p.expectIdent("expected field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(OF, "expected 'of' after field name"); err != nil {
			return nil, err
		}
		base, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.FieldAccess{X: base, Name: name}, nil

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
			return nil, p.errorAtCurrent("expected the qualifying path of the variant")
		}
		return &ast.Path{Segments: segments, Name: name}, nil

	case CREATE:
		return p.parseStructLit()

	case IF:
		p.advance()
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(THEN, "expected 'then' in conditional expression"); err != nil {
			return nil, err
		}
		thenExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(OTHERWISE, "expected 'otherwise' in conditional expression"); err != nil {
			return nil, err
		}
		elseExpr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Cond{Cond: cond, Then: thenExpr, Else: elseExpr}, nil

	case MOVE:
		p.advance()
		if _, err := p.expect(CLOSURE, "expected 'closure' after 'move'"); err != nil {
			return nil, err
		}
		return p.parseClosure(true)

	case CLOSURE:
		p.advance()
		return p.parseClosure(false)

	case MACRO:
		return p.parseMacro()

	case CALL:
		return p.parseCall()

	default:
		return nil, p.errorAtCurrent("expected an expression")
	}
}

func (p *Parser) parseLiteral() (*ast.Literal, error) {
	tok := p.advance()
	switch tok.Type {
	case NUMBER:
		return &ast.Literal{Kind: ast.LitInt, Value: tok.Lexeme}, nil
	case FLOAT_NUMBER:
		return &ast.Literal{Kind: ast.LitFloat, Value: tok.Lexeme}, nil
	case STRING:
		return &ast.Literal{Kind: ast.LitString, Value: tok.Lexeme}, nil
	case CHAR:
		return &ast.Literal{Kind: ast.LitChar, Value: tok.Lexeme}, nil
	case TRUE:
		return &ast.Literal{Kind: ast.LitBool, Value: "true"}, nil
	case FALSE:
		return &ast.Literal{Kind: ast.LitBool, Value: "false"}, nil
	default:
		return nil, &ParseError{
			Kind:     ErrUnexpectedToken,
			Message:  "expected a literal, found " + tok.Lexeme,
			Position: tok.Position,
		}
	}
}

func (p *Parser) parseExprList() ([]ast.Expr, error) {
	var elems []ast.Expr
	for {
		elem, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, elem)
		if !p.match(AND) {
			return elems, nil
		}
	}
}

func (p *Parser) parseRange(inclusive bool) (ast.Expr, error) {
	if _, err := p.expect(FROM, "expected 'from' in range expression"); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TO, "expected 'to' in range expression"); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Range{Start: start, End: end, Inclusive: inclusive}, nil
}

func (p *Parser) parseStructLit() (ast.Expr, error) {
	if _, err := p.expect(CREATE, "expected 'create'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected structure name after 'create'")
	if err != nil {
		return nil, err
	}
	lit := &ast.StructLit{Name: name}
	if p.match(WITH) {
		for {
			fieldName, err := p.expectIdent("expected field name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(OF, "expected 'of' after field name"); err != nil {
				return nil, err
			}
			value, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			lit.Fields = append(lit.Fields, ast.FieldInit{Name: fieldName, Value: value})
			if !p.match(AND) {
				break
			}
		}
	}
	return lit, nil
}

// parseClosure reads the parameter list and body. Inside the parameter
// list each "and" separates parameters unless the single-token lookahead
// sees "body", which ends the list.
func (p *Parser) parseClosure(move bool) (ast.Expr, error) {
	if _, err := p.expect(WITH, "expected 'with' after 'closure'"); err != nil {
		return nil, err
	}

	closure := &ast.Closure{Move: move}
	if p.match(PARAMETERS) {
		for {
			name, err := p.expectIdent("expected closure parameter name")
			if err != nil {
				return nil, err
			}
			param := ast.Param{Name: name}
			if p.check(OF) {
				p.advance()
				param.Type, err = p.parseType()
				if err != nil {
					return nil, err
				}
			}
			closure.Params = append(closure.Params, param)

			if p.check(AND) && p.peekNext().Type == BODY {
				p.advance() // the "and" joining the body
				break
			}
			if !p.match(AND) {
				break
			}
		}
	}

	if _, err := p.expect(BODY, "expected 'body' to begin the closure body"); err != nil {
		return nil, err
	}
	body, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	closure.Body = body
	return closure, nil
}

func (p *Parser) parseMacro() (ast.Expr, error) {
	if _, err := p.expect(MACRO, "expected 'macro'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected macro name")
	if err != nil {
		return nil, err
	}

	macro := &ast.Macro{Name: name}
	if p.match(WITH) {
		var parts []string
		for {
			switch p.peek().Type {
			case BRACKET, PAREN, NEWLINE, INDENT, END, EOF:
				goto done
			case COMMA:
				parts = append(parts, ",")
				p.advance()
			case STRING:
				parts = append(parts, quoteLiteral(p.advance().Lexeme))
			default:
				parts = append(parts, p.advance().Lexeme)
			}
		}
	done:
		macro.Args = joinMacroArgs(parts)
	}

	switch p.peek().Type {
	case BRACKET:
		p.advance()
		macro.Bracket = true
	case PAREN:
		p.advance()
	}
	return macro, nil
}

func (p *Parser) parseCall() (ast.Expr, error) {
	if _, err := p.expect(CALL, "expected 'call'"); err != nil {
		return nil, err
	}

	if p.match(ASSOCIATED) {
		if _, err := p.expect(FUNCTION, "expected 'function' after 'associated'"); err != nil {
			return nil, err
		}
		name, err := p.expectIdent("expected associated function name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ON, "expected 'on' after associated function name"); err != nil {
			return nil, err
		}
		var path []string
		for p.check(IDENTIFIER) {
			path = append(path, p.advance().Lexeme)
		}
		if len(path) == 0 {
			return nil, p.errorAtCurrent("expected the type owning the associated function")
		}
		call := &ast.AssocCall{TypePath: path, Name: name}
		call.Args, err = p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return p.wrapTry(call), nil
	}

	if p.match(METHOD) {
		name, err := p.expectIdent("expected method name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ON, "expected 'on' after method name"); err != nil {
			return nil, err
		}
		receiver, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		call := &ast.MethodCall{Receiver: receiver, Name: name}
		call.Args, err = p.parseCallArgs()
		if err != nil {
			return nil, err
		}
		return p.wrapTry(call), nil
	}

	callee, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	call := &ast.FnCall{Callee: callee}
	call.Args, err = p.parseCallArgs()
	if err != nil {
		return nil, err
	}
	return p.wrapTry(call), nil
}

func (p *Parser) parseCallArgs() ([]ast.Expr, error) {
	if !p.match(WITH) {
		return nil, nil
	}
	return p.parseExprList()
}

// wrapTry consumes a trailing "unwrap or return error", which binds to
// the call just parsed.
func (p *Parser) wrapTry(expr ast.Expr) ast.Expr {
	if p.match(UNWRAP_OR_RETURN_ERROR) {
		return &ast.Try{X: expr}
	}
	return expr
}

// joinMacroArgs reassembles raw macro argument text: parts are space
// separated, commas attach to the part before them.
func joinMacroArgs(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 && part != "," {
			b.WriteByte(' ')
		}
		b.WriteString(part)
	}
	return b.String()
}

// quoteLiteral renders a string literal body with C-style escaping.
func quoteLiteral(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
