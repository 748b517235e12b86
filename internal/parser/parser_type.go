package parser

import "longform/internal/ast"

func (p *Parser) parseType() (ast.Type, error) {
	switch p.peek().Type {
	case REFERENCE_TO:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.Ref{Elem: elem}, nil

	case MUTABLE_REFERENCE_TO:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.Ref{Mutable: true, Elem: elem}, nil

	case RAW_POINTER_TO:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.RawPtr{Elem: elem}, nil

	case MUTABLE_RAW_POINTER_TO:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.RawPtr{Mutable: true, Elem: elem}, nil

	case REFERENCE_COUNTED:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.RcType{Elem: elem}, nil

	case ATOMIC_REFERENCE_COUNTED:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.RcType{Atomic: true, Elem: elem}, nil

	case OPTIONAL:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.OptionType{Elem: elem}, nil

	case RESULT:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'result'"); err != nil {
			return nil, err
		}
		okType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(OR, "expected 'or error' after the success type"); err != nil {
			return nil, err
		}
		if _, err := p.expect(ERROR, "expected 'error' after 'or'"); err != nil {
			return nil, err
		}
		errType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ResultType{Ok: okType, Err: errType}, nil

	case LIST:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'list'"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ListType{Elem: elem}, nil

	case BOX:
		p.advance()
		if _, err := p.expect(CONTAINING, "expected 'containing' after 'box'"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.BoxType{Elem: elem}, nil

	case TUPLE:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'tuple'"); err != nil {
			return nil, err
		}
		var elems []ast.Type
		for {
			elem, err := p.parseType()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if !p.match(AND) {
				break
			}
		}
		return &ast.TupleType{Elems: elems}, nil

	case UNIT:
		p.advance()
		return &ast.UnitType{}, nil

	case SLICE:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'slice'"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.SliceType{Elem: elem}, nil

	case ARRAY:
		p.advance()
		if _, err := p.expect(OF, "expected 'of' after 'array'"); err != nil {
			return nil, err
		}
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(WITH, "expected 'with length' after the element type"); err != nil {
			return nil, err
		}
		if _, err := p.expect(LENGTH, "expected 'length' after 'with'"); err != nil {
			return nil, err
		}
		lenTok, err := p.expect(NUMBER, "expected the array length")
		if err != nil {
			return nil, err
		}
		return &ast.ArrayType{Elem: elem, Len: lenTok.Lexeme}, nil

	case FUNCTION:
		p.advance()
		if _, err := p.expect(TAKING, "expected 'taking' after 'function'"); err != nil {
			return nil, err
		}
		var params []ast.Type
		for {
			param, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(AND) {
				break
			}
		}
		if _, err := p.expect(RETURNING, "expected 'returning' after parameter types"); err != nil {
			return nil, err
		}
		ret, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.FnType{Params: params, Ret: ret}, nil

	case HASH_MAP:
		p.advance()
		if _, err := p.expect(FROM, "expected 'from' after 'hash map'"); err != nil {
			return nil, err
		}
		key, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TO, "expected 'to' after the key type"); err != nil {
			return nil, err
		}
		value, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.HashMapType{Key: key, Value: value}, nil

	case CONTEXT:
		p.advance()
		return &ast.Named{Name: "Self"}, nil

	case IDENTIFIER:
		name := p.advance().Lexeme
		if name == "string" && p.match(SLICE) {
			return &ast.Named{Name: "string slice"}, nil
		}
		if name == "unknown_type" {
			return &ast.Unknown{}, nil
		}
		if p.match(OF) {
			// A user generic carries exactly one argument; wider
			// parameter lists cannot share "and" with the enclosing
			// list grammar and travel verbatim instead.
			arg, err := p.parseType()
			if err != nil {
				return nil, err
			}
			return &ast.Named{Name: name, Args: []ast.Type{arg}}, nil
		}
		return &ast.Named{Name: name}, nil

	default:
		return nil, p.errorAtCurrent("expected a type")
	}
}
