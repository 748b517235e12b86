package parser

import "longform/internal/ast"

func (p *Parser) parseItem() (ast.Item, error) {
	switch p.peek().Type {
	case FUNCTION:
		return p.parseFunction()
	case STRUCTURE:
		return p.parseStruct()
	case ENUMERATION:
		return p.parseEnum()
	case TYPE:
		return p.parseTypeAlias()
	case CONSTANT:
		return p.parseConst()
	case STATIC:
		return p.parseStatic()
	case IMPLEMENTATION:
		return p.parseImpl()
	case USE:
		return p.parseUse()
	case VERBATIM:
		return p.parseVerbatimItem()
	default:
		return nil, p.errorAtCurrent("expected an item (function, structure, enumeration, type, constant, static, implementation, use, or verbatim)")
	}
}

func (p *Parser) parseFunction() (*ast.Function, error) {
	if _, err := p.expect(FUNCTION, "expected 'function'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected function name")
	if err != nil {
		return nil, err
	}

	generics, err := p.parseGenericsClause()
	if err != nil {
		return nil, err
	}

	fn := &ast.Function{Name: name, Generics: generics}

	p.skipBreaks()
	if p.match(TAKES) {
		fn.Params, err = p.parseParams()
		if err != nil {
			return nil, err
		}
	}

	p.skipBreaks()
	if p.match(RETURNS) {
		fn.Return, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}

	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the function body"); err != nil {
		return nil, err
	}
	fn.Body, err = p.parseBlock(FUNCTION, "function")
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// parseGenericsClause reads zero or more "with generic type T
// [implementing A and B]" groups. A "with" not followed by "generic"
// belongs to the next production and is left alone.
func (p *Parser) parseGenericsClause() ([]ast.GenericParam, error) {
	var generics []ast.GenericParam
	for p.check(WITH) && p.peekNext().Type == GENERIC {
		p.advance() // with
		p.advance() // generic
		if _, err := p.expect(TYPE, "expected 'type' after 'with generic'"); err != nil {
			return nil, err
		}
		name, err := p.expectIdent("expected generic type name")
		if err != nil {
			return nil, err
		}

		param := ast.GenericParam{Name: name}
		if p.match(IMPLEMENTING) {
			for {
				bound, err := p.expectIdent("expected trait bound name")
				if err != nil {
					return nil, err
				}
				param.Bounds = append(param.Bounds, bound)
				if !p.match(AND) {
					break
				}
			}
		}
		generics = append(generics, param)
	}
	return generics, nil
}

// parseParams reads "name of Type" groups separated by "and". The
// receiver parameter spells "context of context" and binds as self.
func (p *Parser) parseParams() ([]ast.Param, error) {
	var params []ast.Param
	for {
		var name string
		mutable := false
		if p.match(CONTEXT) {
			name = "self"
		} else {
			mutable = p.match(MUTABLE)
			ident, err := p.expectIdent("expected parameter name")
			if err != nil {
				return nil, err
			}
			name = ident
		}
		if _, err := p.expect(OF, "expected 'of' after parameter name"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: name, Mutable: mutable, Type: ty})
		if !p.match(AND) {
			break
		}
	}
	return params, nil
}

func (p *Parser) parseStruct() (*ast.Struct, error) {
	if _, err := p.expect(STRUCTURE, "expected 'structure'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected structure name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericsClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WITH, "expected 'with fields'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(FIELDS, "expected 'fields' after 'with'"); err != nil {
		return nil, err
	}

	st := &ast.Struct{Name: name, Generics: generics}
	for {
		p.skipBreaks()
		if p.check(END) || p.isAtEnd() {
			break
		}
		fieldName, err := p.expectIdent("expected field name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(OF, "expected 'of' after field name"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, ast.FieldDef{Name: fieldName, Type: ty})
	}
	if err := p.expectEnd(STRUCTURE, "structure"); err != nil {
		return nil, err
	}
	return st, nil
}

func (p *Parser) parseEnum() (*ast.Enum, error) {
	if _, err := p.expect(ENUMERATION, "expected 'enumeration'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected enumeration name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericsClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(WITH, "expected 'with variants'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(VARIANTS, "expected 'variants' after 'with'"); err != nil {
		return nil, err
	}

	en := &ast.Enum{Name: name, Generics: generics}
	for {
		p.skipBreaks()
		if p.check(END) || p.isAtEnd() {
			break
		}
		variantName, err := p.expectIdent("expected variant name")
		if err != nil {
			return nil, err
		}
		variant := ast.VariantDef{Name: variantName}
		if p.match(OF) {
			variant.Payload, err = p.parseType()
			if err != nil {
				return nil, err
			}
		} else if p.match(WITH) {
			for {
				fieldName, err := p.expectIdent("expected variant field name")
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(OF, "expected 'of' after variant field name"); err != nil {
					return nil, err
				}
				ty, err := p.parseType()
				if err != nil {
					return nil, err
				}
				variant.Fields = append(variant.Fields, ast.FieldDef{Name: fieldName, Type: ty})
				if !p.match(AND) {
					break
				}
			}
		}
		en.Variants = append(en.Variants, variant)
	}
	if err := p.expectEnd(ENUMERATION, "enumeration"); err != nil {
		return nil, err
	}
	return en, nil
}

func (p *Parser) parseTypeAlias() (*ast.TypeAlias, error) {
	if _, err := p.expect(TYPE, "expected 'type'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected type alias name")
	if err != nil {
		return nil, err
	}
	generics, err := p.parseGenericsClause()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(AS, "expected 'as' in type alias"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return &ast.TypeAlias{Name: name, Generics: generics, Type: ty}, nil
}

func (p *Parser) parseConst() (*ast.Const, error) {
	if _, err := p.expect(CONSTANT, "expected 'constant'"); err != nil {
		return nil, err
	}
	name, err := p.expectIdent("expected constant name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(OF, "expected 'of' after constant name"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	value, err := p.parseValueBlock(CONSTANT, "constant")
	if err != nil {
		return nil, err
	}
	return &ast.Const{Name: name, Type: ty, Value: value}, nil
}

func (p *Parser) parseStatic() (*ast.Static, error) {
	if _, err := p.expect(STATIC, "expected 'static'"); err != nil {
		return nil, err
	}
	mutable := p.match(MUTABLE)
	name, err := p.expectIdent("expected static name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(OF, "expected 'of' after static name"); err != nil {
		return nil, err
	}
	ty, err := p.parseType()
	if err != nil {
		return nil, err
	}
	value, err := p.parseValueBlock(STATIC, "static")
	if err != nil {
		return nil, err
	}
	return &ast.Static{Name: name, Mutable: mutable, Type: ty, Value: value}, nil
}

// parseValueBlock reads the single-expression begin/end block used by
// constant and static items.
func (p *Parser) parseValueBlock(kind TokenType, kindWord string) (ast.Expr, error) {
	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' before the value"); err != nil {
		return nil, err
	}
	p.skipBreaks()
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	p.skipBreaks()
	if err := p.expectEnd(kind, kindWord); err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Parser) parseImpl() (*ast.Impl, error) {
	if _, err := p.expect(IMPLEMENTATION, "expected 'implementation'"); err != nil {
		return nil, err
	}
	impl := &ast.Impl{}
	if p.match(OF) {
		trait, err := p.expectIdent("expected trait name after 'of'")
		if err != nil {
			return nil, err
		}
		impl.Trait = trait
	}
	if _, err := p.expect(FOR, "expected 'for' in implementation"); err != nil {
		return nil, err
	}
	target, err := p.expectIdent("expected implementation target type")
	if err != nil {
		return nil, err
	}
	impl.Target = target

	p.skipBreaks()
	if _, err := p.expect(BEGIN, "expected 'begin' to start the implementation"); err != nil {
		return nil, err
	}
	for {
		p.skipBreaks()
		if p.check(END) || p.isAtEnd() {
			break
		}
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		impl.Funcs = append(impl.Funcs, fn)
	}
	if err := p.expectEnd(IMPLEMENTATION, "implementation"); err != nil {
		return nil, err
	}
	return impl, nil
}

func (p *Parser) parseUse() (*ast.Use, error) {
	if _, err := p.expect(USE, "expected 'use'"); err != nil {
		return nil, err
	}
	use := &ast.Use{}
	for p.check(IDENTIFIER) {
		use.Segments = append(use.Segments, p.advance().Lexeme)
	}
	if len(use.Segments) == 0 {
		return nil, p.errorAtCurrent("expected at least one path segment after 'use'")
	}
	return use, nil
}

func (p *Parser) parseVerbatimItem() (*ast.Verbatim, error) {
	if _, err := p.expect(VERBATIM, "expected 'verbatim'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(ITEM, "expected 'item' after 'verbatim'"); err != nil {
		return nil, err
	}
	payload, err := p.expect(STRING, "expected a string payload after 'verbatim item'")
	if err != nil {
		return nil, err
	}
	return &ast.Verbatim{Source: payload.Lexeme}, nil
}
