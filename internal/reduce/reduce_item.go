package reduce

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"longform/internal/emit"
	"longform/internal/vocab"
)

func (r *reducer) function(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	params := n.ChildByFieldName("parameters")
	body := n.ChildByFieldName("body")
	if name == nil || params == nil || body == nil {
		return false
	}

	generics, ok := r.generics(n.ChildByFieldName("type_parameters"))
	if !ok {
		return false
	}

	paramList, ok := r.paramList(params)
	if !ok {
		return false
	}

	returnLine := ""
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		rendered, ok := r.renderType(ret)
		if !ok {
			return false
		}
		if rendered != "unit" {
			returnLine = rendered
		}
	}

	header := "function " + vocab.Sanitize(r.text(name))
	if generics != "" {
		header += " " + generics
	}
	em.Line(header)
	if paramList != "" {
		em.Line("    takes " + paramList)
	}
	if returnLine != "" {
		em.Line("    returns " + returnLine)
	}

	em.Begin()
	if !r.block(em, body) {
		return false
	}
	em.End("function")
	return true
}

// paramList renders "a of i32 and b of u32". Every parameter type but
// the last must be free of bare "and" so the list grammar stays
// unambiguous.
func (r *reducer) paramList(params *sitter.Node) (string, bool) {
	var rendered []string
	for i := 0; i < int(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Type() {
		case "parameter":
			pat := p.ChildByFieldName("pattern")
			ty := p.ChildByFieldName("type")
			if pat == nil || ty == nil || pat.Type() != "identifier" {
				return "", false
			}
			tyText, ok := r.renderType(ty)
			if !ok {
				return "", false
			}
			entry := vocab.Sanitize(r.text(pat)) + " of " + tyText
			if hasChildOfType(p, "mutable_specifier") {
				entry = "mutable " + entry
			}
			rendered = append(rendered, entry)
		case "self_parameter":
			switch r.text(p) {
			case "&self":
				rendered = append(rendered, "context of reference to context")
			case "&mut self":
				rendered = append(rendered, "context of mutable reference to context")
			case "self", "mut self":
				rendered = append(rendered, "context of context")
			default:
				return "", false
			}
		default:
			return "", false
		}
	}
	for _, p := range rendered[:max(len(rendered)-1, 0)] {
		if !andFree(p) {
			return "", false
		}
	}
	return strings.Join(rendered, " and "), true
}

func (r *reducer) structItem(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	if name == nil {
		return false
	}
	generics, ok := r.generics(n.ChildByFieldName("type_parameters"))
	if !ok {
		return false
	}
	body := n.ChildByFieldName("body")
	if body == nil || body.Type() != "field_declaration_list" {
		// Tuple and unit structs stay symbolic.
		return false
	}

	header := "structure " + vocab.Sanitize(r.text(name))
	if generics != "" {
		header += " " + generics
	}
	em.Line(header + " with fields")
	em.Indent()
	for i := 0; i < int(body.NamedChildCount()); i++ {
		field := body.NamedChild(i)
		switch field.Type() {
		case "field_declaration":
			fieldName := field.ChildByFieldName("name")
			fieldType := field.ChildByFieldName("type")
			if fieldName == nil || fieldType == nil {
				return false
			}
			rendered, ok := r.renderType(fieldType)
			if !ok {
				return false
			}
			em.Line(vocab.Sanitize(r.text(fieldName)) + " of " + rendered)
		case "line_comment", "block_comment":
			continue
		default:
			return false
		}
	}
	em.Dedent()
	em.Line("end structure")
	return true
}

func (r *reducer) enumItem(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil {
		return false
	}
	generics, ok := r.generics(n.ChildByFieldName("type_parameters"))
	if !ok {
		return false
	}

	header := "enumeration " + vocab.Sanitize(r.text(name))
	if generics != "" {
		header += " " + generics
	}
	em.Line(header + " with variants")
	em.Indent()
	for i := 0; i < int(body.NamedChildCount()); i++ {
		variant := body.NamedChild(i)
		switch variant.Type() {
		case "enum_variant":
			line, ok := r.enumVariant(variant)
			if !ok {
				return false
			}
			em.Line(line)
		case "line_comment", "block_comment":
			continue
		default:
			return false
		}
	}
	em.Dedent()
	em.Line("end enumeration")
	return true
}

func (r *reducer) enumVariant(variant *sitter.Node) (string, bool) {
	name := variant.ChildByFieldName("name")
	if name == nil {
		return "", false
	}
	line := vocab.Sanitize(r.text(name))

	body := variant.ChildByFieldName("body")
	if body == nil {
		return line, true
	}

	switch body.Type() {
	case "ordered_field_declaration_list":
		var types []string
		for i := 0; i < int(body.NamedChildCount()); i++ {
			c := body.NamedChild(i)
			if c.Type() == "line_comment" || c.Type() == "block_comment" {
				continue
			}
			rendered, ok := r.renderType(c)
			if !ok {
				return "", false
			}
			types = append(types, rendered)
		}
		switch len(types) {
		case 0:
			return line, true
		case 1:
			return line + " of " + types[0], true
		default:
			return line + " of tuple of " + strings.Join(types, " and "), true
		}
	case "field_declaration_list":
		var fields []string
		for i := 0; i < int(body.NamedChildCount()); i++ {
			field := body.NamedChild(i)
			if field.Type() == "line_comment" || field.Type() == "block_comment" {
				continue
			}
			if field.Type() != "field_declaration" {
				return "", false
			}
			fieldName := field.ChildByFieldName("name")
			fieldType := field.ChildByFieldName("type")
			if fieldName == nil || fieldType == nil {
				return "", false
			}
			rendered, ok := r.renderType(fieldType)
			if !ok {
				return "", false
			}
			fields = append(fields, vocab.Sanitize(r.text(fieldName))+" of "+rendered)
		}
		for _, f := range fields[:max(len(fields)-1, 0)] {
			if !andFree(f) {
				return "", false
			}
		}
		return line + " with " + strings.Join(fields, " and "), true
	default:
		return "", false
	}
}

func (r *reducer) typeAlias(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	ty := n.ChildByFieldName("type")
	if name == nil || ty == nil {
		return false
	}
	generics, ok := r.generics(n.ChildByFieldName("type_parameters"))
	if !ok {
		return false
	}
	rendered, ok := r.renderType(ty)
	if !ok {
		return false
	}
	line := "type " + vocab.Sanitize(r.text(name))
	if generics != "" {
		line += " " + generics
	}
	em.Line(line + " as " + rendered)
	return true
}

func (r *reducer) constItem(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	ty := n.ChildByFieldName("type")
	value := n.ChildByFieldName("value")
	if name == nil || ty == nil || value == nil {
		return false
	}
	tyText, ok := r.renderType(ty)
	if !ok {
		return false
	}
	valueText, ok := r.renderExpr(value)
	if !ok {
		return false
	}
	em.Line("constant " + vocab.Sanitize(r.text(name)) + " of " + tyText)
	em.Begin()
	em.Line(valueText)
	em.End("constant")
	return true
}

func (r *reducer) staticItem(em *emit.Emitter, n *sitter.Node) bool {
	name := n.ChildByFieldName("name")
	ty := n.ChildByFieldName("type")
	value := n.ChildByFieldName("value")
	if name == nil || ty == nil || value == nil {
		return false
	}
	tyText, ok := r.renderType(ty)
	if !ok {
		return false
	}
	valueText, ok := r.renderExpr(value)
	if !ok {
		return false
	}
	line := "static "
	if hasChildOfType(n, "mutable_specifier") {
		line += "mutable "
	}
	em.Line(line + vocab.Sanitize(r.text(name)) + " of " + tyText)
	em.Begin()
	em.Line(valueText)
	em.End("static")
	return true
}

func (r *reducer) implItem(em *emit.Emitter, n *sitter.Node) bool {
	if n.ChildByFieldName("type_parameters") != nil {
		return false
	}
	target := n.ChildByFieldName("type")
	body := n.ChildByFieldName("body")
	if target == nil || body == nil || target.Type() != "type_identifier" {
		return false
	}

	header := "implementation"
	if trait := n.ChildByFieldName("trait"); trait != nil {
		if trait.Type() != "type_identifier" {
			return false
		}
		header += " of " + vocab.Sanitize(r.text(trait))
	}
	header += " for " + vocab.Sanitize(r.text(target))

	em.Line(header)
	em.Begin()
	first := true
	for i := 0; i < int(body.NamedChildCount()); i++ {
		member := body.NamedChild(i)
		switch member.Type() {
		case "function_item":
			if !first {
				em.BlankLine()
			}
			first = false
			if !r.function(em, member) {
				return false
			}
		case "line_comment", "block_comment":
			continue
		default:
			return false
		}
	}
	em.End("implementation")
	return true
}

func (r *reducer) useItem(em *emit.Emitter, n *sitter.Node) bool {
	arg := n.ChildByFieldName("argument")
	if arg == nil {
		return false
	}
	segments, ok := r.pathSegments(arg)
	if !ok {
		return false
	}
	em.Line("use " + strings.Join(segments, " "))
	return true
}

// pathSegments flattens a plain identifier path; lists, globs and
// renames are outside the supported subset.
func (r *reducer) pathSegments(n *sitter.Node) ([]string, bool) {
	switch n.Type() {
	case "identifier", "type_identifier":
		return []string{vocab.Sanitize(r.text(n))}, true
	case "scoped_identifier", "scoped_type_identifier":
		path := n.ChildByFieldName("path")
		name := n.ChildByFieldName("name")
		if path == nil || name == nil {
			return nil, false
		}
		head, ok := r.pathSegments(path)
		if !ok {
			return nil, false
		}
		return append(head, vocab.Sanitize(r.text(name))), true
	case "crate", "super", "self":
		// Relative paths do not survive the round trip.
		return nil, false
	default:
		return nil, false
	}
}
