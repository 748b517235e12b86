package reduce

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"longform/internal/vocab"
)

// renderType lowers a type annotation. Trait objects, opaque types,
// lifetimes, function pointers and const-generic arithmetic are outside
// the supported subset and push the item to verbatim.
func (r *reducer) renderType(n *sitter.Node) (string, bool) {
	switch n.Type() {
	case "primitive_type":
		return r.simpleTypeName(r.text(n)), true

	case "type_identifier":
		name := r.text(n)
		if name == "Self" {
			return "context", true
		}
		return r.simpleTypeName(name), true

	case "scoped_type_identifier":
		// Only the final segment matters for the verbose rendering, the
		// way a qualified std path collapses to its container name.
		last := n.ChildByFieldName("name")
		if last == nil {
			return "", false
		}
		return r.simpleTypeName(r.text(last)), true

	case "unit_type":
		return "unit", true

	case "generic_type":
		return r.renderGenericType(n)

	case "reference_type":
		if hasChildOfType(n, "lifetime") {
			return "", false
		}
		elem := n.ChildByFieldName("type")
		if elem == nil {
			return "", false
		}
		inner, ok := r.renderType(elem)
		if !ok {
			return "", false
		}
		if hasChildOfType(n, "mutable_specifier") {
			return "mutable reference to " + inner, true
		}
		return "reference to " + inner, true

	case "pointer_type":
		elem := n.ChildByFieldName("type")
		if elem == nil {
			return "", false
		}
		inner, ok := r.renderType(elem)
		if !ok {
			return "", false
		}
		if hasChildOfType(n, "mutable_specifier") {
			return "mutable raw pointer to " + inner, true
		}
		return "raw pointer to " + inner, true

	case "tuple_type":
		var elems []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			inner, ok := r.renderType(n.NamedChild(i))
			if !ok {
				return "", false
			}
			elems = append(elems, inner)
		}
		if len(elems) == 0 {
			return "unit", true
		}
		return "tuple of " + strings.Join(elems, " and "), true

	case "array_type":
		elem := n.ChildByFieldName("element")
		if elem == nil {
			return "", false
		}
		inner, ok := r.renderType(elem)
		if !ok {
			return "", false
		}
		length := n.ChildByFieldName("length")
		if length == nil {
			return "slice of " + inner, true
		}
		if length.Type() != "integer_literal" || !plainInteger(r.text(length)) {
			return "", false
		}
		return "array of " + inner + " with length " + r.text(length), true

	case "slice_type":
		elem := n.NamedChild(0)
		if elem == nil {
			return "", false
		}
		inner, ok := r.renderType(elem)
		if !ok {
			return "", false
		}
		return "slice of " + inner, true

	default:
		return "", false
	}
}

// simpleTypeName maps a bare type name: primitives pass through, the
// catalog renames the standard containers, and anything else is a user
// type run through the sanitizer.
func (r *reducer) simpleTypeName(name string) string {
	if vocab.IsNumericPrimitive(name) {
		return name
	}
	if mapped, ok := vocab.SimpleTypeToLongform(name); ok {
		return mapped
	}
	switch name {
	case "HashMap":
		return "hash map"
	case "Rc":
		return "reference counted"
	case "Arc":
		return "atomic reference counted"
	}
	return vocab.Sanitize(name)
}

func (r *reducer) renderGenericType(n *sitter.Node) (string, bool) {
	base := n.ChildByFieldName("type")
	argList := n.ChildByFieldName("type_arguments")
	if base == nil || argList == nil {
		return "", false
	}

	var baseName string
	switch base.Type() {
	case "type_identifier":
		baseName = r.text(base)
	case "scoped_type_identifier":
		last := base.ChildByFieldName("name")
		if last == nil {
			return "", false
		}
		baseName = r.text(last)
	default:
		return "", false
	}

	var args []string
	for i := 0; i < int(argList.NamedChildCount()); i++ {
		arg := argList.NamedChild(i)
		rendered, ok := r.renderType(arg)
		if !ok {
			return "", false
		}
		args = append(args, rendered)
	}

	switch baseName {
	case "Vec":
		if len(args) != 1 {
			return "", false
		}
		return "list of " + args[0], true
	case "Option":
		if len(args) != 1 {
			return "", false
		}
		return "optional " + args[0], true
	case "Box":
		if len(args) != 1 {
			return "", false
		}
		return "box containing " + args[0], true
	case "Result":
		if len(args) != 2 {
			return "", false
		}
		return "result of " + args[0] + " or error " + args[1], true
	case "HashMap":
		if len(args) != 2 {
			return "", false
		}
		return "hash map from " + args[0] + " to " + args[1], true
	case "Rc":
		if len(args) != 1 {
			return "", false
		}
		return "reference counted " + args[0], true
	case "Arc":
		if len(args) != 1 {
			return "", false
		}
		return "atomic reference counted " + args[0], true
	default:
		// A user generic carries exactly one argument; see the parser.
		if len(args) != 1 {
			return "", false
		}
		return vocab.Sanitize(baseName) + " of " + args[0], true
	}
}
