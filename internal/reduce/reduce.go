// Package reduce lowers symbolic source into Longform text. The host
// parser is tree-sitter's Rust grammar; the reducer walks the concrete
// tree and emits verbose lines through the shared emitter. Any subtree
// outside the supported subset wraps its whole item as a verbatim
// payload, so reduction only fails when the host parser rejects the
// input outright.
package reduce

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"longform/internal/emit"
	"longform/internal/vocab"
)

// HostParseError reports that the symbolic source did not parse.
type HostParseError struct {
	Line   int
	Column int
	Offset int
}

func (e *HostParseError) Error() string {
	return fmt.Sprintf("%d:%d: the symbolic source does not parse", e.Line, e.Column)
}

// Reduce translates symbolic source bytes into Longform text.
func Reduce(source []byte) (string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		bad := firstErrorNode(root)
		point := bad.StartPoint()
		return "", &HostParseError{
			Line:   int(point.Row) + 1,
			Column: int(point.Column) + 1,
			Offset: int(bad.StartByte()),
		}
	}

	r := &reducer{src: source}
	em := emit.New()

	first := true
	attrStart := -1
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		switch n.Type() {
		case "line_comment", "block_comment":
			// Comments are dropped.
			continue
		case "attribute_item", "inner_attribute_item":
			// Attributes cannot be expressed verbosely; they ride along
			// with the item they decorate as one verbatim payload.
			if attrStart < 0 {
				attrStart = int(n.StartByte())
			}
			continue
		}

		if !first {
			em.BlankLine()
		}
		first = false

		if attrStart >= 0 {
			r.verbatimRange(em, attrStart, int(n.EndByte()))
			attrStart = -1
			continue
		}
		r.item(em, n)
	}
	if attrStart >= 0 {
		if !first {
			em.BlankLine()
		}
		r.verbatimRange(em, attrStart, len(source))
	}

	return em.Finalize(), nil
}

func firstErrorNode(root *sitter.Node) *sitter.Node {
	var walk func(n *sitter.Node) *sitter.Node
	walk = func(n *sitter.Node) *sitter.Node {
		if n.IsError() || n.IsMissing() {
			return n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if found := walk(n.Child(i)); found != nil {
				return found
			}
		}
		return nil
	}
	if found := walk(root); found != nil {
		return found
	}
	return root
}

type reducer struct {
	src []byte
}

func (r *reducer) text(n *sitter.Node) string {
	return n.Content(r.src)
}

// item lowers one top-level declaration; unsupported shapes become
// verbatim payloads.
func (r *reducer) item(em *emit.Emitter, n *sitter.Node) {
	tmp := emit.New()
	ok := false
	switch n.Type() {
	case "function_item":
		ok = r.function(tmp, n)
	case "struct_item":
		ok = r.structItem(tmp, n)
	case "enum_item":
		ok = r.enumItem(tmp, n)
	case "type_item":
		ok = r.typeAlias(tmp, n)
	case "const_item":
		ok = r.constItem(tmp, n)
	case "static_item":
		ok = r.staticItem(tmp, n)
	case "impl_item":
		ok = r.implItem(tmp, n)
	case "use_declaration":
		ok = r.useItem(tmp, n)
	}
	if !ok {
		r.verbatim(em, n)
		return
	}
	em.Write(tmp.Finalize())
}

// verbatim wraps the exact source bytes of n as an opaque payload.
func (r *reducer) verbatim(em *emit.Emitter, n *sitter.Node) {
	r.verbatimRange(em, int(n.StartByte()), int(n.EndByte()))
}

func (r *reducer) verbatimRange(em *emit.Emitter, start, end int) {
	payload := strings.TrimRight(string(r.src[start:end]), "\n")
	em.Line(`verbatim item "` + escapePayload(payload) + `"`)
}

// escapePayload applies the C-style convention the tokenizer undoes.
func escapePayload(s string) string {
	var b strings.Builder
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
	return b.String()
}

// generics renders "with generic type T implementing A and B" groups for
// an optional type_parameters node. Lifetimes and const generics are out
// of the supported subset.
func (r *reducer) generics(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", true
	}
	var groups []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p := n.NamedChild(i)
		switch p.Type() {
		case "type_identifier":
			groups = append(groups, "with generic type "+vocab.Sanitize(r.text(p)))
		case "constrained_type_parameter":
			left := p.ChildByFieldName("left")
			if left == nil || left.Type() != "type_identifier" {
				return "", false
			}
			bounds, ok := r.traitBounds(p)
			if !ok {
				return "", false
			}
			groups = append(groups, "with generic type "+vocab.Sanitize(r.text(left))+" implementing "+bounds)
		default:
			return "", false
		}
	}
	return strings.Join(groups, " "), true
}

func (r *reducer) traitBounds(param *sitter.Node) (string, bool) {
	bounds := childOfType(param, "trait_bounds")
	if bounds == nil {
		return "", false
	}
	var names []string
	for i := 0; i < int(bounds.NamedChildCount()); i++ {
		b := bounds.NamedChild(i)
		if b.Type() != "type_identifier" {
			return "", false
		}
		names = append(names, vocab.Sanitize(r.text(b)))
	}
	if len(names) == 0 {
		return "", false
	}
	return strings.Join(names, " and "), true
}

// Node helpers

func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}

func hasChildOfType(n *sitter.Node, typ string) bool {
	return childOfType(n, typ) != nil
}

func hasTokenChild(n *sitter.Node, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.Child(i).Type() == token {
			return true
		}
	}
	return false
}

// andFree reports whether a rendered fragment can sit in an
// "and"-separated list without being re-parsed as two entries.
func andFree(rendered string) bool {
	return !strings.Contains(rendered, " and ")
}
