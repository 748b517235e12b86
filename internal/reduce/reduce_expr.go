package reduce

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"longform/internal/vocab"
)

func unwrapParens(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		n = n.NamedChild(0)
	}
	return n
}

// renderExpr lowers an expression subtree to its single-line verbose
// form. A false result sends the enclosing item down the verbatim path.
func (r *reducer) renderExpr(n *sitter.Node) (string, bool) {
	n = unwrapParens(n)
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "identifier":
		if r.text(n) == "None" {
			return "none", true
		}
		return vocab.Sanitize(r.text(n)), true

	case "self":
		return "context", true

	case "unit_expression":
		return "unit", true

	case "integer_literal", "float_literal", "boolean_literal", "string_literal", "char_literal":
		return r.renderLiteral(n)

	case "binary_expression":
		return r.renderBinary(n)

	case "unary_expression":
		return r.renderUnary(n)

	case "reference_expression":
		return r.renderReference(n)

	case "field_expression":
		return r.renderField(n)

	case "index_expression":
		return r.renderIndex(n)

	case "call_expression":
		return r.renderCall(n)

	case "try_expression":
		return r.renderTry(n)

	case "macro_invocation":
		return r.renderMacro(n)

	case "scoped_identifier":
		return r.renderPathExpr(n)

	case "tuple_expression":
		return r.renderElemList(n, "tuple of ")

	case "array_expression":
		return r.renderElemList(n, "array of ")

	case "range_expression":
		return r.renderRange(n)

	case "closure_expression":
		return r.renderClosure(n)

	case "struct_expression":
		return r.renderStructExpr(n)

	case "if_expression":
		return r.renderIfExpr(n)

	default:
		return "", false
	}
}

// renderOperand lowers receiver- and base-position expressions, which
// must stay below the binary level so the surrounding phrase grammar
// can claim the following words.
func (r *reducer) renderOperand(n *sitter.Node) (string, bool) {
	n = unwrapParens(n)
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "identifier", "self", "unit_expression",
		"integer_literal", "float_literal", "boolean_literal", "string_literal", "char_literal",
		"field_expression", "index_expression", "call_expression", "try_expression",
		"macro_invocation", "scoped_identifier":
		return r.renderExpr(n)
	default:
		return "", false
	}
}

func (r *reducer) renderLiteral(n *sitter.Node) (string, bool) {
	text := r.text(n)
	switch n.Type() {
	case "integer_literal":
		if !plainInteger(text) {
			return "", false
		}
		return text, true
	case "float_literal":
		if !plainFloat(text) {
			return "", false
		}
		return text, true
	case "boolean_literal":
		return text, true
	case "string_literal", "char_literal":
		if len(text) < 2 || !escapesSupported(text[1:len(text)-1]) {
			return "", false
		}
		return text, true
	default:
		return "", false
	}
}

func plainInteger(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if c := s[i]; !isDigitByte(c) && c != '_' {
			return false
		}
	}
	return true
}

func plainFloat(s string) bool {
	dots := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case isDigitByte(c) || c == '_':
		case c == '.':
			dots++
			if dots > 1 || i+1 >= len(s) || !isDigitByte(s[i+1]) {
				return false
			}
		default:
			return false
		}
	}
	return dots == 1
}

func isDigitByte(c byte) bool {
	return '0' <= c && c <= '9'
}

// escapesSupported limits literal bodies to the escape set the verbose
// tokenizer can reproduce.
func escapesSupported(body string) bool {
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' {
			continue
		}
		i++
		if i >= len(body) {
			return false
		}
		switch body[i] {
		case 'n', 't', 'r', '\\', '"', '\'', '0':
		default:
			return false
		}
	}
	return true
}

func (r *reducer) renderBinary(n *sitter.Node) (string, bool) {
	operator := n.ChildByFieldName("operator")
	left := unwrapParens(n.ChildByFieldName("left"))
	right := unwrapParens(n.ChildByFieldName("right"))
	if operator == nil || left == nil || right == nil {
		return "", false
	}
	op, ok := vocab.BinOpFromSymbol(r.text(operator))
	if !ok {
		return "", false
	}

	// The verbose surface has no parentheses; any grouping the default
	// left-associative reading would lose keeps its source instead.
	if sub, isBin := r.binOpOf(left); isBin && sub.Precedence() < op.Precedence() {
		return "", false
	}
	if sub, isBin := r.binOpOf(right); isBin && sub.Precedence() <= op.Precedence() {
		return "", false
	}

	leftText, ok := r.renderExpr(left)
	if !ok {
		return "", false
	}
	rightText, ok := r.renderExpr(right)
	if !ok {
		return "", false
	}
	return leftText + " " + op.Phrase() + " " + rightText, true
}

func (r *reducer) binOpOf(n *sitter.Node) (vocab.BinOp, bool) {
	if n.Type() != "binary_expression" {
		return vocab.OpInvalid, false
	}
	operator := n.ChildByFieldName("operator")
	if operator == nil {
		return vocab.OpInvalid, false
	}
	return vocab.BinOpFromSymbol(r.text(operator))
}

func (r *reducer) renderUnary(n *sitter.Node) (string, bool) {
	operand := unwrapParens(n.NamedChild(0))
	if operand == nil || n.ChildCount() == 0 {
		return "", false
	}
	if operand.Type() == "binary_expression" || operand.Type() == "range_expression" {
		return "", false
	}

	op := n.Child(0).Type()
	if op == "-" {
		if operand.Type() == "integer_literal" || operand.Type() == "float_literal" {
			rendered, ok := r.renderLiteral(operand)
			if !ok {
				return "", false
			}
			return "-" + rendered, true
		}
	}

	inner, ok := r.renderExpr(operand)
	if !ok {
		return "", false
	}
	unOp, ok := vocab.UnOpFromSymbol(op)
	if !ok {
		return "", false
	}
	return unOp.Word() + " " + inner, true
}

func (r *reducer) renderReference(n *sitter.Node) (string, bool) {
	value := unwrapParens(n.ChildByFieldName("value"))
	if value == nil || value.Type() == "binary_expression" {
		return "", false
	}
	inner, ok := r.renderExpr(value)
	if !ok {
		return "", false
	}
	if hasChildOfType(n, "mutable_specifier") {
		return "mutable reference to " + inner, true
	}
	return "reference to " + inner, true
}

func (r *reducer) renderField(n *sitter.Node) (string, bool) {
	field := n.ChildByFieldName("field")
	value := n.ChildByFieldName("value")
	if field == nil || value == nil || field.Type() != "field_identifier" {
		return "", false
	}
	base, ok := r.renderOperand(value)
	if !ok {
		return "", false
	}
	return "field " + vocab.Sanitize(r.text(field)) + " of " + base, true
}

func (r *reducer) renderIndex(n *sitter.Node) (string, bool) {
	if n.NamedChildCount() != 2 {
		return "", false
	}
	base, ok := r.renderOperand(n.NamedChild(0))
	if !ok {
		return "", false
	}
	index, ok := r.renderExpr(n.NamedChild(1))
	if !ok {
		return "", false
	}
	return "index " + base + " at " + index, true
}

func (r *reducer) renderCall(n *sitter.Node) (string, bool) {
	function := unwrapParens(n.ChildByFieldName("function"))
	arguments := n.ChildByFieldName("arguments")
	if function == nil || arguments == nil {
		return "", false
	}

	args, ok := r.renderArgs(arguments)
	if !ok {
		return "", false
	}

	switch function.Type() {
	case "field_expression":
		method := function.ChildByFieldName("field")
		receiverNode := function.ChildByFieldName("value")
		if method == nil || receiverNode == nil || method.Type() != "field_identifier" {
			return "", false
		}
		receiver, ok := r.renderOperand(receiverNode)
		if !ok {
			return "", false
		}
		text := "call method " + vocab.Sanitize(r.text(method)) + " on " + receiver
		if args != "" {
			text += " with " + args
		}
		return text, true

	case "identifier":
		name := r.text(function)
		switch name {
		case "Some", "Ok", "Err":
			if arguments.NamedChildCount() != 1 {
				return "", false
			}
			arg, ok := r.renderExpr(arguments.NamedChild(0))
			if !ok {
				return "", false
			}
			switch name {
			case "Some":
				return "some of " + arg, true
			case "Ok":
				return "ok of " + arg, true
			default:
				return "error of " + arg, true
			}
		}
		text := "call " + vocab.Sanitize(name)
		if args != "" {
			text += " with " + args
		}
		return text, true

	case "scoped_identifier":
		segments, ok := r.pathSegments(function)
		if !ok || len(segments) < 2 {
			return "", false
		}
		fnName := segments[len(segments)-1]
		typePath := strings.Join(segments[:len(segments)-1], " ")
		text := "call associated function " + fnName + " on " + typePath
		if args != "" {
			text += " with " + args
		}
		return text, true

	default:
		return "", false
	}
}

// renderArgs joins call arguments with "and"; every argument but the
// last must be and-free to keep the separators unambiguous.
func (r *reducer) renderArgs(arguments *sitter.Node) (string, bool) {
	var rendered []string
	for i := 0; i < int(arguments.NamedChildCount()); i++ {
		arg := arguments.NamedChild(i)
		if arg.Type() == "line_comment" || arg.Type() == "block_comment" {
			continue
		}
		text, ok := r.renderExpr(arg)
		if !ok {
			return "", false
		}
		rendered = append(rendered, text)
	}
	for _, arg := range rendered[:max(len(rendered)-1, 0)] {
		if !andFree(arg) {
			return "", false
		}
	}
	return strings.Join(rendered, " and "), true
}

// renderTry lowers "expr?". The suffix phrase binds to the innermost
// call the verbose parser completes, so the operand must be a call with
// no other call anywhere beneath it.
func (r *reducer) renderTry(n *sitter.Node) (string, bool) {
	inner := unwrapParens(n.NamedChild(0))
	if inner == nil || inner.Type() != "call_expression" {
		return "", false
	}
	if subtreeHasNestedCall(inner) {
		return "", false
	}
	rendered, ok := r.renderCall(inner)
	if !ok {
		return "", false
	}
	return rendered + " unwrap or return error", true
}

func subtreeHasNestedCall(root *sitter.Node) bool {
	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			switch c.Type() {
			case "call_expression", "macro_invocation", "try_expression":
				return true
			}
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(root)
}

func (r *reducer) renderPathExpr(n *sitter.Node) (string, bool) {
	segments, ok := r.pathSegments(n)
	if !ok || len(segments) < 2 {
		return "", false
	}
	last := segments[len(segments)-1]
	return "variant " + last + " of " + strings.Join(segments[:len(segments)-1], " "), true
}

func (r *reducer) renderElemList(n *sitter.Node, prefix string) (string, bool) {
	var elems []string
	for i := 0; i < int(n.NamedChildCount()); i++ {
		elem, ok := r.renderExpr(n.NamedChild(i))
		if !ok {
			return "", false
		}
		elems = append(elems, elem)
	}
	if len(elems) == 0 {
		return "", false
	}
	return prefix + strings.Join(elems, " and "), true
}

func (r *reducer) renderRange(n *sitter.Node) (string, bool) {
	if n.NamedChildCount() != 2 {
		return "", false
	}
	start, ok := r.renderExpr(n.NamedChild(0))
	if !ok {
		return "", false
	}
	end, ok := r.renderExpr(n.NamedChild(1))
	if !ok {
		return "", false
	}
	if hasTokenChild(n, "..=") {
		return "inclusive range from " + start + " to " + end, true
	}
	return "range from " + start + " to " + end, true
}

func (r *reducer) renderClosure(n *sitter.Node) (string, bool) {
	body := n.ChildByFieldName("body")
	if body == nil || body.Type() == "block" {
		return "", false
	}
	bodyText, ok := r.renderExpr(body)
	if !ok {
		return "", false
	}

	var params []string
	if list := n.ChildByFieldName("parameters"); list != nil {
		for i := 0; i < int(list.NamedChildCount()); i++ {
			p := list.NamedChild(i)
			switch p.Type() {
			case "identifier":
				params = append(params, vocab.Sanitize(r.text(p)))
			case "parameter":
				pat := p.ChildByFieldName("pattern")
				ty := p.ChildByFieldName("type")
				if pat == nil || ty == nil || pat.Type() != "identifier" {
					return "", false
				}
				rendered, ok := r.renderType(ty)
				if !ok {
					return "", false
				}
				params = append(params, vocab.Sanitize(r.text(pat))+" of "+rendered)
			default:
				return "", false
			}
		}
	}
	for _, p := range params {
		if !andFree(p) {
			return "", false
		}
	}

	prefix := ""
	if hasTokenChild(n, "move") {
		prefix = "move "
	}
	if len(params) == 0 {
		return prefix + "closure with body " + bodyText, true
	}
	return prefix + "closure with parameters " + strings.Join(params, " and ") + " and body " + bodyText, true
}

func (r *reducer) renderStructExpr(n *sitter.Node) (string, bool) {
	name := n.ChildByFieldName("name")
	body := n.ChildByFieldName("body")
	if name == nil || body == nil || name.Type() != "type_identifier" {
		return "", false
	}

	var fields []string
	for i := 0; i < int(body.NamedChildCount()); i++ {
		field := body.NamedChild(i)
		switch field.Type() {
		case "field_initializer":
			fieldName := field.ChildByFieldName("field")
			if fieldName == nil {
				fieldName = field.ChildByFieldName("name")
			}
			fieldValue := field.ChildByFieldName("value")
			if fieldName == nil || fieldValue == nil {
				return "", false
			}
			value, ok := r.renderExpr(fieldValue)
			if !ok {
				return "", false
			}
			fields = append(fields, vocab.Sanitize(r.text(fieldName))+" of "+value)
		case "shorthand_field_initializer":
			ident := vocab.Sanitize(r.text(field))
			fields = append(fields, ident+" of "+ident)
		case "line_comment", "block_comment":
			continue
		default:
			return "", false
		}
	}
	for _, f := range fields[:max(len(fields)-1, 0)] {
		if !andFree(f) {
			return "", false
		}
	}

	text := "create " + vocab.Sanitize(r.text(name))
	if len(fields) > 0 {
		text += " with " + strings.Join(fields, " and ")
	}
	return text, true
}

// renderIfExpr lowers a value-position conditional whose arms are both
// single expressions.
func (r *reducer) renderIfExpr(n *sitter.Node) (string, bool) {
	cond := n.ChildByFieldName("condition")
	consequence := n.ChildByFieldName("consequence")
	alternative := n.ChildByFieldName("alternative")
	if cond == nil || consequence == nil || alternative == nil {
		return "", false
	}
	condText, ok := r.renderExpr(cond)
	if !ok {
		return "", false
	}
	thenExpr := singleTailExpr(consequence)
	if thenExpr == nil {
		return "", false
	}
	elseBlock := alternative.NamedChild(0)
	if elseBlock == nil || elseBlock.Type() != "block" {
		return "", false
	}
	elseExpr := singleTailExpr(elseBlock)
	if elseExpr == nil {
		return "", false
	}
	thenText, ok := r.renderExpr(thenExpr)
	if !ok {
		return "", false
	}
	elseText, ok := r.renderExpr(elseExpr)
	if !ok {
		return "", false
	}
	return "if " + condText + " then " + thenText + " otherwise " + elseText, true
}

// singleTailExpr returns the lone tail expression of a block, or nil.
func singleTailExpr(block *sitter.Node) *sitter.Node {
	var tail *sitter.Node
	for i := 0; i < int(block.NamedChildCount()); i++ {
		c := block.NamedChild(i)
		switch c.Type() {
		case "line_comment", "block_comment":
			continue
		case "expression_statement", "let_declaration":
			return nil
		default:
			if tail != nil {
				return nil
			}
			tail = c
		}
	}
	return tail
}
