package reduce

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"longform/internal/emit"
	"longform/internal/vocab"
)

// block lowers the children of a block node. The tail expression, when
// present, is the block's final named child and renders as a bare line.
// The verbose parser reads any final expression line back as the tail,
// so a block ending in a semicolon-terminated value expression cannot
// be lowered faithfully and fails over to verbatim; macros and
// statement-shaped expressions are unit-typed either way.
func (r *reducer) block(em *emit.Emitter, body *sitter.Node) bool {
	if !tailSafe(body) {
		return false
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		n := body.NamedChild(i)
		switch n.Type() {
		case "line_comment", "block_comment", "empty_statement":
			continue
		case "let_declaration":
			if !r.letStmt(em, n) {
				return false
			}
		case "expression_statement":
			if !r.exprStmt(em, n.NamedChild(0)) {
				return false
			}
		default:
			// The tail expression, or something we cannot lower.
			if !r.exprStmt(em, n) {
				return false
			}
		}
	}
	return true
}

func tailSafe(body *sitter.Node) bool {
	var last *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "line_comment", "block_comment", "empty_statement":
			continue
		}
		last = c
	}
	if last == nil || last.Type() != "expression_statement" {
		return true
	}
	inner := last.NamedChild(0)
	if inner == nil {
		return true
	}
	switch inner.Type() {
	case "macro_invocation",
		"if_expression", "while_expression", "for_expression", "loop_expression",
		"match_expression", "assignment_expression", "compound_assignment_expr",
		"return_expression", "break_expression", "continue_expression":
		return true
	default:
		return false
	}
}

func (r *reducer) letStmt(em *emit.Emitter, n *sitter.Node) bool {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	if pattern == nil || value == nil {
		return false
	}

	mutable := hasChildOfType(n, "mutable_specifier")
	name := pattern
	if pattern.Type() == "mut_pattern" {
		mutable = true
		name = pattern.NamedChild(0)
		if name == nil {
			return false
		}
	}
	if name.Type() != "identifier" {
		return false
	}

	valueText, ok := r.renderExpr(value)
	if !ok {
		return false
	}

	line := "define "
	if mutable {
		line += "mutable "
	}
	line += vocab.Sanitize(r.text(name))
	if ty := n.ChildByFieldName("type"); ty != nil {
		rendered, ok := r.renderType(ty)
		if !ok {
			return false
		}
		line += " of " + rendered
	}
	em.Line(line + " as " + valueText)
	return true
}

// exprStmt lowers an expression in statement position, giving control
// flow its block rendering.
func (r *reducer) exprStmt(em *emit.Emitter, n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "if_expression":
		return r.ifStmt(em, n)
	case "while_expression":
		return r.whileStmt(em, n)
	case "for_expression":
		return r.forStmt(em, n)
	case "loop_expression":
		return r.loopStmt(em, n)
	case "match_expression":
		return r.matchStmt(em, n)
	case "assignment_expression":
		return r.assignStmt(em, n)
	case "compound_assignment_expr":
		return r.compoundAssignStmt(em, n)
	case "return_expression":
		if value := n.NamedChild(0); value != nil {
			rendered, ok := r.renderExpr(value)
			if !ok {
				return false
			}
			em.Line("return " + rendered)
		} else {
			em.Line("return")
		}
		return true
	case "break_expression":
		if n.NamedChildCount() > 0 {
			return false
		}
		em.Line("exit loop")
		return true
	case "continue_expression":
		if n.NamedChildCount() > 0 {
			return false
		}
		em.Line("continue loop")
		return true
	default:
		rendered, ok := r.renderExpr(n)
		if !ok {
			return false
		}
		em.Line(rendered)
		return true
	}
}

func (r *reducer) assignStmt(em *emit.Emitter, n *sitter.Node) bool {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	if left == nil || right == nil {
		return false
	}
	target, ok := r.renderAssignTarget(left)
	if !ok {
		return false
	}
	value, ok := r.renderExpr(right)
	if !ok {
		return false
	}
	em.Line("set " + target + " equal to " + value)
	return true
}

// compoundAssignStmt desugars "x += e" into "set x equal to x plus e".
// A compound right-hand side would regroup, so only simple operands
// qualify.
func (r *reducer) compoundAssignStmt(em *emit.Emitter, n *sitter.Node) bool {
	left := n.ChildByFieldName("left")
	right := n.ChildByFieldName("right")
	operator := n.ChildByFieldName("operator")
	if left == nil || right == nil || operator == nil {
		return false
	}
	symbol := strings.TrimSuffix(r.text(operator), "=")
	op, ok := vocab.BinOpFromSymbol(symbol)
	if !ok {
		return false
	}
	if isCompoundExpr(right) {
		return false
	}
	target, ok := r.renderAssignTarget(left)
	if !ok {
		return false
	}
	value, ok := r.renderExpr(right)
	if !ok {
		return false
	}
	em.Line("set " + target + " equal to " + target + " " + op.Phrase() + " " + value)
	return true
}

// renderAssignTarget renders an lvalue at operand level.
func (r *reducer) renderAssignTarget(n *sitter.Node) (string, bool) {
	n = unwrapParens(n)
	switch n.Type() {
	case "identifier", "self", "field_expression", "index_expression":
		return r.renderOperand(n)
	case "unary_expression":
		if r.text(n.Child(0)) != "*" {
			return "", false
		}
		operand := n.NamedChild(0)
		if operand == nil {
			return "", false
		}
		inner, ok := r.renderAssignTarget(operand)
		if !ok {
			return "", false
		}
		return "dereference " + inner, true
	default:
		return "", false
	}
}

func (r *reducer) ifStmt(em *emit.Emitter, n *sitter.Node) bool {
	cond := n.ChildByFieldName("condition")
	consequence := n.ChildByFieldName("consequence")
	if cond == nil || consequence == nil {
		return false
	}
	condText, ok := r.renderExpr(cond)
	if !ok {
		return false
	}

	em.Line("if " + condText + " then")
	em.Begin()
	if !r.block(em, consequence) {
		return false
	}
	em.End("if")

	alternative := n.ChildByFieldName("alternative")
	if alternative == nil {
		return true
	}
	em.Line("otherwise")
	em.Begin()
	branch := alternative.NamedChild(0)
	if branch == nil {
		return false
	}
	switch branch.Type() {
	case "block":
		if !r.block(em, branch) {
			return false
		}
	case "if_expression":
		if !r.ifStmt(em, branch) {
			return false
		}
	default:
		return false
	}
	em.End("if")
	return true
}

func (r *reducer) whileStmt(em *emit.Emitter, n *sitter.Node) bool {
	cond := n.ChildByFieldName("condition")
	body := n.ChildByFieldName("body")
	if cond == nil || body == nil {
		return false
	}
	condText, ok := r.renderExpr(cond)
	if !ok {
		return false
	}
	em.Line("while " + condText + " repeat")
	em.Begin()
	if !r.block(em, body) {
		return false
	}
	em.End("while")
	return true
}

func (r *reducer) forStmt(em *emit.Emitter, n *sitter.Node) bool {
	pattern := n.ChildByFieldName("pattern")
	value := n.ChildByFieldName("value")
	body := n.ChildByFieldName("body")
	if pattern == nil || value == nil || body == nil {
		return false
	}
	if pattern.Type() != "identifier" {
		return false
	}
	iter, ok := r.renderExpr(value)
	if !ok {
		return false
	}
	em.Line("for each " + vocab.Sanitize(r.text(pattern)) + " in " + iter + " repeat")
	em.Begin()
	if !r.block(em, body) {
		return false
	}
	em.End("for")
	return true
}

func (r *reducer) loopStmt(em *emit.Emitter, n *sitter.Node) bool {
	body := n.ChildByFieldName("body")
	if body == nil {
		return false
	}
	em.Line("loop forever")
	em.Begin()
	if !r.block(em, body) {
		return false
	}
	em.End("loop")
	return true
}

func (r *reducer) matchStmt(em *emit.Emitter, n *sitter.Node) bool {
	value := n.ChildByFieldName("value")
	body := n.ChildByFieldName("body")
	if value == nil || body == nil {
		return false
	}
	subject, ok := r.renderExpr(value)
	if !ok {
		return false
	}
	em.Line("compare " + subject)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		arm := body.NamedChild(i)
		switch arm.Type() {
		case "match_arm":
			pattern := arm.ChildByFieldName("pattern")
			armValue := arm.ChildByFieldName("value")
			if pattern == nil || armValue == nil {
				return false
			}
			// Guards hide inside the pattern wrapper; an arm whose
			// wrapper holds more than the pattern keeps its source.
			if arm.NamedChildCount() > 2 {
				return false
			}
			if pattern.Type() == "match_pattern" && pattern.NamedChildCount() > 1 {
				return false
			}
			patText, ok := r.renderPattern(firstPatternChild(pattern))
			if !ok {
				return false
			}
			valueText, ok := r.renderExpr(armValue)
			if !ok {
				return false
			}
			em.Line("    case " + patText + " then " + valueText)
		case "line_comment", "block_comment":
			continue
		default:
			return false
		}
	}
	em.Line("end compare")
	return true
}

// firstPatternChild unwraps the match_pattern wrapper when present.
func firstPatternChild(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "match_pattern" {
		if inner := n.NamedChild(0); inner != nil {
			return inner
		}
	}
	return n
}

func (r *reducer) renderPattern(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	if r.text(n) == "_" {
		return "otherwise", true
	}
	switch n.Type() {
	case "identifier":
		name := r.text(n)
		switch name {
		case "None":
			return "none", true
		case "Some", "Ok", "Err":
			return "", false
		}
		if startsUpper(name) {
			// An unqualified variant would silently become a binding.
			return "", false
		}
		return vocab.Sanitize(name), true
	case "mut_pattern":
		inner := n.NamedChild(0)
		if inner == nil || inner.Type() != "identifier" {
			return "", false
		}
		return "mutable " + vocab.Sanitize(r.text(inner)), true
	case "integer_literal", "float_literal", "boolean_literal", "string_literal", "char_literal":
		return r.renderExpr(n)
	case "negative_literal":
		return r.text(n), true
	case "tuple_pattern":
		var elems []string
		for i := 0; i < int(n.NamedChildCount()); i++ {
			sub, ok := r.renderPattern(n.NamedChild(i))
			if !ok {
				return "", false
			}
			elems = append(elems, sub)
		}
		if len(elems) == 0 {
			return "", false
		}
		return "tuple of " + strings.Join(elems, " and "), true
	case "tuple_struct_pattern":
		ctor := n.ChildByFieldName("type")
		if ctor == nil || ctor.Type() != "identifier" || n.NamedChildCount() != 2 {
			return "", false
		}
		sub, ok := r.renderPattern(n.NamedChild(1))
		if !ok {
			return "", false
		}
		switch r.text(ctor) {
		case "Some":
			return "some of " + sub, true
		case "Ok":
			return "ok of " + sub, true
		case "Err":
			return "error of " + sub, true
		default:
			return "", false
		}
	case "scoped_identifier":
		segments, ok := r.pathSegments(n)
		if !ok || len(segments) < 2 {
			return "", false
		}
		last := segments[len(segments)-1]
		return "variant " + last + " of " + strings.Join(segments[:len(segments)-1], " "), true
	default:
		return "", false
	}
}

func startsUpper(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

func isCompoundExpr(n *sitter.Node) bool {
	switch unwrapParens(n).Type() {
	case "binary_expression", "unary_expression", "range_expression":
		return true
	}
	return false
}
