// Package ast defines the Longform syntax tree shared by the parser and
// the oxidizer. The tree is built once per translation, walked once, and
// discarded; nodes carry no parent links and no source positions —
// diagnostics are reported with tokenizer positions before a tree exists.
package ast

// Item is a top-level declaration.
type Item interface {
	isItem()
}

// Stmt is a statement inside a block.
type Stmt interface {
	isStmt()
}

// Expr is an expression.
type Expr interface {
	isExpr()
}

// Type is a type annotation.
type Type interface {
	isType()
}

// Pattern is a comparison-arm pattern.
type Pattern interface {
	isPattern()
}

// File is a parsed Longform source file.
type File struct {
	Items []Item
}
