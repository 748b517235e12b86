package ast

// GenericParam is a declared type parameter with optional trait bounds.
// Example: "with generic type T implementing Clone and Debug"
type GenericParam struct {
	Name   string
	Bounds []string
}

// Param is a function or closure parameter. Type may be nil for closure
// parameters written without an annotation.
type Param struct {
	Name    string
	Mutable bool
	Type    Type
}

// Function is a function item.
// Example: "function add\n    takes a of i32 and b of i32\n    returns i32"
type Function struct {
	Name     string
	Generics []GenericParam
	Params   []Param
	Return   Type // nil when the function returns unit
	Body     []Stmt
}

// FieldDef is a named field of a structure or enumeration variant.
type FieldDef struct {
	Name string
	Type Type
}

// Struct is a structure item.
// Example: "structure Point with fields\n    x of i32\n    y of i32\nend structure"
type Struct struct {
	Name     string
	Generics []GenericParam
	Fields   []FieldDef
}

// VariantDef is one enumeration variant. At most one of Payload and
// Fields is set; both nil means a unit variant.
type VariantDef struct {
	Name    string
	Payload Type
	Fields  []FieldDef
}

// Enum is an enumeration item.
type Enum struct {
	Name     string
	Generics []GenericParam
	Variants []VariantDef
}

// TypeAlias is a type alias item.
// Example: "type Pair with generic type T as tuple of T and T"
type TypeAlias struct {
	Name     string
	Generics []GenericParam
	Type     Type
}

// Impl is an implementation block. Trait is empty for inherent impls.
// Example: "implementation of Display for Point"
type Impl struct {
	Trait  string
	Target string
	Funcs  []*Function
}

// Use is a plain-path import.
// Example: "use std fmt Display"
type Use struct {
	Segments []string
}

// Const is a constant item; the value lives in its begin/end block.
type Const struct {
	Name  string
	Type  Type
	Value Expr
}

// Static is a static item.
type Static struct {
	Name    string
	Mutable bool
	Type    Type
	Value   Expr
}

// Verbatim is an opaque symbolic-source payload carried through the
// verbose surface unchanged.
type Verbatim struct {
	Source string
}

func (*Function) isItem()  {}
func (*Struct) isItem()    {}
func (*Enum) isItem()      {}
func (*TypeAlias) isItem() {}
func (*Impl) isItem()      {}
func (*Use) isItem()       {}
func (*Const) isItem()     {}
func (*Static) isItem()    {}
func (*Verbatim) isItem()  {}
