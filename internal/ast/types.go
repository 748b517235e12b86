package ast

// Named is a user or primitive type, optionally with generic arguments.
// Example: "i32", "Wrapper of T"
type Named struct {
	Name string
	Args []Type
}

// Ref is a reference type. Example: "mutable reference to i32"
type Ref struct {
	Mutable bool
	Elem    Type
}

// RawPtr is a raw pointer type. Example: "raw pointer to u8"
type RawPtr struct {
	Mutable bool
	Elem    Type
}

// OptionType is "optional T".
type OptionType struct {
	Elem Type
}

// ResultType is "result of T or error E".
type ResultType struct {
	Ok  Type
	Err Type
}

// ListType is "list of T".
type ListType struct {
	Elem Type
}

// BoxType is "box containing T".
type BoxType struct {
	Elem Type
}

// TupleType is "tuple of A and B". It always has at least one element;
// the empty tuple is UnitType.
type TupleType struct {
	Elems []Type
}

// UnitType is the empty tuple. It spells "unit" verbosely and "()"
// symbolically, and nothing else produces either spelling.
type UnitType struct{}

// SliceType is "slice of T".
type SliceType struct {
	Elem Type
}

// ArrayType is "array of T with length N".
type ArrayType struct {
	Elem Type
	Len  string
}

// FnType is "function taking A and B returning R".
type FnType struct {
	Params []Type
	Ret    Type
}

// HashMapType is "hash map from K to V".
type HashMapType struct {
	Key   Type
	Value Type
}

// RcType is "reference counted T"; Atomic selects "atomic reference
// counted T".
type RcType struct {
	Atomic bool
	Elem   Type
}

// ImplTrait is an opaque "impl Bound" type. The reducer avoids emitting
// it and no verbose spelling parses to it; the oxidizer rejects a tree
// that carries one with a TypeError.
type ImplTrait struct {
	Bound string
}

// Unknown is a type the verbose surface cannot express. Oxidizing it is
// an internal-invariant failure.
type Unknown struct{}

func (*Named) isType()       {}
func (*Ref) isType()         {}
func (*RawPtr) isType()      {}
func (*OptionType) isType()  {}
func (*ResultType) isType()  {}
func (*ListType) isType()    {}
func (*BoxType) isType()     {}
func (*TupleType) isType()   {}
func (*UnitType) isType()    {}
func (*SliceType) isType()   {}
func (*ArrayType) isType()   {}
func (*FnType) isType()      {}
func (*HashMapType) isType() {}
func (*RcType) isType()      {}
func (*ImplTrait) isType()   {}
func (*Unknown) isType()     {}
