package ast

// BindPat binds the matched value to a name.
type BindPat struct {
	Name    string
	Mutable bool
}

// WildcardPat matches anything; it spells "otherwise" in a case arm.
type WildcardPat struct{}

// LitPat matches a literal value.
type LitPat struct {
	Lit *Literal
}

// TuplePat destructures a tuple.
type TuplePat struct {
	Elems []Pattern
}

// CtorPat matches a standard constructor; Sub is nil for none.
// Example: "case some of x then ..."
type CtorPat struct {
	Kind CtorKind
	Sub  Pattern
}

// VariantPat matches a unit enumeration variant.
// Example: "case variant Red of Color then ..."
type VariantPat struct {
	Segments []string
	Name     string
}

func (*BindPat) isPattern()     {}
func (*WildcardPat) isPattern() {}
func (*LitPat) isPattern()      {}
func (*TuplePat) isPattern()    {}
func (*CtorPat) isPattern()     {}
func (*VariantPat) isPattern()  {}
