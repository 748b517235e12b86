package vocab

// simpleTypes maps symbolic type names without generic arguments to their
// Longform spelling. Numeric primitives are absent on purpose: they pass
// through both surfaces unchanged.
var simpleTypes = map[string]string{
	"bool":   "boolean",
	"char":   "character",
	"str":    "string slice",
	"String": "string",
	"Vec":    "list",
	"Box":    "box",
	"Option": "optional",
	"Result": "result",
}

// longformTypeNames is the inverse direction used by the oxidizer for
// plain named types.
var longformTypeNames = map[string]string{
	"boolean":   "bool",
	"character": "char",
	"string":    "String",
	"list":      "Vec",
	"optional":  "Option",
	"result":    "Result",
	"box":       "Box",
	"unit":      "()",
}

// SimpleTypeToLongform maps a bare symbolic type name to Longform.
func SimpleTypeToLongform(name string) (string, bool) {
	v, ok := simpleTypes[name]
	return v, ok
}

// TypeNameToSymbolic maps a bare Longform type word back to the symbolic
// surface. Unknown words are user types and pass through via Desanitize
// at the tokenizer, so a miss here simply means "use the name as written".
func TypeNameToSymbolic(name string) (string, bool) {
	s, ok := longformTypeNames[name]
	return s, ok
}

// numericPrimitives is the closed set of names that render identically on
// both surfaces.
var numericPrimitives = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true,
}

// IsNumericPrimitive reports whether name is a numeric primitive type.
func IsNumericPrimitive(name string) bool {
	return numericPrimitives[name]
}
