// Package vocab is the single source of truth for the Longform surface:
// the bidirectional keyword tables, the reserved-word set, and the
// identifier sanitization rules shared by the reducer, the tokenizer and
// the oxidizer.
package vocab

import "strings"

// CollisionPrefix is prepended to any symbolic identifier whose spelling
// collides with a reserved Longform word. The tokenizer strips it again,
// which makes sanitization reversible.
const CollisionPrefix = "user_"

// reservedWords lists every word that may appear in Longform output other
// than user identifiers and literals. A symbolic identifier matching any of
// these (case-insensitively) is sanitized with CollisionPrefix. The one
// exception is "map": it only ever follows "hash" inside the fused
// "hash map" phrase, so it stays free for identifiers such as a method
// named map.
var reservedWords = []string{
	// Types and references
	"type", "reference", "mutable", "raw", "pointer", "optional", "result",
	"list", "box", "tuple", "array", "slice", "containing", "taking",
	"returning", "unit", "boolean", "character", "string", "hash",
	"counted", "atomic", "unknown_type", "length",

	// Control flow
	"if", "then", "otherwise", "compare", "case", "while", "repeat", "for",
	"each", "in", "loop", "forever", "exit", "continue", "return",

	// Functions and calls
	"function", "with", "generic", "implementing", "takes", "parameter",
	"parameters", "returns", "begin", "end", "call", "method", "on",
	"associated", "closure", "move", "body",

	// Bindings
	"define", "as", "set", "equal", "to", "constant", "static",

	// Structs, enums, impls, imports
	"structure", "fields", "field", "enumeration", "variants", "variant",
	"of", "create", "implementation", "use",

	// Expressions and operators
	"and", "or", "not", "negate", "dereference", "plus", "minus", "times",
	"divided", "by", "modulo", "less", "greater", "than", "logical",
	"bitwise", "xor", "shift", "left", "right", "unwrap", "error", "some",
	"none", "ok", "index", "at", "range", "from", "inclusive", "macro",
	"bracket", "paren", "verbatim", "item",

	// Special values and comments
	"context", "self", "true", "false", "note", "that",
}

// standardVariants are symbolic spellings that must survive unsanitized:
// the standard enum variants plus the common container names the catalog
// maps by name. Some of them (Box, String, Result) match reserved words
// under the case-insensitive check, so Sanitize consults this set first.
var standardVariants = map[string]bool{
	"Some":    true,
	"None":    true,
	"Ok":      true,
	"Err":     true,
	"Vec":     true,
	"String":  true,
	"Box":     true,
	"Option":  true,
	"Result":  true,
	"HashMap": true,
	"Rc":      true,
	"Arc":     true,
}

var reserved = buildReservedSet()

func buildReservedSet() map[string]bool {
	set := make(map[string]bool, len(reservedWords))
	for _, w := range reservedWords {
		set[w] = true
	}
	return set
}

// IsReserved reports whether name collides with a Longform word.
// The check is case-insensitive, so CamelCase spellings of reserved words
// (List, Slice, ...) are prefixed as well.
func IsReserved(name string) bool {
	return reserved[strings.ToLower(name)]
}

// IsStandardVariant reports whether name is exempt from sanitization.
func IsStandardVariant(name string) bool {
	return standardVariants[name]
}

// Sanitize rewrites a symbolic identifier for use in Longform text.
func Sanitize(name string) string {
	if standardVariants[name] {
		return name
	}
	if IsReserved(name) {
		return CollisionPrefix + name
	}
	return name
}

// Desanitize undoes Sanitize. The boolean reports whether a prefix was
// stripped; an empty remainder is invalid and left to the caller to reject.
func Desanitize(word string) (string, bool) {
	if rest, ok := strings.CutPrefix(word, CollisionPrefix); ok {
		return rest, true
	}
	return word, false
}
