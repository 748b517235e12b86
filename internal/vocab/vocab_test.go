package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeCollidingIdentifiers(t *testing.T) {
	assert.Equal(t, "user_function", Sanitize("function"))
	assert.Equal(t, "user_define", Sanitize("define"))
	assert.Equal(t, "user_reference", Sanitize("reference"))
	assert.Equal(t, "my_var", Sanitize("my_var"))
}

func TestSanitizeIsCaseInsensitive(t *testing.T) {
	// Reservation ignores case, and the prefixed name keeps the
	// spelling it was written with.
	assert.Equal(t, "user_List", Sanitize("List"))
	assert.Equal(t, "user_BOX", Sanitize("BOX"))
}

func TestStandardVariantsAreExempt(t *testing.T) {
	for _, name := range []string{"Some", "None", "Ok", "Err", "Vec", "String", "Result", "Option"} {
		assert.Equal(t, name, Sanitize(name), "expected %s to pass through", name)
	}
}

func TestDesanitizeStripsThePrefix(t *testing.T) {
	name, stripped := Desanitize("user_function")
	assert.True(t, stripped)
	assert.Equal(t, "function", name)

	name, stripped = Desanitize("plain")
	assert.False(t, stripped)
	assert.Equal(t, "plain", name)
}

func TestSanitizeRoundTrip(t *testing.T) {
	for _, word := range []string{"function", "loop", "body", "than", "index"} {
		sanitized := Sanitize(word)
		restored, stripped := Desanitize(sanitized)
		assert.True(t, stripped, "expected %s to be sanitized", word)
		assert.Equal(t, word, restored)
	}
}

func TestReservedCoversOperatorWords(t *testing.T) {
	for _, word := range []string{"plus", "minus", "times", "modulo", "than", "equal", "unwrap", "and", "or"} {
		assert.True(t, IsReserved(word), "expected %s to be reserved", word)
	}
	assert.False(t, IsReserved("banana"))
}

func TestBinOpTables(t *testing.T) {
	op, ok := BinOpFromSymbol(">=")
	assert.True(t, ok)
	assert.Equal(t, OpGe, op)
	assert.Equal(t, "greater than or equal to", op.Phrase())
	assert.Equal(t, ">=", op.Symbol())

	_, ok = BinOpFromSymbol("@")
	assert.False(t, ok)
}

func TestPrecedenceMirrorsSymbolicSurface(t *testing.T) {
	assert.Less(t, OpOr.Precedence(), OpAnd.Precedence())
	assert.Less(t, OpAnd.Precedence(), OpEq.Precedence())
	assert.Less(t, OpEq.Precedence(), OpLt.Precedence())
	assert.Less(t, OpAdd.Precedence(), OpMul.Precedence())
	assert.Equal(t, OpAdd.Precedence(), OpSub.Precedence())
}

func TestTypeTables(t *testing.T) {
	v, ok := SimpleTypeToLongform("Vec")
	assert.True(t, ok)
	assert.Equal(t, "list", v)

	s, ok := TypeNameToSymbolic("list")
	assert.True(t, ok)
	assert.Equal(t, "Vec", s)

	assert.True(t, IsNumericPrimitive("i32"))
	assert.False(t, IsNumericPrimitive("int"))
}
