package longform

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticFunctionRoundTrip(t *testing.T) {
	source := []byte(`fn add(a: i32, b: i32) -> i32 {
    a + b
}`)

	verbose, err := Reduce(source)
	require.NoError(t, err)

	text := string(verbose)
	assert.Contains(t, text, "function add")
	assert.Contains(t, text, "takes a of i32 and b of i32")
	assert.Contains(t, text, "returns i32")
	assert.Contains(t, text, "a plus b")
	assert.NotContains(t, text, "return a plus b", "the tail expression stays bare")

	require.NoError(t, Validate(verbose))

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Equal(t, "fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n", string(symbolic))
}

func TestVectorMacroKeepsBrackets(t *testing.T) {
	verbose, err := Reduce([]byte(`fn demo() {
    let v = vec![1, 2, 3];
}`))
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "macro vec with 1 , 2 , 3 bracket")

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Contains(t, string(symbolic), "vec![1, 2, 3]")
	assert.NotContains(t, string(symbolic), "vec!(")
}

func TestClosureArgumentRoundTrip(t *testing.T) {
	verbose, err := Reduce([]byte(`fn demo() -> i32 {
    x.map(|n| n * 2)
}`))
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "call method map on x with closure with parameters n and body n times 2")

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Contains(t, string(symbolic), "x.map(|n| n * 2)")
}

func TestEmptyErrorResultRoundTrip(t *testing.T) {
	verbose, err := Reduce([]byte(`fn demo() -> Result<i32, ()> {
    Ok(1)
}`))
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "result of i32 or error unit")

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Contains(t, string(symbolic), "Result<i32, ()>")
}

func TestSanitizedIdentifierRoundTrip(t *testing.T) {
	verbose, err := Reduce([]byte("fn function() {}"))
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "function user_function")

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Contains(t, string(symbolic), "fn function()")
}

func TestTryOperatorRoundTrip(t *testing.T) {
	verbose, err := Reduce([]byte(`fn demo() -> Option<i32> {
    arr.first()?
}`))
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "call method first on arr unwrap or return error")

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Contains(t, string(symbolic), "arr.first()?")
}

func TestReduceIsDeterministic(t *testing.T) {
	source := []byte(`fn mix(a: i32, b: i32) -> i32 {
    let c = a * b;
    c + a
}`)
	first, err := Reduce(source)
	require.NoError(t, err)
	second, err := Reduce(source)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestVerboseIdempotence(t *testing.T) {
	source := []byte(`fn add(a: i32, b: i32) -> i32 {
    let total = a + b;
    total
}`)
	verbose, err := Reduce(source)
	require.NoError(t, err)

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)

	again, err := Reduce(symbolic)
	require.NoError(t, err)
	assert.Equal(t, string(verbose), string(again))
}

func TestVerbatimPassthrough(t *testing.T) {
	source := []byte(`trait Greet {
    fn hi(&self);
}`)
	verbose, err := Reduce(source)
	require.NoError(t, err)
	assert.Contains(t, string(verbose), "verbatim item")

	require.NoError(t, Validate(verbose))

	symbolic, err := Oxidize(verbose)
	require.NoError(t, err)
	assert.Equal(t, string(source), strings.TrimRight(string(symbolic), "\n"))
}

func TestNoProhibitedSigilsInVerboseOutput(t *testing.T) {
	verbose, err := Reduce([]byte(`fn clamp(v: i32, lo: i32, hi: i32) -> i32 {
    if v < lo {
        return lo;
    }
    if v > hi {
        return hi;
    }
    v
}`))
	require.NoError(t, err)
	for _, c := range "{}<>&*|;=:/\\" {
		assert.NotContains(t, string(verbose), string(c))
	}
}

func TestValidateRejectsSigils(t *testing.T) {
	err := Validate([]byte("define x = 5"))
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, ProhibitedCharacter, terr.Kind)
	assert.Equal(t, 1, terr.Line)
	assert.Equal(t, 10, terr.Column)
}

func TestValidateReportsBlockMismatch(t *testing.T) {
	err := Validate([]byte("function demo\nbegin\nend while"))
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, BlockKindMismatch, terr.Kind)
}

func TestReduceFailsOnlyOnHostParse(t *testing.T) {
	_, err := Reduce([]byte("fn broken( {"))
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, HostParseFailed, terr.Kind)
}

func TestOxidizeReportsPositionedErrors(t *testing.T) {
	_, err := Oxidize([]byte("function demo\nbegin\n    define as 5\nend function"))
	require.Error(t, err)

	var terr *Error
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, UnexpectedToken, terr.Kind)
	assert.Equal(t, 3, terr.Line)
}
