package reduce

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceSimpleFunction(t *testing.T) {
	out, err := Reduce([]byte(`fn add(a: i32, b: i32) -> i32 {
    a + b
}`))
	require.NoError(t, err)

	assert.Equal(t, `function add
    takes a of i32 and b of i32
    returns i32
begin
    a plus b
end function
`, out)
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

func TestReduceRejectsBrokenSource(t *testing.T) {
	_, err := Reduce([]byte("fn broken( {"))
	require.Error(t, err)
	assert.IsType(t, &HostParseError{}, err)
}

func TestReduceMacroBracketFlavor(t *testing.T) {
	out, err := Reduce([]byte(`fn demo() {
    let v = vec![1, 2, 3];
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "define v as macro vec with 1 , 2 , 3 bracket")
}

func TestReduceClosureArgument(t *testing.T) {
	out, err := Reduce([]byte(`fn demo() -> i32 {
    x.map(|n| n * 2)
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "call method map on x with closure with parameters n and body n times 2")
}

func TestReduceTryOperator(t *testing.T) {
	out, err := Reduce([]byte(`fn demo() -> Option<i32> {
    arr.first()?
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "call method first on arr unwrap or return error")
}

func TestReduceSanitizesCollidingNames(t *testing.T) {
	out, err := Reduce([]byte("fn function() {}"))
	require.NoError(t, err)
	assert.Contains(t, out, "function user_function")
}

func TestReduceEmptyResultError(t *testing.T) {
	out, err := Reduce([]byte(`fn demo() -> Result<i32, ()> {
    Ok(1)
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "returns result of i32 or error unit")
	assert.Contains(t, out, "ok of 1")
}

func TestReduceUnsupportedItemGoesVerbatim(t *testing.T) {
	out, err := Reduce([]byte("trait Greet {}"))
	require.NoError(t, err)
	assert.Contains(t, out, `verbatim item "trait Greet {}"`)
}

func TestReduceAttributedItemGoesVerbatim(t *testing.T) {
	out, err := Reduce([]byte(`#[derive(Debug)]
struct Point {
    x: i32,
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "verbatim item")
	assert.Contains(t, out, `derive(Debug)`)
}

func TestReduceGroupingLossGoesVerbatim(t *testing.T) {
	// (a + b) * c cannot be spelled without parentheses.
	out, err := Reduce([]byte(`fn demo(a: i32, b: i32, c: i32) -> i32 {
    (a + b) * c
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "verbatim item")
	assert.NotContains(t, out, "a plus b times c")
}

func TestReduceControlFlow(t *testing.T) {
	out, err := Reduce([]byte(`fn demo(mut n: i32) -> i32 {
    while n > 0 {
        n -= 1;
    }
    for item in items {
        total += item;
    }
    if n == 0 {
        return 1;
    } else {
        return 2;
    }
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "takes mutable n of i32")
	assert.Contains(t, out, "while n greater than 0 repeat")
	assert.Contains(t, out, "set n equal to n minus 1")
	assert.Contains(t, out, "for each user_item in items repeat")
	assert.Contains(t, out, "if n equal to 0 then")
	assert.Contains(t, out, "otherwise")
	assert.Contains(t, out, "end for")
	assert.Contains(t, out, "end while")
	assert.Contains(t, out, "end if")
}

func TestReduceStructAndEnum(t *testing.T) {
	out, err := Reduce([]byte(`struct Point {
    x: i32,
    y: i32,
}

enum Shape {
    Circle(f64),
    Empty,
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "structure Point with fields")
	assert.Contains(t, out, "x of i32")
	assert.Contains(t, out, "enumeration Shape with variants")
	assert.Contains(t, out, "Circle of f64")
	assert.Contains(t, out, "end enumeration")
}

func TestReduceImplBlock(t *testing.T) {
	out, err := Reduce([]byte(`impl Tally {
    fn total(&self) -> i32 {
        self.total
    }
}`))
	require.NoError(t, err)
	assert.Contains(t, out, "implementation for Tally")
	assert.Contains(t, out, "takes context of reference to context")
	assert.Contains(t, out, "field total of context")
	assert.Contains(t, out, "end implementation")
}

func TestReduceNoProhibitedSigils(t *testing.T) {
	out, err := Reduce([]byte(`fn demo(a: i32, b: i32) -> i32 {
    let mut c = a;
    c = c + b;
    c
}`))
	require.NoError(t, err)
	for _, c := range "{}<>&*|;=:/\\" {
		assert.NotContains(t, out, string(c))
	}
}

func TestReduceDropsComments(t *testing.T) {
	out, err := Reduce([]byte(`// leading comment
fn demo() {}`))
	require.NoError(t, err)
	assert.False(t, strings.Contains(out, "leading comment"))
}
