package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longform/internal/ast"
	"longform/internal/vocab"
)

func TestParseSimpleFunction(t *testing.T) {
	source := `function add
    takes a of i32 and b of i32
    returns i32
begin
    a plus b
end function`

	file, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)

	fn, ok := file.Items[0].(*ast.Function)
	require.True(t, ok, "expected a function item")
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "b", fn.Params[1].Name)
	assert.IsType(t, &ast.Named{}, fn.Return)

	require.Len(t, fn.Body, 1)
	tail, ok := fn.Body[0].(*ast.ExprStmt)
	require.True(t, ok)
	assert.False(t, tail.Semicolon, "the final expression is the tail")

	bin, ok := tail.X.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, vocab.OpAdd, bin.Op)
}

func TestParseGenericsWithBounds(t *testing.T) {
	source := `function largest with generic type T implementing PartialOrd and Copy
    takes items of slice of T
    returns T
begin
    return index items at 0
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	fn := file.Items[0].(*ast.Function)
	require.Len(t, fn.Generics, 1)
	assert.Equal(t, "T", fn.Generics[0].Name)
	assert.Equal(t, []string{"PartialOrd", "Copy"}, fn.Generics[0].Bounds)
}

func TestClosureAndDisambiguation(t *testing.T) {
	source := `function demo
begin
    define f as closure with parameters x and y and body x plus y
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	fn := file.Items[0].(*ast.Function)
	let := fn.Body[0].(*ast.Let)
	closure, ok := let.Value.(*ast.Closure)
	require.True(t, ok)

	require.Len(t, closure.Params, 2, "the 'and' before 'body' terminates the list")
	assert.Equal(t, "x", closure.Params[0].Name)
	assert.Equal(t, "y", closure.Params[1].Name)
	assert.IsType(t, &ast.Binary{}, closure.Body)
}

func TestZeroParameterClosure(t *testing.T) {
	source := `function demo
begin
    define f as move closure with body 42
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	let := file.Items[0].(*ast.Function).Body[0].(*ast.Let)
	closure := let.Value.(*ast.Closure)
	assert.Empty(t, closure.Params)
	assert.True(t, closure.Move)
}

func TestTrySuffixBindsToTheCall(t *testing.T) {
	source := `function demo
begin
    call method first on arr unwrap or return error
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	stmt := file.Items[0].(*ast.Function).Body[0].(*ast.ExprStmt)
	try, ok := stmt.X.(*ast.Try)
	require.True(t, ok)

	call, ok := try.X.(*ast.MethodCall)
	require.True(t, ok)
	assert.Equal(t, "first", call.Name)
	assert.Equal(t, &ast.Ident{Name: "arr"}, call.Receiver)
}

func TestMacroBracketFlavor(t *testing.T) {
	source := `function demo
begin
    define v as macro vec with 1 , 2 , 3 bracket
    macro println with "done" paren
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	body := file.Items[0].(*ast.Function).Body
	vecMacro := body[0].(*ast.Let).Value.(*ast.Macro)
	assert.True(t, vecMacro.Bracket)
	assert.Equal(t, "1, 2, 3", vecMacro.Args)

	printMacro := body[1].(*ast.ExprStmt).X.(*ast.Macro)
	assert.False(t, printMacro.Bracket)
	assert.Equal(t, `"done"`, printMacro.Args)
}

func TestBlockKindMismatch(t *testing.T) {
	source := `function demo
begin
end if`

	_, err := Parse(source)
	require.Error(t, err)

	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrBlockKindMismatch, perr.Kind)
}

func TestUnexpectedEndOfInput(t *testing.T) {
	source := `function demo
begin
    define x as 1`

	_, err := Parse(source)
	require.Error(t, err)

	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpectedEnd, perr.Kind)
}

func TestProhibitedCharacterSurfacesFromParse(t *testing.T) {
	_, err := Parse("define x = 5")
	require.Error(t, err)

	serr, ok := err.(ScanError)
	require.True(t, ok)
	assert.Equal(t, ErrProhibitedCharacter, serr.Kind)
}

func TestParseStructAndEnum(t *testing.T) {
	source := `structure Point with fields
    x of i32
    y of i32
end structure

enumeration Shape with variants
    Circle of f64
    Rect with w of f64 and h of f64
    Empty
end enumeration`

	file, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, file.Items, 2)

	st := file.Items[0].(*ast.Struct)
	assert.Equal(t, "Point", st.Name)
	require.Len(t, st.Fields, 2)

	en := file.Items[1].(*ast.Enum)
	assert.Equal(t, "Shape", en.Name)
	require.Len(t, en.Variants, 3)
	assert.NotNil(t, en.Variants[0].Payload)
	assert.Len(t, en.Variants[1].Fields, 2)
	assert.Nil(t, en.Variants[2].Payload)
}

func TestParseMatchStatement(t *testing.T) {
	source := `function demo
begin
    compare value
    case some of x then x
    case none then 0
    case otherwise then 1
    end compare
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	m := file.Items[0].(*ast.Function).Body[0].(*ast.Match)
	require.Len(t, m.Arms, 3)
	assert.IsType(t, &ast.CtorPat{}, m.Arms[0].Pat)
	assert.IsType(t, &ast.WildcardPat{}, m.Arms[2].Pat)
}

func TestParseImplWithReceiver(t *testing.T) {
	source := `implementation of Display for Point
begin
    function fmt
        takes context of reference to context and width of i32
        returns i32
    begin
        field x of context
    end function
end implementation`

	file, err := Parse(source)
	require.NoError(t, err)

	impl := file.Items[0].(*ast.Impl)
	assert.Equal(t, "Display", impl.Trait)
	assert.Equal(t, "Point", impl.Target)
	require.Len(t, impl.Funcs, 1)

	fn := impl.Funcs[0]
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "self", fn.Params[0].Name)
	assert.IsType(t, &ast.Ref{}, fn.Params[0].Type)
}

func TestParseVerbatimItem(t *testing.T) {
	source := `verbatim item "trait Greet {\n    fn hi(&self);\n}"`

	file, err := Parse(source)
	require.NoError(t, err)

	v := file.Items[0].(*ast.Verbatim)
	assert.Equal(t, "trait Greet {\n    fn hi(&self);\n}", v.Source)
}

func TestParseUse(t *testing.T) {
	file, err := Parse("use std collections HashMap")
	require.NoError(t, err)

	use := file.Items[0].(*ast.Use)
	assert.Equal(t, []string{"std", "collections", "HashMap"}, use.Segments)
}

func TestParseResultTypeWithUnitError(t *testing.T) {
	source := `function demo
    returns result of i32 or error unit
begin
    ok of 1
end function`

	file, err := Parse(source)
	require.NoError(t, err)

	fn := file.Items[0].(*ast.Function)
	res, ok := fn.Return.(*ast.ResultType)
	require.True(t, ok)
	assert.IsType(t, &ast.UnitType{}, res.Err)
}
