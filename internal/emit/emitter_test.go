package emit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndentation(t *testing.T) {
	e := New()
	e.Line("function add")
	e.Begin()
	e.Line("return 1")
	e.End("function")

	assert.Equal(t, "function add\nbegin\n    return 1\nend function\n", e.Finalize())
}

func TestNestedBlocks(t *testing.T) {
	e := New()
	e.Line("if ready then")
	e.Begin()
	e.Line("if deep then")
	e.Begin()
	e.Line("return")
	e.End("if")
	e.End("if")

	assert.Equal(t,
		"if ready then\nbegin\n    if deep then\n    begin\n        return\n    end if\nend if\n",
		e.Finalize())
}

func TestFinalizeDoesNotConsume(t *testing.T) {
	e := New()
	e.Line("define x as 1")

	first := e.Finalize()
	e.Line("define y as 2")
	second := e.Finalize()

	assert.Equal(t, "define x as 1\n", first)
	assert.Equal(t, "define x as 1\ndefine y as 2\n", second)
}

func TestBlankLineSeparatesItems(t *testing.T) {
	e := New()
	e.Line("end function")
	e.BlankLine()
	e.Line("structure Point with fields")

	assert.Equal(t, "end function\n\nstructure Point with fields\n", e.Finalize())
}

func TestDedentStopsAtZero(t *testing.T) {
	e := New()
	e.Dedent()
	e.Line("still flush left")
	assert.Equal(t, "still flush left\n", e.Finalize())
}
