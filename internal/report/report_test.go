package report

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"longform"
)

func TestFormatPointsAtTheOffendingColumn(t *testing.T) {
	color.NoColor = true

	source := "define x = 5"
	err := longform.Validate([]byte(source))

	out := Format("demo.lf", source, err)
	assert.Contains(t, out, "error: prohibited character")
	assert.Contains(t, out, "demo.lf:1:10")
	assert.Contains(t, out, source)
	assert.Contains(t, out, "^")
}

func TestFormatWithoutPosition(t *testing.T) {
	color.NoColor = true

	out := Format("demo.lf", "", assert.AnError)
	assert.Contains(t, out, "error:")
	assert.Contains(t, out, assert.AnError.Error())
}
