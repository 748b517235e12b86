package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"longform"
)

func TestConvertErrorUsesZeroBasedPositions(t *testing.T) {
	err := longform.Validate([]byte("define x = 5"))
	require.Error(t, err)

	diagnostics := ConvertError(err)
	require.Len(t, diagnostics, 1)

	d := diagnostics[0]
	assert.Equal(t, uint32(0), d.Range.Start.Line)
	assert.Equal(t, uint32(9), d.Range.Start.Character)
	assert.Equal(t, "longform", *d.Source)
	assert.NotEmpty(t, d.Message)
}

func TestConvertErrorOnForeignError(t *testing.T) {
	assert.Nil(t, ConvertError(assert.AnError))
}

func TestHandlerTracksContent(t *testing.T) {
	h := NewHandler()
	h.mu.Lock()
	h.content["file:///demo.lf"] = "function demo\nbegin\nend function"
	h.mu.Unlock()

	h.mu.RLock()
	text := h.content["file:///demo.lf"]
	h.mu.RUnlock()
	assert.NoError(t, longform.Validate([]byte(text)))
}
