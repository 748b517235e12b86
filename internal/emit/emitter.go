// Package emit provides the indentation-aware text writer used while
// lowering symbolic syntax into Longform.
package emit

import "strings"

const indentWidth = 4

// Emitter accumulates Longform text. Lines written through Line are
// prefixed with the current indentation; identical input always yields
// byte-identical output.
type Emitter struct {
	out          strings.Builder
	indent       int
	pendingBreak bool
}

// New returns an empty emitter at indent level zero.
func New() *Emitter {
	return &Emitter{}
}

// Write appends text to the current line without indentation handling.
func (e *Emitter) Write(text string) {
	e.out.WriteString(text)
	e.pendingBreak = false
}

// Line writes text as a complete line at the current indent level.
func (e *Emitter) Line(text string) {
	if e.pendingBreak {
		e.out.WriteByte('\n')
	}
	e.out.WriteString(strings.Repeat(" ", e.indent*indentWidth))
	e.out.WriteString(text)
	e.pendingBreak = true
}

// BlankLine separates top-level items.
func (e *Emitter) BlankLine() {
	if e.pendingBreak {
		e.out.WriteByte('\n')
	}
	e.out.WriteByte('\n')
	e.pendingBreak = false
}

// Indent increases the indent level by one step.
func (e *Emitter) Indent() {
	e.indent++
}

// Dedent decreases the indent level by one step.
func (e *Emitter) Dedent() {
	if e.indent > 0 {
		e.indent--
	}
}

// Begin opens a block: writes the begin marker and indents.
func (e *Emitter) Begin() {
	e.Line("begin")
	e.indent++
}

// End closes a block opened by Begin, labelling it with kind.
func (e *Emitter) End(kind string) {
	e.Dedent()
	e.Line("end " + kind)
}

// Finalize returns the accumulated text with a trailing newline. The
// buffer is not consumed, so a caller may snapshot mid-run.
func (e *Emitter) Finalize() string {
	text := e.out.String()
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}
