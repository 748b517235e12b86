// Package report renders translation errors for terminals: a colored
// header, the offending source line and a caret marker.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"longform"
)

// Format renders err against the source it was produced from. Errors
// without position information render as a plain one-line message.
func Format(path string, source string, err error) string {
	var terr *longform.Error
	if !errors.As(err, &terr) || terr.Line <= 0 {
		red := color.New(color.FgRed).SprintFunc()
		return fmt.Sprintf("%s: %v\n", red("error"), err)
	}

	lines := strings.Split(source, "\n")
	var lineContent string
	if terr.Line-1 < len(lines) {
		lineContent = lines[terr.Line-1]
	}

	marker := strings.Repeat(" ", max(0, terr.Column-1)) + "^"

	red := color.New(color.FgRed).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	lineNumberWidth := len(fmt.Sprintf("%d", terr.Line))
	if lineNumberWidth < 3 {
		lineNumberWidth = 3
	}
	indent := strings.Repeat(" ", lineNumberWidth)

	return fmt.Sprintf(
		"%s: %s\n%s┌─ %s:%d:%d\n%s│\n%*d│%s\n%s│%s\n",
		red("error"),
		terr.Message,
		indent,
		path, terr.Line, terr.Column,
		indent,
		lineNumberWidth, terr.Line, lineContent,
		indent,
		bold(marker),
	)
}
