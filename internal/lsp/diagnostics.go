package lsp

import (
	"errors"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"longform"
)

// ConvertError turns a validation error into LSP diagnostics. Positions
// arrive 1-based from the tokenizer and convert to the protocol's
// 0-based indexing.
func ConvertError(err error) []protocol.Diagnostic {
	var terr *longform.Error
	if !errors.As(err, &terr) {
		return nil
	}

	line := uint32(0)
	column := uint32(0)
	if terr.Line > 0 {
		line = uint32(terr.Line - 1)
	}
	if terr.Column > 0 {
		column = uint32(terr.Column - 1)
	}

	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: column},
			End:   protocol.Position{Line: line, Character: column + 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("longform"),
		Message:  terr.Message,
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
