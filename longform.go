// Package longform is a deterministic, reversible translator between
// conventional symbolic source and Longform, a verbose surface that
// spells the same program out of lowercase words, digits and
// begin/end blocks.
//
// Reduction lowers symbolic text to Longform; oxidation raises
// Longform back to symbolic text. Constructs outside the supported
// subset travel through both directions as opaque verbatim payloads,
// so a round trip never invents or loses code.
package longform

import (
	"longform/internal/oxidize"
	"longform/internal/parser"
	"longform/internal/reduce"
)

// Reduce translates symbolic source into Longform text. It fails only
// when the host parser rejects the input; unsupported constructs are
// preserved verbatim instead of failing.
func Reduce(source []byte) ([]byte, error) {
	out, err := reduce.Reduce(source)
	if err != nil {
		return nil, wrapReduceError(err)
	}
	return []byte(out), nil
}

// Oxidize translates Longform text into symbolic source.
func Oxidize(source []byte) ([]byte, error) {
	file, err := parser.Parse(string(source))
	if err != nil {
		return nil, wrapParseError(err)
	}
	out, err := oxidize.File(file)
	if err != nil {
		return nil, wrapOxidizeError(err)
	}
	return []byte(out), nil
}

// Validate checks that Longform text tokenizes and parses. It does not
// require oxidation to succeed.
func Validate(source []byte) error {
	if _, err := parser.Parse(string(source)); err != nil {
		return wrapParseError(err)
	}
	return nil
}

func wrapReduceError(err error) error {
	if hostErr, ok := err.(*reduce.HostParseError); ok {
		return &Error{
			Kind:    HostParseFailed,
			Message: "the symbolic source does not parse",
			Line:    hostErr.Line,
			Column:  hostErr.Column,
			Offset:  hostErr.Offset,
		}
	}
	return &Error{Kind: HostParseFailed, Message: err.Error()}
}

func wrapParseError(err error) error {
	switch e := err.(type) {
	case parser.ScanError:
		return &Error{
			Kind:    scanKind(e.Kind),
			Message: e.Message,
			Line:    e.Position.Line,
			Column:  e.Position.Column,
			Offset:  e.Position.Offset,
		}
	case *parser.ParseError:
		return &Error{
			Kind:    parseKind(e.Kind),
			Message: e.Message,
			Line:    e.Position.Line,
			Column:  e.Position.Column,
			Offset:  e.Position.Offset,
		}
	default:
		return &Error{Kind: UnexpectedToken, Message: err.Error()}
	}
}

func wrapOxidizeError(err error) error {
	if typeErr, ok := err.(*oxidize.TypeError); ok {
		return &Error{Kind: UnrepresentableType, Message: typeErr.Detail}
	}
	return &Error{Kind: UnrepresentableType, Message: err.Error()}
}

func scanKind(kind parser.ErrKind) ErrorKind {
	switch kind {
	case parser.ErrProhibitedCharacter:
		return ProhibitedCharacter
	case parser.ErrUnknownWord:
		return UnknownWord
	case parser.ErrUnterminatedLiteral:
		return UnexpectedEnd
	default:
		return UnexpectedToken
	}
}

func parseKind(kind parser.ErrKind) ErrorKind {
	switch kind {
	case parser.ErrBlockKindMismatch:
		return BlockKindMismatch
	case parser.ErrUnexpectedEnd:
		return UnexpectedEnd
	default:
		return UnexpectedToken
	}
}
