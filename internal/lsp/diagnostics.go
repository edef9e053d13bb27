package lsp

import (
	"github.com/alecthomas/participle/v2"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ConvertParseError turns a participle parse error into an LSP
// diagnostic positioned at the offending token.
func ConvertParseError(err error) []protocol.Diagnostic {
	pe, ok := err.(participle.Error)
	if !ok {
		return []protocol.Diagnostic{{
			Range:    protocol.Range{},
			Severity: ptrSeverity(protocol.DiagnosticSeverityError),
			Source:   ptrString("redex-parser"),
			Message:  err.Error(),
		}}
	}

	pos := pe.Position()
	return []protocol.Diagnostic{{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max(pos.Line-1, 0)),
				Character: uint32(max(pos.Column-1, 0)),
			},
			End: protocol.Position{
				Line:      uint32(max(pos.Line-1, 0)),
				Character: uint32(pos.Column + 5),
			},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("redex-parser"),
		Message:  pe.Message(),
	}}
}

// ConvertCompileError turns a lowering/codegen error into a
// whole-document diagnostic — the compiler pipeline does not yet carry
// source positions for post-parse errors (see internal/diag).
func ConvertCompileError(err error) []protocol.Diagnostic {
	return []protocol.Diagnostic{{
		Range:    protocol.Range{},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Source:   ptrString("redexc"),
		Message:  err.Error(),
	}}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity { return &s }
func ptrString(s string) *string                                           { return &s }
