// Package diag formats structured compiler diagnostics: a CompilerError
// with a stable code, a source position, and optional notes/help text,
// rendered with the same rustc-flavored layout the rest of this toolchain
// uses for user-facing errors.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"
)

// Level is the severity of a diagnostic.
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Position locates a diagnostic within a rule-book source file.
type Position struct {
	Line   int
	Column int
}

// Sentinel errors, wrapped with pkg/errors so callers get a stack trace
// attached the first time one of these escapes a function boundary.
var (
	ErrNotConstructor  = pkgerrors.New("rule group is not a constructor")
	ErrInvalidPattern  = pkgerrors.New("invalid pattern")
	ErrUnboundVariable = pkgerrors.New("unbound variable")
	ErrArityMismatch   = pkgerrors.New("arity mismatch")
	ErrUnsupported     = pkgerrors.New("construct not supported by this backend")
)

// CompilerError is a single structured diagnostic: a severity, a stable
// code, the primary message, where it happened, and anything extra to
// show the user.
type CompilerError struct {
	Level    Level
	Code     string
	Message  string
	Position Position
	Notes    []string
	HelpText string
	Cause    error
}

func (e *CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

func (e *CompilerError) Unwrap() error { return e.Cause }

// New builds a CompilerError at Error level, wrapping cause for a stack
// trace when one is supplied.
func New(code, message string, pos Position, cause error) *CompilerError {
	var wrapped error
	if cause != nil {
		wrapped = pkgerrors.WithStack(cause)
	}
	return &CompilerError{Level: Error, Code: code, Message: message, Position: pos, Cause: wrapped}
}

// WithNote appends a note and returns the same error, for chaining at the
// call site.
func (e *CompilerError) WithNote(note string) *CompilerError {
	e.Notes = append(e.Notes, note)
	return e
}

// WithHelp sets the help text and returns the same error.
func (e *CompilerError) WithHelp(help string) *CompilerError {
	e.HelpText = help
	return e
}

// Reporter renders CompilerErrors against a named source, one file per
// reporter instance (mirrors the teacher's per-file ErrorReporter).
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

// Format renders one diagnostic in the rustc-style layout: a colored
// header line, a --> location line, and up to three lines of source
// context with a caret underline.
func (r *Reporter) Format(err *CompilerError) string {
	var b strings.Builder

	levelColor := r.colorFor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		b.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message))
	} else {
		b.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(err.Level)), err.Message))
	}

	width := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", width)
	b.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n", indent, dim("-->"), r.filename, err.Position.Line, err.Position.Column))
	b.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if err.Position.Line >= 1 && err.Position.Line <= len(r.lines) {
		line := r.lines[err.Position.Line-1]
		b.WriteString(fmt.Sprintf("%s %s %s\n", bold(fmt.Sprintf("%*d", width, err.Position.Line)), dim("│"), line))
		marker := strings.Repeat(" ", max0(err.Position.Column-1)) + levelColor("^")
		b.WriteString(fmt.Sprintf("%s %s %s\n", indent, dim("│"), marker))
	}

	for _, note := range err.Notes {
		noteColor := color.New(color.FgBlue).SprintFunc()
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), noteColor("note:"), note))
	}
	if err.HelpText != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		b.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), err.HelpText))
	}
	b.WriteString("\n")
	return b.String()
}

func (r *Reporter) colorFor(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func lineNumberWidth(line int) int {
	w := len(fmt.Sprintf("%d", line))
	if w < 3 {
		return 3
	}
	return w
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
