// Package diag collects and renders compiler diagnostics: errors and
// hints produced by any stage of the transpilation pipeline.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aloussase/cat/internal/token"
)

// Severity classifies a Diagnostic as a hard error or a supplementary
// hint that refines the diagnostic immediately preceding it.
type Severity int

const (
	Error Severity = iota
	Hint
)

func (s Severity) String() string {
	if s == Hint {
		return "hint"
	}
	return "error"
}

// Diagnostic is a single error or hint record. Hints may omit Span: a
// hint refines the error that precedes it and is rendered without a
// caret.
type Diagnostic struct {
	Severity Severity
	Message  string
	Span     token.Span
	HasSpan  bool
}

// Sink accumulates diagnostics across every pipeline stage. It is
// shared by reference (not via a package-level global) and owned by
// the driver, which renders it once all stages have run.
type Sink struct {
	diagnostics []Diagnostic
}

// NewSink returns an empty diagnostics sink.
func NewSink() *Sink {
	return &Sink{}
}

// Error records an error diagnostic at the given span.
func (s *Sink) Error(span token.Span, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: Error,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
		HasSpan:  true,
	})
}

// Hint records a hint diagnostic that refines the preceding error.
// Hints never carry a span.
func (s *Sink) Hint(format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Severity: Hint,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any Error-severity diagnostic was recorded.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Diagnostics returns the accumulated diagnostics in emission order.
func (s *Sink) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Len reports the number of diagnostics recorded so far.
func (s *Sink) Len() int {
	return len(s.diagnostics)
}

var (
	errorBanner = color.New(color.FgRed, color.Bold)
	hintBanner  = color.New(color.FgBlue, color.Bold)
)

// Render formats every diagnostic in the sink with source context and
// a caret highlight, in the style of a rustc/clang-ish error banner.
// Render is pure: it never touches package state and always returns a
// string, colored or not depending on useColor.
func Render(source, file string, diagnostics []Diagnostic, useColor bool) string {
	lineStarts := lineStartOffsets(source)

	var sb strings.Builder
	for i, d := range diagnostics {
		renderOne(&sb, source, file, lineStarts, d, useColor)
		if i != len(diagnostics)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func renderOne(sb *strings.Builder, source, file string, lineStarts []int, d Diagnostic, useColor bool) {
	if d.Severity == Hint {
		banner := "hint:"
		if useColor {
			banner = hintBanner.Sprint("hint:")
		}
		fmt.Fprintf(sb, "%s %s\n", banner, d.Message)
		return
	}

	banner := "error:"
	if useColor {
		banner = errorBanner.Sprint("error:")
	}
	fmt.Fprintf(sb, "%s %s\n", banner, d.Message)

	if !d.HasSpan {
		return
	}

	line, col := locate(lineStarts, d.Span.Start)
	fmt.Fprintf(sb, "--> %s:%d:%d\n", file, line, col)

	sourceLine := sourceLineAt(source, lineStarts, line)
	fmt.Fprintf(sb, "%s\n", sourceLine)
	fmt.Fprintf(sb, "%s^\n", strings.Repeat(" ", col-1))
}

// lineStartOffsets returns the byte offset of the start of every line in
// source, so that locate can scan a span start into (line, col)
// without rescanning the whole source for each diagnostic.
func lineStartOffsets(source string) []int {
	starts := []int{0}
	for i, c := range source {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// locate converts a byte offset into a 1-indexed (line, column) pair
// using the precomputed line-start table.
func locate(lineStarts []int, offset int) (line, col int) {
	line = 1
	for i, start := range lineStarts {
		if start > offset {
			break
		}
		line = i + 1
	}
	col = offset - lineStarts[line-1] + 1
	return line, col
}

func sourceLineAt(source string, lineStarts []int, line int) string {
	start := lineStarts[line-1]
	end := len(source)
	if line < len(lineStarts) {
		end = lineStarts[line] - 1
	}
	if end < start {
		end = start
	}
	return source[start:end]
}
