// Package driver glues the pipeline stages together: it is the one
// place that knows the order lexer, parser, and code generator run
// in, and owns the shared diagnostics sink.
package driver

import (
	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/codegen"
	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/lexer"
	"github.com/aloussase/cat/internal/parser"
)

// ReplFile is the conventional file name used by callers (the REPL)
// that have no real source file to report diagnostics against.
const ReplFile = "<repl>"

// Transpile runs the full pipeline over source once. On success ok is
// true and result holds the emitted MIPS assembly text; on failure ok
// is false and result holds the rendered diagnostics. file is used
// only to label diagnostic output.
func Transpile(source, file string) (result string, ok bool) {
	diags := diag.NewSink()

	tokens := lexer.Lex(source, diags)
	program := parser.New(tokens, diags).Parse()
	asmText := codegen.New(diags).Generate(program)

	if diags.HasErrors() {
		return diag.Render(source, file, diags.Diagnostics(), true), false
	}
	return asmText, true
}

// Parse runs just the lex+parse stages, exposed for the `catc parse`
// subcommand and for tests that need the AST without generating code.
func Parse(source string, diags *diag.Sink) *ast.Program {
	tokens := lexer.Lex(source, diags)
	return parser.New(tokens, diags).Parse()
}
