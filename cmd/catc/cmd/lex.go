package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/lexer"
)

var (
	lexEval   string
	showPos   bool
	showType  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a Cat file or expression",
	Long: `Tokenize a Cat program and print the resulting tokens, one per
line. Useful for debugging the lexer.

Examples:
  catc lex script.cat
  catc lex -e "5 + 3."
  catc lex --show-type --show-pos script.cat`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline source instead of reading from a file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show each token's byte span")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
}

func runLex(cmd *cobra.Command, args []string) error {
	input, _, err := resolveInput(lexEval, args)
	if err != nil {
		return err
	}

	diags := diag.NewSink()
	tokens := lexer.Lex(input, diags)

	for _, tok := range tokens {
		printToken(tok.Kind.String(), tok.Lexeme, tok.Span.Start, tok.Span.End)
	}

	if diags.HasErrors() {
		return fmt.Errorf("lexing produced %d diagnostic(s)", diags.Len())
	}
	return nil
}

func printToken(kind, lexeme string, start, end int) {
	var out string
	if showType {
		out = fmt.Sprintf("[%-10s]", kind)
	}
	out += fmt.Sprintf(" %q", lexeme)
	if showPos {
		out += fmt.Sprintf(" @[%d,%d)", start, end)
	}
	fmt.Println(out)
}

// resolveInput implements the file-or-stdin-or-inline resolution every
// subcommand shares: -e wins if set, otherwise a positional file
// argument, otherwise "-" (stdin).
func resolveInput(eval string, args []string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		return readSource(args[0])
	}
	return readSource("-")
}
