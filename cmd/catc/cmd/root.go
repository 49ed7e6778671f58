package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/aloussase/cat/internal/driver"
	"github.com/aloussase/cat/internal/replcat"
	"github.com/aloussase/cat/internal/runner"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var runAfterTranspile bool

var rootCmd = &cobra.Command{
	Use:   "catc [file]",
	Short: "Cat-to-MIPS transpiler",
	Long: `catc transpiles programs written in Cat, a small imperative
expression language, into MIPS assembly text.

With no arguments, catc opens an interactive REPL (prompt "> ",
".quit" to exit). Given a positional source file (or "-" for stdin)
it transpiles that file directly. Use the lex/parse/compile
subcommands to inspect an individual pipeline stage.`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write assembly to this path instead of stdout")
	rootCmd.Flags().BoolVar(&runAfterTranspile, "run", false, "run the emitted assembly via the external simulator")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		repl := &replcat.Repl{RunAfterTranspile: runAfterTranspile}
		return repl.Start(os.Stdout)
	}

	source, filename, err := readSource(args[0])
	if err != nil {
		return err
	}

	out, ok := driver.Transpile(source, filename)
	if err := writeOutput(out); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("transpilation failed")
	}

	if runAfterTranspile {
		fmt.Print(runner.Execute(out))
	}

	return nil
}

// readSource resolves a catc positional argument into source text and
// a diagnostic file name: "-" reads stdin (named "<stdin>"), anything
// else is a file path read directly.
func readSource(arg string) (source, filename string, err error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file %s: %w", arg, err)
	}
	return string(data), arg, nil
}

var outputPath string

// writeOutput writes out to outputPath, or to stdout when unset.
func writeOutput(out string) error {
	if outputPath == "" {
		fmt.Print(out)
		return nil
	}
	return os.WriteFile(outputPath, []byte(out), 0o644)
}
