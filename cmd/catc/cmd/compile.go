package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloussase/cat/internal/driver"
	"github.com/aloussase/cat/internal/runner"
)

var (
	compileEval string
	compileRun  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Transpile Cat source to MIPS assembly",
	Long: `Transpile a Cat program into MIPS assembly text.

This is the same pipeline the root command runs on a positional file;
it exists as its own subcommand so -e/--run can be combined without a
file argument.

Examples:
  catc compile script.cat
  catc compile -e "5 + 3." --run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileEval, "eval", "e", "", "compile inline source instead of reading from a file")
	compileCmd.Flags().BoolVar(&compileRun, "run", false, "run the emitted assembly via the external simulator")
}

func runCompile(cmd *cobra.Command, args []string) error {
	input, filename, err := resolveInput(compileEval, args)
	if err != nil {
		return err
	}

	out, ok := driver.Transpile(input, filename)
	fmt.Print(out)
	if !ok {
		return fmt.Errorf("transpilation failed")
	}

	if compileRun {
		fmt.Print(runner.Execute(out))
	}

	return nil
}
