// Command catc is the Cat-to-MIPS transpiler's CLI: no arguments opens
// an interactive REPL, a positional source file (or `-` for stdin) is
// transpiled directly, and subcommands expose each pipeline stage for
// debugging.
package main

import (
	"fmt"
	"os"

	"github.com/aloussase/cat/cmd/catc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
