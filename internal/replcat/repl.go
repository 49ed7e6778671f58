// Package replcat implements the interactive line editor used as the
// CLI's no-arguments mode: prompt `> `, `.quit` exits. Uses
// chzyer/readline for line editing and history and fatih/color for
// colored feedback.
package replcat

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/aloussase/cat/internal/driver"
	"github.com/aloussase/cat/internal/runner"
)

var (
	promptColor = color.New(color.FgGreen)
	resultColor = color.New(color.FgYellow)
)

// Prompt is the REPL's line prompt.
const Prompt = "> "

// Repl is a single interactive session. Start invokes the transpiler
// (and, if requested, the runner) once per line entered.
type Repl struct {
	// RunAfterTranspile mirrors the CLI's --run flag: when true,
	// every successfully transpiled line is also executed via
	// internal/runner and its output printed.
	RunAfterTranspile bool
}

// Start runs the read-eval-print loop until the user types `.quit`, an
// EOF is read (Ctrl+D), or readline reports an unrecoverable error.
func (r *Repl) Start(writer io.Writer) error {
	rl, err := readline.New(promptColor.Sprint(Prompt))
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			io.WriteString(writer, "\n")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".quit" {
			return nil
		}

		rl.SaveHistory(line)
		r.evalLine(writer, line)
	}
}

func (r *Repl) evalLine(writer io.Writer, line string) {
	out, ok := driver.Transpile(line, driver.ReplFile)
	if !ok {
		color.New(color.FgRed).Fprint(writer, out)
		return
	}

	resultColor.Fprint(writer, out)

	if r.RunAfterTranspile {
		io.WriteString(writer, runner.Execute(out))
	}
}
