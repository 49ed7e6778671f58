// Package runner shells out to the external MIPS simulator, spim,
// treating it strictly as an external collaborator: this package does
// not prescribe how spim itself is implemented, only how it is
// invoked and its output captured.
package runner

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
)

// programFile is the temporary assembly file Execute hands to spim.
const programFile = "cat-out.mips"

// Execute writes program to a temporary file, runs `spim -f <file>`,
// and returns its combined stdout/stderr. The temporary file is always
// removed, whether or not spim ran successfully.
func Execute(program string) string {
	if err := os.WriteFile(programFile, []byte(program), 0o644); err != nil {
		return fmt.Sprintf("error: could not write %s: %s\n", programFile, err)
	}
	defer os.Remove(programFile)

	cmd := exec.Command("spim", "-f", programFile)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		fmt.Fprintf(&out, "error: spim exited with an error: %s\n", err)
	}

	return out.String()
}
