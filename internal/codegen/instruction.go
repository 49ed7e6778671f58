package codegen

import (
	"fmt"
	"strings"
)

// spReg and zeroReg name the two fixed MIPS registers the generator
// addresses directly (never through the allocator): the stack pointer
// and the hardwired zero register used by comparisons and branches.
const (
	spReg   = "$sp"
	zeroReg = "$zero"
)

// instr formats one MIPS instruction line: a mnemonic padded to a
// fixed column, followed by its comma-separated operands. A bare
// mnemonic with no operands (e.g. "syscall") is returned unpadded.
func instr(mnemonic string, operands ...string) string {
	if len(operands) == 0 {
		return mnemonic
	}
	return fmt.Sprintf("%-6s%s", mnemonic, strings.Join(operands, ", "))
}

// offsetOperand formats a `offset(reg)` memory operand, as used by lw
// and sw.
func offsetOperand(offset int, reg string) string {
	return fmt.Sprintf("%d(%s)", offset, reg)
}
