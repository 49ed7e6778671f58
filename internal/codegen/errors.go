package codegen

import "errors"

// errAbortStmt signals that the statement currently being generated
// hit an unrecoverable semantic error (today: only an undeclared
// variable reference). The diagnostic has already been recorded on
// the sink; Generate abandons whatever remains of the statement and
// moves on to the next one.
var errAbortStmt = errors.New("codegen: statement aborted")

// registerExhausted is raised by panic, not as an error return: pool
// exhaustion is a fatal, whole-transpilation abort, unlike the
// per-statement errAbortStmt.
type registerExhausted struct{}

func (registerExhausted) Error() string { return "codegen: register pool exhausted" }
