// Package codegen walks a parsed Program and emits MIPS assembly text
// using a register-bitset allocator over the usable temporaries, a
// 4-byte-granular stack cursor, an arena-indexed scope chain, a
// monotonic label counter, and an output buffer. State mutation is
// confined entirely to the visit methods in this package; from outside,
// a Generator exposes only its final output string and the
// AllRegistersReleased check.
package codegen

import (
	"strconv"

	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/token"
)

// Generator transpiles one Program into MIPS assembly text. A
// Generator is single-use: construct a fresh one per transpilation.
// Two concurrent transpilations must use independent instances; none
// of a Generator's state is safe to share across goroutines.
type Generator struct {
	diags  *diag.Sink
	alloc  allocator
	stack  stack
	scopes *scopes

	labelCounter int
	lastSpan     token.Span

	out []byte
}

// New creates a Generator that appends diagnostics to diags.
func New(diags *diag.Sink) *Generator {
	return &Generator{diags: diags, scopes: newScopes()}
}

// Generate emits the preamble, the program body, and the epilogue,
// returning the complete assembly text. Register-pool exhaustion is
// the one fatal error: it aborts whatever remains of the program, but
// the preamble/epilogue are always present in the returned text.
func (g *Generator) Generate(program *ast.Program) (out string) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(registerExhausted); !ok {
				panic(r)
			}
		}
		g.emit(instr("jr", "$ra"))
		out = string(g.out)
	}()

	g.emit(".text")
	g.emit(".globl main")
	g.emit("main:")

	for _, stmt := range program.Stmts {
		if err := g.genStmt(stmt); err != nil {
			// Diagnostic already recorded; move on to the next
			// statement.
			continue
		}
	}

	return string(g.out)
}

// AllRegistersReleased reports whether every register has been
// returned to the pool, the invariant a successful Generate must
// leave in place. Exposed for tests.
func (g *Generator) AllRegistersReleased() bool {
	return g.alloc.allReleased()
}

func (g *Generator) emit(line string) {
	g.out = append(g.out, line...)
	g.out = append(g.out, '\n')
}

func (g *Generator) emitLabel(name string) {
	g.out = append(g.out, name...)
	g.out = append(g.out, ':', '\n')
}

func (g *Generator) allocRegister() Register {
	r, ok := g.alloc.find()
	if !ok {
		g.diags.Error(g.lastSpan, "Register pool exhausted")
		panic(registerExhausted{})
	}
	return r
}

func (g *Generator) release(r Register) {
	g.alloc.release(r)
}

func (g *Generator) nextLabel() int {
	n := g.labelCounter
	g.labelCounter++
	return n
}

// pushSlot emits the stack-pointer adjustment for a new variable slot
// and returns its mark.
func (g *Generator) pushSlot() int {
	mark := g.stack.push()
	g.emit(instr("addi", spReg, spReg, "-4"))
	return mark
}

// popScope emits the stack-pointer adjustment for every slot pushed
// directly in the current scope, retires them from the cursor, and
// returns to the parent scope. Invoked on scope exit.
func (g *Generator) popScope() {
	n := g.scopes.count()
	for i := 0; i < n; i++ {
		g.emit(instr("addi", spReg, spReg, "4"))
	}
	g.stack.pop(n)
	g.scopes.leave()
}

func (g *Generator) genStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		return g.genLetStmt(s)
	case *ast.IfStmt:
		return g.genIfStmt(s)
	case *ast.PrintStmt:
		return g.genPrintStmt(s)
	case *ast.ExprStmt:
		reg, err := g.genExpr(s.Expr)
		if err != nil {
			return err
		}
		g.release(reg)
		return nil
	default:
		panic("codegen: unhandled statement type")
	}
}

// genLetStmt evaluates the initializer, pushes a new slot, binds the
// name, stores, and releases the value register.
func (g *Generator) genLetStmt(s *ast.LetStmt) error {
	rs, err := g.genExpr(s.Value)
	if err != nil {
		return err
	}

	mark := g.pushSlot()
	g.scopes.bind(s.Ident.Name(), mark)
	offset := g.stack.offsetOf(mark)
	g.emit(instr("sw", rs.String(), offsetOperand(offset, spReg)))
	g.release(rs)

	return nil
}

// genIfStmt generates the condition, a branch/label pair, the
// then-branch in a fresh scope, an optional jump-over-else, the
// else-branch in its own fresh scope, and the exit label.
func (g *Generator) genIfStmt(s *ast.IfStmt) error {
	rc, err := g.genExpr(s.Condition)
	if err != nil {
		return err
	}

	n := g.nextLabel()
	elseLabel := "ELSE" + strconv.Itoa(n)
	exitLabel := "EXIT" + strconv.Itoa(n)

	hasElse := s.ElseBranch != nil
	branchTarget := exitLabel
	if hasElse {
		branchTarget = elseLabel
	}
	g.emit(instr("beq", rc.String(), zeroReg, branchTarget))
	g.release(rc)

	g.scopes.enter()
	for _, stmt := range s.ThenBranch {
		if err := g.genStmt(stmt); err != nil {
			continue
		}
	}
	g.popScope()

	if hasElse {
		g.emit(instr("j", exitLabel))
		g.emitLabel(elseLabel)

		g.scopes.enter()
		for _, stmt := range s.ElseBranch {
			if err := g.genStmt(stmt); err != nil {
				continue
			}
		}
		g.popScope()
	}

	g.emitLabel(exitLabel)

	return nil
}

// genPrintStmt evaluates each expression and prints it via the
// syscall sequence appropriate to its value kind, releasing the
// register in between.
func (g *Generator) genPrintStmt(s *ast.PrintStmt) error {
	for _, expr := range s.Exprs {
		reg, err := g.genExpr(expr)
		if err != nil {
			return err
		}

		if valueKindOf(expr) == kindChar {
			g.emit(instr("li", "$v0", "11"))
		} else {
			g.emit(instr("li", "$v0", "1"))
		}
		g.emit(instr("move", "$a0", reg.String()))
		g.emit(instr("syscall"))

		g.release(reg)
	}

	return nil
}
