package codegen

import (
	"strconv"

	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/token"
)

func itoa(v int) string { return strconv.Itoa(v) }

// valueKind distinguishes the two value kinds PrintStmt must pick a
// syscall for. Cat has no type checker, so kind is inferred
// structurally rather than tracked by a real type system.
type valueKind int

const (
	kindInt valueKind = iota
	kindChar
)

// valueKindOf inspects an expression's static shape to decide which
// print syscall it needs. Only a literal character (optionally inside
// parentheses) is ever char-kinded; everything else, including a
// ComparisonExpr's 0/1 result, prints as an integer.
func valueKindOf(e ast.Expr) valueKind {
	for {
		if g, ok := e.(*ast.Grouping); ok {
			e = g.Inner
			continue
		}
		break
	}
	if _, ok := e.(*ast.CharLiteral); ok {
		return kindChar
	}
	return kindInt
}

func (g *Generator) genExpr(expr ast.Expr) (Register, error) {
	g.lastSpan = expr.Span()

	switch e := expr.(type) {
	case *ast.Number:
		return g.genNumber(e)
	case *ast.CharLiteral:
		return g.genCharLiteral(e)
	case *ast.Identifier:
		return g.genIdentifier(e)
	case *ast.Grouping:
		return g.genExpr(e.Inner)
	case *ast.AddExpr:
		return g.genAddSub(e.BinaryExpr, "addi", "add", false)
	case *ast.SubExpr:
		return g.genAddSub(e.BinaryExpr, "addi", "sub", true)
	case *ast.MultExpr:
		return g.genMult(e)
	case *ast.AssignExpr:
		return g.genAssign(e)
	case *ast.ComparisonExpr:
		return g.genComparison(e)
	default:
		panic("codegen: unhandled expression type")
	}
}

func (g *Generator) genNumber(e *ast.Number) (Register, error) {
	r := g.allocRegister()
	g.emit(instr("li", r.String(), itoa(e.Value)))
	return r, nil
}

func (g *Generator) genCharLiteral(e *ast.CharLiteral) (Register, error) {
	r := g.allocRegister()
	g.emit(instr("li", r.String(), itoa(int(e.Value))))
	return r, nil
}

func (g *Generator) genIdentifier(e *ast.Identifier) (Register, error) {
	mark, ok := g.scopes.lookup(e.Name())
	if !ok {
		g.reportUnbound(e.Name(), e.Span())
		return 0, errAbortStmt
	}
	r := g.allocRegister()
	offset := g.stack.offsetOf(mark)
	g.emit(instr("lw", r.String(), offsetOperand(offset, spReg)))
	return r, nil
}

// genAddSub implements the shared AddExpr/SubExpr visit: evaluate the
// left side, then either fold a bare-literal right side into an
// immediate (negated for subtraction) or evaluate the right side and
// emit the register-register form. Either way the left register is
// reused as the result.
func (g *Generator) genAddSub(b ast.BinaryExpr, immMnemonic, regMnemonic string, negate bool) (Register, error) {
	lhs, err := g.genExpr(b.Lhs)
	if err != nil {
		return 0, err
	}

	if n, ok := b.Rhs.(*ast.Number); ok {
		value := n.Value
		if negate {
			value = -value
		}
		g.emit(instr(immMnemonic, lhs.String(), lhs.String(), itoa(value)))
		return lhs, nil
	}

	rhs, err := g.genExpr(b.Rhs)
	if err != nil {
		g.release(lhs)
		return 0, err
	}
	g.emit(instr(regMnemonic, lhs.String(), lhs.String(), rhs.String()))
	g.release(rhs)

	return lhs, nil
}

func (g *Generator) genMult(e *ast.MultExpr) (Register, error) {
	lhs, err := g.genExpr(e.Lhs)
	if err != nil {
		return 0, err
	}
	rhs, err := g.genExpr(e.Rhs)
	if err != nil {
		g.release(lhs)
		return 0, err
	}

	g.emit(instr("mult", lhs.String(), rhs.String()))
	g.emit(instr("mflo", lhs.String()))
	g.release(rhs)

	return lhs, nil
}

// genAssign implements AssignExpr. The parser guarantees Lhs is always
// an *ast.Identifier, so the type assertion here can never fail on a
// well-formed AST.
func (g *Generator) genAssign(e *ast.AssignExpr) (Register, error) {
	ident := e.Lhs.(*ast.Identifier)

	mark, ok := g.scopes.lookup(ident.Name())
	if !ok {
		g.reportUnbound(ident.Name(), ident.Span())
		return 0, errAbortStmt
	}

	rs, err := g.genExpr(e.Rhs)
	if err != nil {
		return 0, err
	}

	offset := g.stack.offsetOf(mark)
	g.emit(instr("sw", rs.String(), offsetOperand(offset, spReg)))

	return rs, nil
}

// genComparison implements ComparisonExpr using only SLT, SLTU, SUB
// and XORI: LT/GT fall out of a single slt (swapping operands for
// GT), LTE/GTE negate the opposite strict comparison, and EQ is
// derived as the difference, unsigned-compared against zero, then
// negated. This is the standard MIPS idiom for forming equality
// from slt.
func (g *Generator) genComparison(e *ast.ComparisonExpr) (Register, error) {
	lhs, err := g.genExpr(e.Lhs)
	if err != nil {
		return 0, err
	}
	rhs, err := g.genExpr(e.Rhs)
	if err != nil {
		g.release(lhs)
		return 0, err
	}

	switch e.Op {
	case ast.CmpLT:
		g.emit(instr("slt", lhs.String(), lhs.String(), rhs.String()))
	case ast.CmpGT:
		g.emit(instr("slt", lhs.String(), rhs.String(), lhs.String()))
	case ast.CmpLTE:
		g.emit(instr("slt", lhs.String(), rhs.String(), lhs.String()))
		g.emit(instr("xori", lhs.String(), lhs.String(), "1"))
	case ast.CmpGTE:
		g.emit(instr("slt", lhs.String(), lhs.String(), rhs.String()))
		g.emit(instr("xori", lhs.String(), lhs.String(), "1"))
	case ast.CmpEQ:
		g.emit(instr("sub", lhs.String(), lhs.String(), rhs.String()))
		g.emit(instr("sltu", lhs.String(), zeroReg, lhs.String()))
		g.emit(instr("xori", lhs.String(), lhs.String(), "1"))
	}

	g.release(rhs)
	return lhs, nil
}

// reportUnbound records the paired error/hint diagnostic for an
// undeclared variable reference.
func (g *Generator) reportUnbound(name string, span token.Span) {
	g.diags.Error(span, "Unbound variable %s", name)
	g.diags.Hint("Maybe you forgot to declare the variable?\n\n\tlet %s := <value>", name)
}
