// Package ast defines the Abstract Syntax Tree node types produced by
// the parser and consumed by the code generator.
//
// Every node exclusively owns its children: dropping a Program drops
// its statements and, transitively, every expression they reference.
// There are no cyclic references and nothing is shared between nodes,
// so the tree requires no reference counting.
package ast

import "github.com/aloussase/cat/internal/token"

// Node is the common interface implemented by every AST node. Span
// reports the node's source extent, used by the code generator and the
// diagnostic renderer to point at the right place in the source.
type Node interface {
	Span() token.Span
}

// Stmt is implemented by every statement-level node: LetStmt, IfStmt,
// PrintStmt and ExprStmt.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by every expression node. Each expression carries
// the token that introduced it, both to satisfy Span() and so callers
// can recover the originating lexeme.
type Expr interface {
	Node
	exprNode()
	Token() token.Token
}

// Program is the root of the tree: an ordered sequence of statements.
type Program struct {
	Stmts []Stmt
}

func (p *Program) Span() token.Span {
	if len(p.Stmts) == 0 {
		return token.Span{}
	}
	return p.Stmts[0].Span().Merge(p.Stmts[len(p.Stmts)-1].Span())
}

// LetStmt is `let <identifier> := <expr> .`. It both introduces a new
// binding in the enclosing scope and evaluates Value for its initial
// contents.
type LetStmt struct {
	Tok   token.Token // the `let` identifier token
	Ident *Identifier
	Value Expr
}

func (s *LetStmt) stmtNode()        {}
func (s *LetStmt) Span() token.Span { return s.Tok.Span.Merge(s.Value.Span()) }

// IfStmt is `if <expr> then <stmt>* (else <stmt>*)? end`, optionally
// followed by '.'. ElseBranch is nil when no else clause was parsed and
// also when the else clause is empty (`else end`); the code generator
// emits the else label and the jump over it only for a non-nil
// ElseBranch.
type IfStmt struct {
	Tok        token.Token // the `if` identifier token
	Condition  Expr
	ThenBranch []Stmt
	ElseBranch []Stmt
}

func (s *IfStmt) stmtNode()        {}
func (s *IfStmt) Span() token.Span { return s.Tok.Span }

// PrintStmt is `print <expr>* .`: zero or more expressions printed in
// order, each on its own syscall sequence.
type PrintStmt struct {
	Tok   token.Token // the `print` identifier token
	Exprs []Expr
}

func (s *PrintStmt) stmtNode()        {}
func (s *PrintStmt) Span() token.Span { return s.Tok.Span }

// ExprStmt is a bare expression evaluated for effect and discarded,
// e.g. `x := x + 1.` or `5.`.
type ExprStmt struct {
	Expr Expr
}

func (s *ExprStmt) stmtNode()        {}
func (s *ExprStmt) Span() token.Span { return s.Expr.Span() }

// Number is an integer literal.
type Number struct {
	Tok   token.Token
	Value int
}

func (e *Number) exprNode()         {}
func (e *Number) Span() token.Span  { return e.Tok.Span }
func (e *Number) Token() token.Token { return e.Tok }

// CharLiteral is a `#c` character literal. Value is the resolved code
// point, with any backslash escape already applied by the lexer.
type CharLiteral struct {
	Tok   token.Token
	Value rune
}

func (e *CharLiteral) exprNode()         {}
func (e *CharLiteral) Span() token.Span  { return e.Tok.Span }
func (e *CharLiteral) Token() token.Token { return e.Tok }

// StringLiteral rounds out the Expr variants but has no surface syntax
// today: the lexer defines no production for a string literal. It
// exists so a future lexer extension has an AST home ready without
// touching this package; see DESIGN.md.
type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (e *StringLiteral) exprNode()         {}
func (e *StringLiteral) Span() token.Span  { return e.Tok.Span }
func (e *StringLiteral) Token() token.Token { return e.Tok }

// Identifier is a bare name reference, either a variable read or the
// left-hand side of an AssignExpr/LetStmt.
type Identifier struct {
	Tok token.Token
}

func (e *Identifier) exprNode()         {}
func (e *Identifier) Span() token.Span  { return e.Tok.Span }
func (e *Identifier) Token() token.Token { return e.Tok }
func (e *Identifier) Name() string       { return e.Tok.Lexeme }

// Grouping is a parenthesized expression `( expr )`. It exists purely
// to preserve the original span for diagnostics; it has no effect on
// code generation (the inner expression is visited directly).
type Grouping struct {
	Tok   token.Token // the LPAREN token
	Inner Expr
}

func (e *Grouping) exprNode()         {}
func (e *Grouping) Span() token.Span  { return e.Tok.Span }
func (e *Grouping) Token() token.Token { return e.Tok }

// BinaryExpr is embedded by every two-operand expression node. Lhs and
// Rhs are evaluated left-then-right.
type BinaryExpr struct {
	Tok token.Token // the operator token
	Lhs Expr
	Rhs Expr
}

func (e *BinaryExpr) Span() token.Span  { return e.Lhs.Span().Merge(e.Rhs.Span()) }
func (e *BinaryExpr) Token() token.Token { return e.Tok }

// AddExpr is `lhs + rhs`.
type AddExpr struct{ BinaryExpr }

func (e *AddExpr) exprNode() {}

// SubExpr is `lhs - rhs`.
type SubExpr struct{ BinaryExpr }

func (e *SubExpr) exprNode() {}

// MultExpr is `lhs * rhs`.
type MultExpr struct{ BinaryExpr }

func (e *MultExpr) exprNode() {}

// AssignExpr is `lhs := rhs`. The parser guarantees Lhs is always an
// *Identifier before constructing this node.
type AssignExpr struct{ BinaryExpr }

func (e *AssignExpr) exprNode() {}

// CompareOp enumerates the comparison operators a ComparisonExpr may
// carry.
type CompareOp int

const (
	CmpLT CompareOp = iota
	CmpLTE
	CmpGT
	CmpGTE
	CmpEQ
)

// ComparisonExpr is `lhs <op> rhs` for op in {<, <=, >, >=, =}. It
// evaluates to 0 or 1.
type ComparisonExpr struct {
	BinaryExpr
	Op CompareOp
}

func (e *ComparisonExpr) exprNode() {}
