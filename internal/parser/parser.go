// Package parser implements a Pratt-style expression parser with
// per-statement error recovery, turning a token stream into a Program.
//
// Prefix and infix parselets are fixed dispatch tables keyed by token
// kind, rather than dynamically registered callbacks: simpler and
// faster for a fixed grammar. Error recovery uses a sentinel error
// value, errSync, returned up the call stack and caught at the
// statement boundary in Parse, instead of a thrown exception.
package parser

import (
	"errors"

	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/token"
)

// errSync is the synchronization signal: when any parse function
// returns it, the caller abandons the partial statement and lets Parse
// resynchronize at the next '.' or END.
var errSync = errors.New("parser: synchronization point")

// Parser consumes a token stream and a diagnostics sink and produces a
// Program. The returned Program may be empty but is never nil.
type Parser struct {
	tokens  []token.Token
	current int
	diags   *diag.Sink
}

// New creates a Parser over tokens, which must end with an END token
// (as produced by lexer.Lex). Diagnostics are appended to diags.
func New(tokens []token.Token, diags *diag.Sink) *Parser {
	return &Parser{tokens: tokens, diags: diags}
}

// Parse consumes the whole token stream and returns the resulting
// Program. Statements that fail to parse are skipped (after recording
// a diagnostic); parsing always continues to the next statement and
// Parse never reports failure directly: callers consult the shared
// diagnostics sink.
func (p *Parser) Parse() *ast.Program {
	program := &ast.Program{}

	for !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			p.synchronize()
			continue
		}
		if stmt != nil {
			program.Stmts = append(program.Stmts, stmt)
		}
	}

	return program
}

func (p *Parser) advance() token.Token {
	tok := p.tokens[p.current]
	if p.current < len(p.tokens)-1 {
		p.current++
	}
	return tok
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == token.END
}

// match advances and returns true if the next token's lexeme equals
// word. Statement keywords (then/else/end) are recognized this way,
// by lexeme rather than by a dedicated token kind.
func (p *Parser) match(word string) bool {
	if p.peek().Lexeme == word {
		p.advance()
		return true
	}
	return false
}

// matched reports whether the previously consumed token's lexeme was
// word. Used after a match-driven loop exits to tell which of several
// possible terminators actually fired.
func (p *Parser) matched(word string) bool {
	return p.previous().Lexeme == word
}

// consume advances past one token, requiring it to have the given
// kind. On mismatch it records an error diagnostic and a hint (for a
// missing DOT, that statements must end with '.'; otherwise, which
// kind was expected) and returns errSync.
func (p *Parser) consume(kind token.Kind) error {
	tok := p.advance()
	if tok.Kind == kind {
		return nil
	}

	if tok.Kind == token.END {
		p.diags.Error(tok.Span, "Unexpected end of file")
	} else {
		p.diags.Error(tok.Span, "Unexpected token '%s'", tok.Lexeme)
	}

	if kind == token.DOT {
		p.diags.Hint("Statements must end with a '.'")
	} else {
		p.diags.Hint("A(n) %s was expected", kind)
	}

	return errSync
}

// synchronize skips tokens until just past the next '.' or until END.
// Recovery never re-enters an incomplete sub-expression.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		tok := p.advance()
		if tok.Kind == token.DOT {
			return
		}
	}
}

func (p *Parser) parseStmt() (ast.Stmt, error) {
	tok := p.peek()

	if tok.Kind == token.IDENTIFIER {
		switch tok.Lexeme {
		case "let":
			p.advance()
			return p.parseLetStmt(tok)
		case "if":
			p.advance()
			return p.parseIfStmt(tok)
		case "print":
			p.advance()
			return p.parsePrintStmt(tok)
		}
	}

	expr, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.DOT); err != nil {
		return nil, err
	}
	return &ast.ExprStmt{Expr: expr}, nil
}

// parseLetStmt parses `let <identifier> := <expr> .`. The left-hand
// side is parsed at precedence[WALRUS]+1 specifically so the WALRUS
// infix parselet never fires while parsing the bound name: the
// `:=` is consumed explicitly right after, by this function, not by
// the expression grammar.
func (p *Parser) parseLetStmt(letTok token.Token) (ast.Stmt, error) {
	lhs, err := p.parseExpr(precedenceOf(token.WALRUS) + 1)
	if err != nil {
		p.diags.Hint("Maybe you meant to use the walrus operator ':='?")
		return nil, err
	}

	if err := p.consume(token.WALRUS); err != nil {
		return nil, err
	}

	ident, ok := lhs.(*ast.Identifier)
	if !ok {
		p.diags.Error(lhs.Span(), "Expected identifier after let")
		return nil, errSync
	}

	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	if err := p.consume(token.DOT); err != nil {
		return nil, err
	}

	return &ast.LetStmt{Tok: letTok, Ident: ident, Value: value}, nil
}

// parseIfStmt parses `if <expr> then <stmt>* (else <stmt>*)? end`,
// followed by an optional '.' which is consumed when present. The
// then/else/end words are recognized by lexeme match, not token kind,
// and which terminator ended a branch is recovered via matched(...)
// on the previously consumed token.
func (p *Parser) parseIfStmt(ifTok token.Token) (ast.Stmt, error) {
	if p.isAtEnd() {
		p.diags.Error(ifTok.Span, "Expected condition after if")
		return nil, errSync
	}

	condition, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}

	if !p.match("then") {
		p.diags.Error(p.peek().Span, "Expected 'then' after if statement condition")
		p.diags.Hint("Insert 'then' to start the statement body")
		return nil, errSync
	}

	var thenBranch, elseBranch []ast.Stmt

	for !p.isAtEnd() && !p.match("else") && !p.match("end") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		thenBranch = append(thenBranch, stmt)
	}

	if p.matched("end") {
		if p.peek().Kind == token.DOT {
			p.advance()
		}
		return &ast.IfStmt{Tok: ifTok, Condition: condition, ThenBranch: thenBranch}, nil
	}

	if p.isAtEnd() {
		p.diags.Error(p.peek().Span, "Expected 'end' after if statement body")
		p.diags.Hint("Add 'end' to the end of the if statement")
		return nil, errSync
	}

	if !p.matched("else") {
		p.diags.Error(p.peek().Span, "Expected else block after if")
		p.diags.Hint("Add 'else' to begin an else block")
		return nil, errSync
	}

	for !p.isAtEnd() && !p.match("end") {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		elseBranch = append(elseBranch, stmt)
	}

	if !p.matched("end") {
		p.diags.Error(p.peek().Span, "Unterminated if statement")
		p.diags.Hint("Add 'end' to the end of the if statement")
		return nil, errSync
	}

	if p.peek().Kind == token.DOT {
		p.advance()
	}

	return &ast.IfStmt{Tok: ifTok, Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

// parsePrintStmt parses `print <expr>* .`.
func (p *Parser) parsePrintStmt(printTok token.Token) (ast.Stmt, error) {
	var exprs []ast.Expr

	for !p.isAtEnd() && p.peek().Kind != token.DOT {
		expr, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	if err := p.consume(token.DOT); err != nil {
		return nil, err
	}

	return &ast.PrintStmt{Tok: printTok, Exprs: exprs}, nil
}

// parseExpr is the Pratt precedence climb: parse one prefix
// expression, then keep folding in infix operators whose table
// precedence exceeds the caller's minimum precedence. Using strict
// '<' rather than '<=' here is what makes the climb left-associative.
func (p *Parser) parseExpr(precedence int) (ast.Expr, error) {
	tok := p.advance()

	prefix, ok := prefixParselets[tok.Kind]
	if !ok {
		p.diags.Error(tok.Span, "Invalid start of prefix expression: '%s'", tok.Lexeme)
		return nil, errSync
	}

	lhs, err := prefix(p, tok)
	if err != nil {
		return nil, err
	}

	for precedence < precedenceOf(p.peek().Kind) {
		next := p.advance()
		infix, ok := infixParselets[next.Kind]
		if !ok {
			p.diags.Error(next.Span, "Invalid start of infix expression: '%s'", next.Lexeme)
			return nil, errSync
		}
		lhs, err = infix(p, next, lhs)
		if err != nil {
			return nil, err
		}
	}

	return lhs, nil
}
