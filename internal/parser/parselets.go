package parser

import (
	"strconv"

	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/token"
)

// prefixParselet parses an expression that begins with tok, which has
// already been consumed.
type prefixParselet func(p *Parser, tok token.Token) (ast.Expr, error)

// infixParselet parses the right-hand side of a binary expression
// whose left-hand side (already fully parsed) is lhs and whose
// operator token (already consumed) is tok.
type infixParselet func(p *Parser, tok token.Token, lhs ast.Expr) (ast.Expr, error)

var prefixParselets = map[token.Kind]prefixParselet{
	token.NUMBER:     parseNumber,
	token.CHAR:       parseCharLiteral,
	token.IDENTIFIER: parseIdentifier,
	token.LPAREN:     parseGrouping,
}

var infixParselets = map[token.Kind]infixParselet{
	token.PLUS:   parseBinaryOp,
	token.MINUS:  parseBinaryOp,
	token.STAR:   parseBinaryOp,
	token.WALRUS: parseAssign,
	token.LT:     parseComparison,
	token.LTE:    parseComparison,
	token.GT:     parseComparison,
	token.GTE:    parseComparison,
	token.EQ:     parseComparison,
}

func parseNumber(p *Parser, tok token.Token) (ast.Expr, error) {
	value, err := strconv.Atoi(tok.Lexeme)
	if err != nil {
		p.diags.Error(tok.Span, "Invalid integer literal '%s'", tok.Lexeme)
		return nil, errSync
	}
	return &ast.Number{Tok: tok, Value: value}, nil
}

func parseCharLiteral(p *Parser, tok token.Token) (ast.Expr, error) {
	var value rune
	if len(tok.Lexeme) > 0 {
		value = rune(tok.Lexeme[0])
	}
	return &ast.CharLiteral{Tok: tok, Value: value}, nil
}

func parseIdentifier(p *Parser, tok token.Token) (ast.Expr, error) {
	return &ast.Identifier{Tok: tok}, nil
}

// parseGrouping handles `( expr )`. LPAREN is never registered as an
// infix parselet: Cat has no call syntax, so a parenthesis can only
// ever introduce a grouped sub-expression.
func parseGrouping(p *Parser, tok token.Token) (ast.Expr, error) {
	inner, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if err := p.consume(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.Grouping{Tok: tok, Inner: inner}, nil
}

func parseBinaryOp(p *Parser, tok token.Token, lhs ast.Expr) (ast.Expr, error) {
	rhs, err := p.parseExpr(precedenceOf(tok.Kind))
	if err != nil {
		return nil, err
	}
	bin := ast.BinaryExpr{Tok: tok, Lhs: lhs, Rhs: rhs}
	switch tok.Kind {
	case token.PLUS:
		return &ast.AddExpr{BinaryExpr: bin}, nil
	case token.MINUS:
		return &ast.SubExpr{BinaryExpr: bin}, nil
	case token.STAR:
		return &ast.MultExpr{BinaryExpr: bin}, nil
	default:
		panic("parser: unhandled binary operator token kind")
	}
}

func parseAssign(p *Parser, tok token.Token, lhs ast.Expr) (ast.Expr, error) {
	if _, ok := lhs.(*ast.Identifier); !ok {
		p.diags.Error(lhs.Span(), "Left side of assignment must be a variable.")
		return nil, errSync
	}
	rhs, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{BinaryExpr: ast.BinaryExpr{Tok: tok, Lhs: lhs, Rhs: rhs}}, nil
}

var compareOps = map[token.Kind]ast.CompareOp{
	token.LT:  ast.CmpLT,
	token.LTE: ast.CmpLTE,
	token.GT:  ast.CmpGT,
	token.GTE: ast.CmpGTE,
	token.EQ:  ast.CmpEQ,
}

func parseComparison(p *Parser, tok token.Token, lhs ast.Expr) (ast.Expr, error) {
	rhs, err := p.parseExpr(precedenceOf(tok.Kind))
	if err != nil {
		return nil, err
	}
	return &ast.ComparisonExpr{
		BinaryExpr: ast.BinaryExpr{Tok: tok, Lhs: lhs, Rhs: rhs},
		Op:         compareOps[tok.Kind],
	}, nil
}
