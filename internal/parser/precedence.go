package parser

import "github.com/aloussase/cat/internal/token"

// Precedence levels for Cat's infix operators. NUMBER, IDENTIFIER and
// CHAR never appear as infix operators, so they need no entry: Go's
// zero value for an unlisted map key (0) gives them the lowest
// precedence.
//
// Comparison operators (LT, LTE, GT, GTE, EQ) share level 2 with
// PLUS/MINUS; see DESIGN.md's Open Question ledger for the reasoning.
var precedenceTable = map[token.Kind]int{
	token.WALRUS: 1,
	token.PLUS:   2,
	token.MINUS:  2,
	token.LT:     2,
	token.LTE:    2,
	token.GT:     2,
	token.GTE:    2,
	token.EQ:     2,
	token.STAR:   3,
	token.LPAREN: 8,
}

func precedenceOf(kind token.Kind) int {
	return precedenceTable[kind]
}
