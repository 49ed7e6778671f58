package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aloussase/cat/internal/ast"
	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/driver"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse Cat source and dump its AST",
	Long: `Parse Cat source code and print a tree dump of the resulting
statements. If no file is given, reads from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline source instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	input, filename, err := resolveInput(parseEval, args)
	if err != nil {
		return err
	}

	diags := diag.NewSink()
	program := driver.Parse(input, diags)

	if diags.HasErrors() {
		fmt.Print(diag.Render(input, filename, diags.Diagnostics(), true))
		return fmt.Errorf("parsing failed with %d diagnostic(s)", diags.Len())
	}

	for _, stmt := range program.Stmts {
		dumpStmt(stmt, 0)
	}
	return nil
}

func indent(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}

func dumpStmt(stmt ast.Stmt, depth int) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		fmt.Printf("%sLetStmt %s :=\n", indent(depth), s.Ident.Name())
		dumpExpr(s.Value, depth+1)
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt\n", indent(depth))
		fmt.Printf("%scondition:\n", indent(depth+1))
		dumpExpr(s.Condition, depth+2)
		fmt.Printf("%sthen:\n", indent(depth+1))
		for _, st := range s.ThenBranch {
			dumpStmt(st, depth+2)
		}
		if s.ElseBranch != nil {
			fmt.Printf("%selse:\n", indent(depth+1))
			for _, st := range s.ElseBranch {
				dumpStmt(st, depth+2)
			}
		}
	case *ast.PrintStmt:
		fmt.Printf("%sPrintStmt\n", indent(depth))
		for _, e := range s.Exprs {
			dumpExpr(e, depth+1)
		}
	case *ast.ExprStmt:
		fmt.Printf("%sExprStmt\n", indent(depth))
		dumpExpr(s.Expr, depth+1)
	}
}

func dumpExpr(expr ast.Expr, depth int) {
	switch e := expr.(type) {
	case *ast.Number:
		fmt.Printf("%sNumber %d\n", indent(depth), e.Value)
	case *ast.CharLiteral:
		fmt.Printf("%sCharLiteral %q\n", indent(depth), e.Value)
	case *ast.Identifier:
		fmt.Printf("%sIdentifier %s\n", indent(depth), e.Name())
	case *ast.Grouping:
		fmt.Printf("%sGrouping\n", indent(depth))
		dumpExpr(e.Inner, depth+1)
	case *ast.AddExpr:
		dumpBinary("AddExpr", "+", e.BinaryExpr, depth)
	case *ast.SubExpr:
		dumpBinary("SubExpr", "-", e.BinaryExpr, depth)
	case *ast.MultExpr:
		dumpBinary("MultExpr", "*", e.BinaryExpr, depth)
	case *ast.AssignExpr:
		dumpBinary("AssignExpr", ":=", e.BinaryExpr, depth)
	case *ast.ComparisonExpr:
		dumpBinary("ComparisonExpr", e.Tok.Lexeme, e.BinaryExpr, depth)
	}
}

func dumpBinary(name, op string, b ast.BinaryExpr, depth int) {
	fmt.Printf("%s%s (%s)\n", indent(depth), name, op)
	dumpExpr(b.Lhs, depth+1)
	dumpExpr(b.Rhs, depth+1)
}
