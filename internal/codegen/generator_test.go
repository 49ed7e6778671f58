package codegen

import (
	"strings"
	"testing"

	"github.com/aloussase/cat/internal/diag"
	"github.com/aloussase/cat/internal/lexer"
	"github.com/aloussase/cat/internal/parser"
)

func generate(t *testing.T, source string) (out string, diags *diag.Sink, gen *Generator) {
	t.Helper()
	diags = diag.NewSink()
	tokens := lexer.Lex(source, diags)
	program := parser.New(tokens, diags).Parse()
	gen = New(diags)
	out = gen.Generate(program)
	return out, diags, gen
}

func TestGenerateNumberLiteral(t *testing.T) {
	out, diags, gen := generate(t, "5.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("li", "$t0", "5")) {
		t.Errorf("output missing li $t0, 5:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateAddSubImmediateFolding(t *testing.T) {
	// (1+2)-3 folds both additions/subtractions into immediate forms
	// since each right-hand side is a bare number literal.
	out, diags, gen := generate(t, "(1 + 2) - 3.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("li", "$t0", "1")) {
		t.Errorf("missing li $t0, 1:\n%s", out)
	}
	if !strings.Contains(out, instr("addi", "$t0", "$t0", "2")) {
		t.Errorf("missing addi $t0, $t0, 2:\n%s", out)
	}
	if !strings.Contains(out, instr("addi", "$t0", "$t0", "-3")) {
		t.Errorf("missing addi $t0, $t0, -3:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateLetStmtStoresAtOffsetZero(t *testing.T) {
	out, diags, gen := generate(t, "let x := 10.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("addi", spReg, spReg, "-4")) {
		t.Errorf("missing stack-pointer adjustment:\n%s", out)
	}
	if !strings.Contains(out, instr("sw", "$t0", "0($sp)")) {
		t.Errorf("missing sw $t0, 0($sp):\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateLetThenReadBack(t *testing.T) {
	out, diags, gen := generate(t, "let x := 10.\nx + 1.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("lw", "$t0", "0($sp)")) {
		t.Errorf("missing lw $t0, 0($sp):\n%s", out)
	}
	if !strings.Contains(out, instr("addi", "$t0", "$t0", "1")) {
		t.Errorf("missing addi $t0, $t0, 1:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateIfStmtNoElseSingleExitLabel(t *testing.T) {
	out, diags, gen := generate(t, "let x := 1.\nif x then let y := 2. end.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if n := strings.Count(out, "EXIT0:"); n != 1 {
		t.Errorf("EXIT0 label defined %d times, want exactly 1:\n%s", n, out)
	}
	if strings.Contains(out, "ELSE0:") {
		t.Errorf("unexpected ELSE0 label for an if with no else branch:\n%s", out)
	}
	if !strings.Contains(out, instr("beq", "$t0", zeroReg, "EXIT0")) {
		t.Errorf("missing branch straight to EXIT0:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateIfStmtWithElseHasElseAndExitLabels(t *testing.T) {
	out, diags, gen := generate(t, "if 1 then print 1. else print 2. end.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, "ELSE0:") {
		t.Errorf("missing ELSE0 label:\n%s", out)
	}
	if !strings.Contains(out, "EXIT0:") {
		t.Errorf("missing EXIT0 label:\n%s", out)
	}
	if !strings.Contains(out, instr("beq", "$t0", zeroReg, "ELSE0")) {
		t.Errorf("missing branch to ELSE0:\n%s", out)
	}
	if !strings.Contains(out, instr("j", "EXIT0")) {
		t.Errorf("missing jump over else to EXIT0:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateIfStmtRedeclaresNameInSameScopePopsBothSlots(t *testing.T) {
	out, diags, gen := generate(t, "if 1 then let y := 1. let y := 2. end.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}

	pushes := strings.Count(out, instr("addi", spReg, spReg, "-4"))
	if pushes != 2 {
		t.Errorf("got %d stack-slot pushes, want 2 (one per let, even though both bind the name y)", pushes)
	}

	pops := strings.Count(out, instr("addi", spReg, spReg, "4"))
	if pops != 2 {
		t.Errorf("got %d stack-slot pops on scope exit, want 2: popScope must retire every slot pushed in the branch, not just the distinct names bound", pops)
	}

	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateUnboundVariableReportsHint(t *testing.T) {
	_, diags, gen := generate(t, "y + 1.")
	if !diags.HasErrors() {
		t.Fatal("expected a diagnostic for an unbound variable")
	}

	var sawError, sawHint bool
	for _, d := range diags.Diagnostics() {
		if d.Severity == diag.Error && strings.Contains(d.Message, "Unbound variable y") {
			sawError = true
		}
		if d.Severity == diag.Hint && strings.Contains(d.Message, "declare the variable") {
			sawHint = true
		}
	}
	if !sawError {
		t.Errorf("missing 'Unbound variable y' error, got: %v", diags.Diagnostics())
	}
	if !sawHint {
		t.Errorf("missing declare-the-variable hint, got: %v", diags.Diagnostics())
	}
	if !gen.AllRegistersReleased() {
		t.Error("an aborted statement must still release any registers it had allocated")
	}
}

func TestGenerateMultUsesMultAndMflo(t *testing.T) {
	out, diags, gen := generate(t, "2 * 3.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("mult", "$t0", "$t1")) {
		t.Errorf("missing mult $t0, $t1:\n%s", out)
	}
	if !strings.Contains(out, instr("mflo", "$t0")) {
		t.Errorf("missing mflo $t0:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateComparisonOperators(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		wantSubs []string
	}{
		{"lt", "1 < 2.", []string{instr("slt", "$t0", "$t0", "$t1")}},
		{"gt", "1 > 2.", []string{instr("slt", "$t0", "$t1", "$t0")}},
		{"lte", "1 <= 2.", []string{instr("slt", "$t0", "$t1", "$t0"), instr("xori", "$t0", "$t0", "1")}},
		{"gte", "1 >= 2.", []string{instr("slt", "$t0", "$t0", "$t1"), instr("xori", "$t0", "$t0", "1")}},
		{"eq", "1 = 2.", []string{
			instr("sub", "$t0", "$t0", "$t1"),
			instr("sltu", "$t0", zeroReg, "$t0"),
			instr("xori", "$t0", "$t0", "1"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, diags, gen := generate(t, tt.source)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
			}
			for _, want := range tt.wantSubs {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			if !gen.AllRegistersReleased() {
				t.Error("expected all registers released after Generate")
			}
		})
	}
}

func TestGeneratePrintCharUsesSyscall11(t *testing.T) {
	out, diags, gen := generate(t, `print #a.`)
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("li", "$v0", "11")) {
		t.Errorf("missing li $v0, 11 for a char print:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGeneratePrintIntUsesSyscall1(t *testing.T) {
	out, diags, gen := generate(t, "print 5.")
	if diags.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", diags.Diagnostics())
	}
	if !strings.Contains(out, instr("li", "$v0", "1")) {
		t.Errorf("missing li $v0, 1 for an int print:\n%s", out)
	}
	if !gen.AllRegistersReleased() {
		t.Error("expected all registers released after Generate")
	}
}

func TestGenerateAlwaysEmitsPreambleAndEpilogue(t *testing.T) {
	out, _, _ := generate(t, "5.")
	if !strings.HasPrefix(out, ".text\n.globl main\nmain:\n") {
		t.Errorf("output missing expected preamble:\n%s", out)
	}
	if !strings.HasSuffix(out, instr("jr", "$ra")+"\n") {
		t.Errorf("output missing jr $ra epilogue:\n%s", out)
	}
}

func TestGenerateRegisterExhaustionIsFatalButEpilogueStillEmitted(t *testing.T) {
	diags := diag.NewSink()
	gen := New(diags)

	// Manually exhaust the pool the way a pathological deeply-nested
	// expression would, check that one more allocation panics, then
	// run Generate over a single statement to exercise its
	// panic/recover path without needing to construct an 18-deep
	// expression from source.
	for i := 0; i < int(registerCount); i++ {
		gen.allocRegister()
	}

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected allocRegister to panic once the pool is exhausted")
			}
		}()
		gen.allocRegister()
	}()

	if !diags.HasErrors() {
		t.Error("expected a 'Register pool exhausted' diagnostic")
	}

	out := gen.Generate(parser.New(lexer.Lex("5.", diags), diags).Parse())
	if !strings.HasSuffix(out, instr("jr", "$ra")+"\n") {
		t.Errorf("output missing jr $ra epilogue after register exhaustion:\n%s", out)
	}
}
