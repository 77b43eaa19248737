package codegen

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/BJZR/B-lang/lexer"
	"github.com/BJZR/B-lang/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestMain(m *testing.M) {
	code := m.Run()
	snaps.Clean(m)
	os.Exit(code)
}

func genSource(t *testing.T, src string) *Result {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	g := New()
	res, err := g.Generate(prog)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	return res
}

func readFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("../testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

func TestFixturesGenerateStableAssembly(t *testing.T) {
	fixtures := []string{"arith.b", "loop.b", "array.b", "call.b", "ifelse.b", "string.b"}
	for _, name := range fixtures {
		t.Run(name, func(t *testing.T) {
			res := genSource(t, readFixture(t, name))
			snaps.MatchSnapshot(t, res.Assembly)
		})
	}
}

func TestMissingMainIsFatal(t *testing.T) {
	p := parser.New(lexer.New(readFixture(t, "no_main.b")))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	g := New()
	if _, err := g.Generate(prog); err == nil {
		t.Fatal("expected Generate() to fail when no function is named main")
	}
}

func TestBreakOutsideLoopWarnsButContinues(t *testing.T) {
	p := parser.New(lexer.New(readFixture(t, "break_outside_loop.b")))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	g := New()
	res, err := g.Generate(prog)
	if err != nil {
		t.Fatalf("Generate() should not be fatal for break outside a loop: %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a semantic warning for break outside a loop")
	}
}

var prologueRE = regexp.MustCompile(`(?m)^\w+:\n\s+push rbp\n\s+mov rbp, rsp\n\s+sub rsp, 256\n`)
var epilogueCount = regexp.MustCompile(`add rsp, 256\n\s+pop rbp\n\s+ret`)

func TestEveryFunctionHasMatchedPrologueAndEpilogue(t *testing.T) {
	res := genSource(t, readFixture(t, "call.b"))
	if n := strings.Count(res.Assembly, "push rbp"); n == 0 {
		t.Fatal("no function prologues found")
	}
	pushes := strings.Count(res.Assembly, "push rbp\n")
	pops := strings.Count(res.Assembly, "pop rbp\n")
	if pushes != pops {
		t.Fatalf("push rbp count = %d, pop rbp count = %d, want equal", pushes, pops)
	}
	subs := strings.Count(res.Assembly, "sub rsp, 256")
	adds := strings.Count(res.Assembly, "add rsp, 256")
	if subs != adds {
		t.Fatalf("sub rsp, 256 count = %d, add rsp, 256 count = %d, want equal", subs, adds)
	}
}

func TestEveryLabelDefinedExactlyOnce(t *testing.T) {
	res := genSource(t, readFixture(t, "loop.b"))

	refRE := regexp.MustCompile(`\bj\w*\s+(\.L\d+)`)
	defRE := regexp.MustCompile(`(?m)^(\.L\d+):`)

	defs := map[string]int{}
	for _, m := range defRE.FindAllStringSubmatch(res.Assembly, -1) {
		defs[m[1]]++
	}
	for _, m := range refRE.FindAllStringSubmatch(res.Assembly, -1) {
		label := m[1]
		if defs[label] != 1 {
			t.Errorf("label %s referenced by a jump is defined %d times, want exactly 1", label, defs[label])
		}
	}
}

func TestStringLiteralsAppearExactlyOnceInData(t *testing.T) {
	res := genSource(t, readFixture(t, "string.b"))
	if strings.Count(res.Assembly, "S0:") != 1 {
		t.Fatalf("expected exactly one S0: label in .data, got %d", strings.Count(res.Assembly, "S0:"))
	}
}

func TestSubtractionPopsLeftOperandFirst(t *testing.T) {
	res := genSource(t, `func main() { int a = 1 int b = 2 print(a - b) print("\n") return 0 }`)

	idx := strings.Index(res.Assembly, "sub rax, rbx")
	if idx < 0 {
		t.Fatal("expected a 'sub rax, rbx' instruction lowering 'a - b'")
	}
	before := res.Assembly[:idx]
	popIdx := strings.LastIndex(before, "pop rax")
	popIdx2 := strings.LastIndex(before, "pop rbx")
	if popIdx < 0 || popIdx2 < 0 || popIdx2 < popIdx {
		t.Fatal("expected 'pop rax' (left operand) to precede 'pop rbx' (right operand) before the sub")
	}
}

func TestFloatLiteralWarnsButContinues(t *testing.T) {
	p := parser.New(lexer.New(`func main() { print(1.5) return 0 }`))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	g := New()
	res, err := g.Generate(prog)
	if err != nil {
		t.Fatalf("Generate() should not be fatal for a float literal: %v", err)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("expected a semantic warning for a float literal")
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w.Message, "float") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a warning mentioning float literals, got %v", res.Warnings)
	}
}

func TestArrayStoreEvaluatesRHSBeforeIndex(t *testing.T) {
	res := genSource(t, `func main() { int a[2] int i = 0 a[i] = 5 return 0 }`)
	if !strings.Contains(res.Assembly, "mov rbx, rax") && !strings.Contains(res.Assembly, "pop rbx") {
		t.Fatal("expected the rhs value to be stashed in rbx before the index is evaluated")
	}
	// a occupies [rbp-16], i sits at [rbp-24]: the rhs literal 5 must be
	// loaded before the index variable i is.
	rhsIdx := strings.Index(res.Assembly, "mov rax, 5")
	indexIdx := strings.Index(res.Assembly, "mov rax, [rbp-24]")
	if rhsIdx < 0 || indexIdx < 0 || rhsIdx > indexIdx {
		t.Fatalf("expected the rhs load (at %d) to precede the index load (at %d)", rhsIdx, indexIdx)
	}
}
