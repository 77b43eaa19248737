// Package codegen walks a resolved *ast.Program and emits x86-64 NASM
// assembly targeting the Linux _start ABI, following the stack-machine
// expression lowering, flat per-function symbol table and label-based
// control flow scheme specified in spec.md §4.4.
package codegen

import (
	"fmt"
	"strings"

	"github.com/BJZR/B-lang/ast"
	"github.com/BJZR/B-lang/runtime"
)

// scratchFrameBytes is the fixed per-function scratch area sub'd from rsp
// on entry and add'd back on every return path, independent of how many
// local bytes the symbol table actually uses. See spec.md §4.4.
const scratchFrameBytes = 256

// paramRegs is the System V AMD64 integer/pointer argument register
// order; only the first len(paramRegs) parameters of a function (or
// arguments of a call) are passed in registers. Anything beyond that is
// outside what spec.md documents and is simply not wired up.
var paramRegs = []string{"rdi", "rsi", "rdx", "rcx", "r8", "r9"}

// SemanticError is a codegen-time diagnostic from spec.md §7's second
// error kind: unknown variable, break/continue outside a loop, a missing
// `main`, or a `float` literal (float codegen is a documented non-goal,
// SPEC_FULL.md §7). A non-literal array size never reaches codegen: the
// parser accepts only a NUMBER token there. Only a missing `main` halts
// generation; the rest are collected in Result.Warnings and generation
// continues, producing output an assembler would reject downstream.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string { return e.Message }

// Result is the output of a successful (or partially successful, per
// spec.md §7) code generation pass.
type Result struct {
	Assembly string
	Warnings []*SemanticError
}

// stringEntry is one lowered string literal, recorded in the order it was
// encountered so that `.data` labels are numbered deterministically, per
// spec.md §6.
type stringEntry struct {
	Label string
	Value string
}

// loopLabels is one entry of the bounded break/continue label stack.
type loopLabels struct {
	Start string
	End   string
}

// Generator holds all of the process-wide state spec.md §2 assigns to the
// code generator: the output buffer, a monotonic label counter, the
// string-literal pool, and (per function, reset between functions) the
// symbol table and loop-label stack.
type Generator struct {
	out         strings.Builder
	nextLabel   int
	strings     []stringEntry
	currentFunc string
	syms        symbolTable
	loopStack   []loopLabels
	warnings    []*SemanticError
	epilogue    string
}

// New creates an empty Generator.
func New() *Generator {
	return &Generator{}
}

// Generate emits a full NASM translation unit for prog: the runtime
// prelude, every user function in source order, and a trailing _start
// that calls main and exits with its return value. Returns an error only
// for the one fatal codegen-time condition spec.md §7 names: a missing
// `main`.
func (g *Generator) Generate(prog *ast.Program) (*Result, error) {
	fns := functionsOf(prog)

	if !hasMain(fns) {
		return nil, &SemanticError{Message: "no function named 'main' defined"}
	}

	g.out.WriteString("; generated by bc -- do not edit\n")
	g.out.WriteString("default rel\n")
	g.out.WriteString("global _start\n\n")
	g.out.WriteString("section .text\n\n")
	g.out.WriteString(runtime.Prelude())
	g.out.WriteString("\n")

	for _, fn := range fns {
		g.emitFunction(fn)
	}

	g.emitStart()

	g.out.WriteString("\nsection .data\n")
	g.out.WriteString(runtime.DataSection)
	for _, s := range g.strings {
		g.out.WriteString(s.Label)
		g.out.WriteString(": db ")
		g.out.WriteString(nasmStringBytes(s.Value))
		g.out.WriteString("\n")
	}

	return &Result{Assembly: g.out.String(), Warnings: g.warnings}, nil
}

func functionsOf(prog *ast.Program) []*ast.FunctionDecl {
	var fns []*ast.FunctionDecl
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			fns = append(fns, fn)
		}
		// *ast.ImportStmt nodes surviving to this point are ignored, per
		// spec.md §3's invariant.
	}
	return fns
}

func hasMain(fns []*ast.FunctionDecl) bool {
	for _, fn := range fns {
		if fn.Name == "main" {
			return true
		}
	}
	return false
}

func (g *Generator) warn(format string, args ...any) {
	g.warnings = append(g.warnings, &SemanticError{Message: fmt.Sprintf(format, args...)})
}

func (g *Generator) line(format string, args ...any) {
	fmt.Fprintf(&g.out, format+"\n", args...)
}

func (g *Generator) label(name string) {
	g.out.WriteString(name)
	g.out.WriteString(":\n")
}

func (g *Generator) newLabel() string {
	l := fmt.Sprintf(".L%d", g.nextLabel)
	g.nextLabel++
	return l
}

// emitFunction lowers one function: prologue, parameter spilling, the
// body (which also incrementally grows the symbol table as VarDecl /
// ArrayDecl statements are reached), and a single shared epilogue that
// every `return` jumps to.
func (g *Generator) emitFunction(fn *ast.FunctionDecl) {
	g.currentFunc = fn.Name
	g.syms = symbolTable{}
	g.loopStack = nil

	g.line("%s:", fn.Name)
	g.line("    push rbp")
	g.line("    mov rbp, rsp")
	g.line("    sub rsp, %d", scratchFrameBytes)

	g.declareParams(fn.Params)

	epilogue := g.newLabel()
	g.epilogue = epilogue

	for _, stmt := range fn.Body.Stmts {
		g.emitStmt(stmt)
	}

	g.label(epilogue)
	g.line("    add rsp, %d", scratchFrameBytes)
	g.line("    pop rbp")
	g.line("    ret")
	g.out.WriteString("\n")
}

// epilogue is the label the function currently being emitted jumps to on
// every `return`; kept as generator state because emitStmt needs it and
// threading it through every recursive call would be noise.
func (g *Generator) currentEpilogue() string { return g.epilogue }

// declareParams assigns a frame slot to every parameter and spills the
// first len(paramRegs) incoming registers into theirs. string
// parameters are copied byte-for-byte into their own 256-byte buffer via
// strcpy_internal, exactly like a local `string s = <expr>` initializer,
// so that later `lea rax, [rbp-off]` reads (spec.md's "yields a pointer
// to its in-frame buffer" rule) see real bytes rather than a pointer to a
// pointer. Parameters beyond the six-register window are left
// unpopulated: spec.md's calling convention section documents only the
// register-passed case.
func (g *Generator) declareParams(params []*ast.VarDecl) {
	for i, p := range params {
		if i >= MaxVarsPerFunction {
			break
		}
		typ := p.Type.Name
		sym := g.syms.declareScalar(p.Name, typ)
		if i >= len(paramRegs) {
			continue
		}
		reg := paramRegs[i]
		if typ == "string" {
			g.line("    mov rsi, %s", reg)
			g.line("    lea rdi, [rbp-%d]", sym.Offset)
			g.line("    call strcpy_internal")
		} else {
			g.line("    mov [rbp-%d], %s", sym.Offset, reg)
		}
	}
}
