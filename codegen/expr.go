package codegen

import (
	"strconv"

	"github.com/BJZR/B-lang/ast"
)

// builtinNames are handled specially before the generic call path, per
// spec.md §4.4.
var builtinNames = map[string]bool{
	"exit":       true,
	"print":      true,
	"input":      true,
	"str_to_int": true,
}

// emitExpr lowers expr so that it leaves exactly one 8-byte value on the
// stack, per spec.md §4.4's stack-machine invariant.
func (g *Generator) emitExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		g.line("    mov rax, %d", e.Value)
		g.line("    push rax")
	case *ast.FloatLiteral:
		// Float codegen is a documented non-goal (spec.md §1): rejected
		// as a SemanticError, continuing per spec.md §7 with a zero
		// value pushed so the stack-machine invariant still holds.
		g.warn("codegen: float literals are not supported (%g)", e.Value)
		g.line("    mov rax, 0")
		g.line("    push rax")
	case *ast.StringLiteral:
		label := g.internString(e.Value)
		g.line("    lea rax, [%s]", label)
		g.line("    push rax")
	case *ast.Identifier:
		g.emitIdentifierLoad(e.Name)
	case *ast.ArrayAccess:
		g.emitArrayLoad(e)
	case *ast.UnaryExpr:
		g.emitUnary(e)
	case *ast.BinaryExpr:
		g.emitBinary(e)
	case *ast.CallExpr:
		g.emitCall(e)
	default:
		g.warn("codegen: unhandled expression kind %T", expr)
		g.line("    mov rax, 0")
		g.line("    push rax")
	}
}

func (g *Generator) emitIdentifierLoad(name string) {
	sym := g.lookupOrError(name)
	if sym.Type == "string" {
		g.line("    lea rax, [rbp-%d]", sym.Offset)
	} else {
		g.line("    mov rax, [rbp-%d]", sym.Offset)
	}
	g.line("    push rax")
}

func (g *Generator) emitArrayLoad(a *ast.ArrayAccess) {
	sym := g.lookupOrError(a.Name)
	g.emitExpr(a.Index)
	g.line("    pop rax")
	g.line("    lea rbx, [rbp-%d]", sym.Offset)
	g.line("    imul rax, rax, 8")
	g.line("    add rbx, rax")
	g.line("    mov rax, [rbx]")
	g.line("    push rax")
}

func (g *Generator) emitUnary(u *ast.UnaryExpr) {
	g.emitExpr(u.X)
	g.line("    pop rax")
	switch u.Op {
	case "!":
		g.line("    test rax, rax")
		g.line("    setz al")
		g.line("    movzx rax, al")
	case "-":
		g.line("    neg rax")
	default:
		g.warn("codegen: unknown unary operator %q", u.Op)
	}
	g.line("    push rax")
}

// emitBinary lowers a BinaryExpr by evaluating the right operand, then
// the left, then popping left into rax and right into rbx -- the
// right-then-left order spec.md §4.4 requires so that `a - b` computes
// rax(=a) - rbx(=b).
func (g *Generator) emitBinary(b *ast.BinaryExpr) {
	g.emitExpr(b.RHS)
	g.emitExpr(b.LHS)
	g.line("    pop rax")
	g.line("    pop rbx")

	switch b.Op {
	case "+":
		g.line("    add rax, rbx")
	case "-":
		g.line("    sub rax, rbx")
	case "*":
		g.line("    imul rax, rbx")
	case "/":
		// Sign-extends via xor rdx,rdx rather than cqo: negative
		// dividends are miscompiled. Preserved verbatim per spec.md §9.
		g.line("    xor rdx, rdx")
		g.line("    idiv rbx")
	case "%":
		g.line("    xor rdx, rdx")
		g.line("    idiv rbx")
		g.line("    mov rax, rdx")
	case "==":
		g.line("    cmp rax, rbx")
		g.line("    sete al")
		g.line("    movzx rax, al")
	case "!=":
		g.line("    cmp rax, rbx")
		g.line("    setne al")
		g.line("    movzx rax, al")
	case "<":
		g.line("    cmp rax, rbx")
		g.line("    setl al")
		g.line("    movzx rax, al")
	case ">":
		g.line("    cmp rax, rbx")
		g.line("    setg al")
		g.line("    movzx rax, al")
	case "<=":
		g.line("    cmp rax, rbx")
		g.line("    setle al")
		g.line("    movzx rax, al")
	case ">=":
		g.line("    cmp rax, rbx")
		g.line("    setge al")
		g.line("    movzx rax, al")
	case "&&":
		// Bitwise, non-short-circuiting: both operands are always
		// evaluated. Preserved verbatim per spec.md §9.
		g.line("    and rax, rbx")
	case "||":
		g.line("    or rax, rbx")
	default:
		g.warn("codegen: unknown binary operator %q", b.Op)
	}
	g.line("    push rax")
}

func (g *Generator) internString(value string) string {
	label := g.newStringLabel()
	g.strings = append(g.strings, stringEntry{Label: label, Value: value})
	return label
}

func (g *Generator) newStringLabel() string {
	return "S" + strconv.Itoa(len(g.strings))
}
