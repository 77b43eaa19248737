package codegen

import "github.com/BJZR/B-lang/ast"

func (g *Generator) emitCall(c *ast.CallExpr) {
	if builtinNames[c.Callee] {
		g.emitBuiltinCall(c)
		return
	}
	g.emitUserCall(c)
}

func (g *Generator) emitBuiltinCall(c *ast.CallExpr) {
	switch c.Callee {
	case "exit":
		if len(c.Args) > 0 {
			g.emitExpr(c.Args[0])
			g.line("    pop rdi")
		} else {
			g.line("    mov rdi, 0")
		}
		g.line("    mov rax, 60")
		g.line("    syscall")
		// Unreachable after the syscall, but every expression must leave
		// one value on the stack per spec.md §4.4's invariant.
		g.line("    push rax")
	case "print":
		for _, arg := range c.Args {
			if g.isStringTyped(arg) {
				g.emitExpr(arg)
				g.line("    pop rdi")
				g.line("    call print_str_no_nl")
			} else {
				g.emitExpr(arg)
				g.line("    pop rdi")
				g.line("    call print_no_nl")
			}
		}
		// print emits no separator and no trailing newline, per spec.md
		// §4.4/§9; callers pass "\n" explicitly.
		g.line("    mov rax, 0")
		g.line("    push rax")
	case "input":
		if len(c.Args) > 0 {
			g.emitExpr(c.Args[0])
			g.line("    pop rdi")
			g.line("    call print_str_no_nl")
		}
		g.line("    call input")
		g.line("    push rax")
	case "str_to_int":
		if len(c.Args) > 0 {
			g.emitExpr(c.Args[0])
			g.line("    pop rdi")
		} else {
			g.line("    mov rdi, 0")
		}
		g.line("    call str_to_int")
		g.line("    push rax")
	default:
		g.warn("codegen: unknown builtin %q", c.Callee)
		g.line("    mov rax, 0")
		g.line("    push rax")
	}
}

// emitUserCall evaluates up to the first six arguments, assigns them to
// the System V integer/pointer registers, calls the named function, and
// pushes its rax return value.
func (g *Generator) emitUserCall(c *ast.CallExpr) {
	n := len(c.Args)
	if n > len(paramRegs) {
		n = len(paramRegs)
	}
	for _, arg := range c.Args[:n] {
		g.emitExpr(arg)
	}
	// Arguments were pushed left to right, so the rightmost argument is
	// on top; pop in reverse to land each value in its matching register.
	for i := n - 1; i >= 0; i-- {
		g.line("    pop %s", paramRegs[i])
	}
	g.line("    call %s", c.Callee)
	g.line("    push rax")
}

// isStringTyped reports whether arg should be printed via
// print_str_no_nl: a string literal, or an Identifier/ArrayAccess whose
// declared type is "string". Anything else (including an undeclared
// name, which lookupOrError already warned about) prints as an integer.
func (g *Generator) isStringTyped(arg ast.Expr) bool {
	switch e := arg.(type) {
	case *ast.StringLiteral:
		return true
	case *ast.Identifier:
		if sym := g.syms.lookup(e.Name); sym != nil {
			return sym.Type == "string"
		}
	case *ast.ArrayAccess:
		if sym := g.syms.lookup(e.Name); sym != nil {
			return sym.Type == "string"
		}
	}
	return false
}
