package codegen

import "github.com/BJZR/B-lang/ast"

func (g *Generator) emitStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(s)
	case *ast.ArrayDecl:
		g.emitArrayDecl(s)
	case *ast.Assignment:
		g.emitAssignment(s)
	case *ast.IncDecStmt:
		g.emitIncDec(s)
	case *ast.ReturnStmt:
		g.emitReturn(s)
	case *ast.IfStmt:
		g.emitIf(s)
	case *ast.LoopStmt:
		g.emitLoop(s)
	case *ast.BreakStmt:
		g.emitBreak()
	case *ast.ContinueStmt:
		g.emitContinue()
	case *ast.ExprStmt:
		g.emitExpr(s.X)
		g.line("    add rsp, 8")
	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			g.emitStmt(inner)
		}
	default:
		g.warn("codegen: unhandled statement kind %T", stmt)
	}
}

func (g *Generator) checkVarLimit(name string) {
	if g.syms.count() >= MaxVarsPerFunction {
		g.warn("function %s: too many variables, cannot declare %q (limit %d)", g.currentFunc, name, MaxVarsPerFunction)
	}
}

func (g *Generator) emitVarDecl(v *ast.VarDecl) {
	g.checkVarLimit(v.Name)
	typ := v.Type.Name
	sym := g.syms.declareScalar(v.Name, typ)
	if v.Init == nil {
		return
	}
	g.storeInto(sym, v.Init)
}

func (g *Generator) emitArrayDecl(a *ast.ArrayDecl) {
	g.checkVarLimit(a.Name)
	// The parser only ever produces a literal NumberLiteral for an array
	// size (grammar requires the NUMBER token), so the "array size not a
	// literal" semantic error from spec.md §7 is structurally
	// unreachable with this AST -- Size is typed *ast.NumberLiteral, not
	// a general Expr.
	g.syms.declareArray(a.Name, a.Type.Name, int(a.Size.Value))
}

// storeInto lowers `sym = rhs`, choosing the scalar-mov path or the
// string strcpy_internal path based on sym's declared type. Used by both
// VarDecl initializers and plain Assignment.
func (g *Generator) storeInto(sym Symbol, rhs ast.Expr) {
	if sym.Type == "string" {
		g.emitExpr(rhs)
		g.line("    pop rsi")
		g.line("    lea rdi, [rbp-%d]", sym.Offset)
		g.line("    call strcpy_internal")
		return
	}
	g.emitExpr(rhs)
	g.line("    pop rax")
	g.line("    mov [rbp-%d], rax", sym.Offset)
}

func (g *Generator) emitAssignment(a *ast.Assignment) {
	sym := g.lookupOrError(a.Name)

	if a.Index == nil {
		g.storeInto(sym, a.RHS)
		return
	}

	// Array store: evaluate rhs first (stashed, popped into rbx), then
	// the index (popped into rax). This order is material per spec.md
	// §4.4 and is pinned down by a codegen test.
	g.emitExpr(a.RHS)
	g.emitExpr(a.Index)
	g.line("    pop rax")
	g.line("    pop rbx")
	g.line("    lea rcx, [rbp-%d]", sym.Offset)
	g.line("    imul rax, rax, 8")
	g.line("    add rcx, rax")
	g.line("    mov [rcx], rbx")
}

func (g *Generator) emitIncDec(s *ast.IncDecStmt) {
	sym := g.lookupOrError(s.Name)
	g.line("    mov rax, [rbp-%d]", sym.Offset)
	if s.Op == "++" {
		g.line("    add rax, 1")
	} else {
		g.line("    sub rax, 1")
	}
	g.line("    mov [rbp-%d], rax", sym.Offset)
}

func (g *Generator) emitReturn(r *ast.ReturnStmt) {
	if r.Value != nil {
		g.emitExpr(r.Value)
		g.line("    pop rax")
	} else {
		g.line("    mov rax, 0")
	}
	g.line("    jmp %s", g.currentEpilogue())
}

func (g *Generator) emitIf(s *ast.IfStmt) {
	elseLabel := g.newLabel()
	endLabel := g.newLabel()

	g.emitExpr(s.Cond)
	g.line("    pop rax")
	g.line("    test rax, rax")
	g.line("    jz %s", elseLabel)

	for _, stmt := range s.Then.Stmts {
		g.emitStmt(stmt)
	}
	g.line("    jmp %s", endLabel)

	g.label(elseLabel)
	switch e := s.Else.(type) {
	case *ast.BlockStmt:
		for _, stmt := range e.Stmts {
			g.emitStmt(stmt)
		}
	case *ast.IfStmt:
		g.emitIf(e)
	}
	g.label(endLabel)
}

func (g *Generator) emitLoop(s *ast.LoopStmt) {
	startLabel := g.newLabel()
	endLabel := g.newLabel()

	if len(g.loopStack) >= MaxLoopDepth {
		g.warn("function %s: loop nesting exceeds limit of %d", g.currentFunc, MaxLoopDepth)
	} else {
		g.loopStack = append(g.loopStack, loopLabels{Start: startLabel, End: endLabel})
	}

	g.label(startLabel)
	g.emitExpr(s.Cond)
	g.line("    pop rax")
	g.line("    test rax, rax")
	g.line("    jz %s", endLabel)

	for _, stmt := range s.Body.Stmts {
		g.emitStmt(stmt)
	}
	g.line("    jmp %s", startLabel)
	g.label(endLabel)

	if len(g.loopStack) > 0 && g.loopStack[len(g.loopStack)-1].End == endLabel {
		g.loopStack = g.loopStack[:len(g.loopStack)-1]
	}
}

func (g *Generator) emitBreak() {
	if len(g.loopStack) == 0 {
		g.warn("function %s: 'break' outside any loop", g.currentFunc)
		return
	}
	top := g.loopStack[len(g.loopStack)-1]
	g.line("    jmp %s", top.End)
}

func (g *Generator) emitContinue() {
	if len(g.loopStack) == 0 {
		g.warn("function %s: 'continue' outside any loop", g.currentFunc)
		return
	}
	top := g.loopStack[len(g.loopStack)-1]
	g.line("    jmp %s", top.Start)
}

func (g *Generator) lookupOrError(name string) Symbol {
	if sym := g.syms.lookup(name); sym != nil {
		return *sym
	}
	g.warn("function %s: undeclared variable %q", g.currentFunc, name)
	return Symbol{Name: name, Offset: scratchFrameBytes, Type: "int"}
}
