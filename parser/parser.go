// Package parser implements a hand-rolled recursive-descent parser for B,
// with precedence climbing for expressions and statement/expression
// disambiguation via a single token of lookahead.
package parser

import (
	"fmt"
	"strconv"

	"github.com/BJZR/B-lang/ast"
	"github.com/BJZR/B-lang/lexer"
	"github.com/BJZR/B-lang/token"
)

// ParseError is a fatal lex/parse-stage error: an unexpected token, a
// missing expected token, or malformed import syntax. spec.md mandates no
// recovery — the first one aborts parsing.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// Parser consumes a token.Token stream from a *lexer.Lexer and builds an
// *ast.Program. It keeps exactly one token of lookahead, matching
// spec.md's "current token + peek_token" contract.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	errs []*ParseError
}

// New constructs a Parser over l and primes cur/peek.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.advance()
	p.advance()
	return p
}

// Errors returns the errors collected so far. Because spec.md mandates
// "first error is fatal, no recovery", ParseProgram always returns after
// appending the first one, so in practice this slice holds at most one
// entry, the same *ParseError that ParseProgram returns (which is what
// the CLI reports through cerrors).
func (p *Parser) Errors() []*ParseError {
	return p.errs
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) fail(format string, args ...any) {
	err := &ParseError{Line: p.cur.Line, Message: fmt.Sprintf(format, args...)}
	p.errs = append(p.errs, err)
	panic(err)
}

func (p *Parser) expect(t token.Type) token.Token {
	if p.cur.Type != t {
		p.fail("expected %s, got %s %q", t, p.cur.Type, p.cur.Lexeme)
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == token.NEWLINE {
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a *ast.Program. On the
// first fatal error it stops and returns the partial program along with
// the error recorded in Errors(); callers should check Errors() before
// trusting the result.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	prog = &ast.Program{}
	for p.cur.Type != token.EOF {
		if p.cur.Type == token.NEWLINE {
			p.advance()
			continue
		}
		switch p.cur.Type {
		case token.IMPORT:
			prog.Items = append(prog.Items, p.parseImport())
		case token.FUNC:
			prog.Items = append(prog.Items, p.parseFunction())
		default:
			p.fail("expected 'import' or 'func' at top level, got %s %q", p.cur.Type, p.cur.Lexeme)
		}
	}
	return prog, nil
}

func (p *Parser) parseImport() *ast.ImportStmt {
	tok := p.expect(token.IMPORT)
	pathTok := p.expect(token.STRING)
	return &ast.ImportStmt{Tok: tok, Path: pathTok.Lexeme}
}

func (p *Parser) parseFunction() *ast.FunctionDecl {
	tok := p.expect(token.FUNC)
	nameTok := p.expect(token.IDENT)

	p.expect(token.LPAREN)
	params := p.parseParams()
	p.expect(token.RPAREN)

	p.expect(token.LBRACE)
	body := p.parseBlock(ast.RoleBody, token.RBRACE)
	p.expect(token.RBRACE)

	return &ast.FunctionDecl{Tok: tok, Name: nameTok.Lexeme, Params: params, Body: body}
}

func (p *Parser) parseParams() []*ast.VarDecl {
	var params []*ast.VarDecl
	if p.cur.Type == token.RPAREN {
		return params
	}
	params = append(params, p.parseParamDecl())
	for p.cur.Type == token.COMMA {
		p.advance()
		params = append(params, p.parseParamDecl())
	}
	return params
}

func (p *Parser) parseParamDecl() *ast.VarDecl {
	typeTok := p.parseTypeName()
	nameTok := p.expect(token.IDENT)
	return &ast.VarDecl{
		Tok:  nameTok,
		Name: nameTok.Lexeme,
		Type: &ast.Identifier{Tok: typeTok, Name: typeTok.Lexeme},
	}
}

func (p *Parser) parseTypeName() token.Token {
	switch p.cur.Type {
	case token.INT, token.FLOATKW, token.BOOL, token.STRINGKW:
		tok := p.cur
		p.advance()
		return tok
	default:
		p.fail("expected a type name, got %s %q", p.cur.Type, p.cur.Lexeme)
		panic("unreachable")
	}
}

// parseBlock parses statements until it sees end (a closing delimiter the
// caller will consume) or EOF.
func (p *Parser) parseBlock(role ast.BlockRole, end token.Type) *ast.BlockStmt {
	block := &ast.BlockStmt{Tok: p.cur, Role: role}
	for p.cur.Type != end && p.cur.Type != token.EOF {
		if p.cur.Type == token.NEWLINE {
			p.advance()
			continue
		}
		block.Stmts = append(block.Stmts, p.parseStatement())
	}
	return block
}

func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.INT, token.FLOATKW, token.BOOL, token.STRINGKW:
		return p.parseVarOrArrayDecl()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.LOOP:
		return p.parseLoop()
	case token.BREAK:
		tok := p.cur
		p.advance()
		return &ast.BreakStmt{Tok: tok}
	case token.CONTINUE:
		tok := p.cur
		p.advance()
		return &ast.ContinueStmt{Tok: tok}
	case token.IDENT:
		return p.parseIdentStatement()
	default:
		tok := p.cur
		expr := p.parseExpression()
		return &ast.ExprStmt{Tok: tok, X: expr}
	}
}

func (p *Parser) parseVarOrArrayDecl() ast.Stmt {
	typeTok := p.parseTypeName()
	nameTok := p.expect(token.IDENT)
	typeIdent := &ast.Identifier{Tok: typeTok, Name: typeTok.Lexeme}

	if p.cur.Type == token.LBRACKET {
		p.advance()
		sizeTok := p.expect(token.NUMBER)
		p.expect(token.RBRACKET)
		n, _ := strconv.ParseInt(sizeTok.Lexeme, 10, 64)
		return &ast.ArrayDecl{
			Tok:  nameTok,
			Name: nameTok.Lexeme,
			Type: typeIdent,
			Size: &ast.NumberLiteral{Tok: sizeTok, Value: n},
		}
	}

	decl := &ast.VarDecl{Tok: nameTok, Name: nameTok.Lexeme, Type: typeIdent}
	if p.cur.Type == token.ASSIGN {
		p.advance()
		decl.Init = p.parseExpression()
	}
	return decl
}

// parseIdentStatement disambiguates what an identifier starts: peek '++'
// or '--' is an increment/decrement statement, peek '=' or '[' is an
// assignment, anything else starts an expression statement.
func (p *Parser) parseIdentStatement() ast.Stmt {
	nameTok := p.cur

	switch p.peek.Type {
	case token.INCREMENT, token.DECREMENT:
		p.advance() // at op
		op := p.cur.Lexeme
		p.advance() // past op
		return &ast.IncDecStmt{Tok: nameTok, Name: nameTok.Lexeme, Op: op}
	case token.ASSIGN:
		p.advance() // at '='
		p.advance() // past '='
		rhs := p.parseExpression()
		return &ast.Assignment{Tok: nameTok, Name: nameTok.Lexeme, RHS: rhs}
	case token.LBRACKET:
		p.advance() // at '['
		p.advance() // past '['
		index := p.parseExpression()
		p.expect(token.RBRACKET)
		p.expect(token.ASSIGN)
		rhs := p.parseExpression()
		return &ast.Assignment{Tok: nameTok, Name: nameTok.Lexeme, Index: index, RHS: rhs}
	default:
		expr := p.parseExpression()
		return &ast.ExprStmt{Tok: nameTok, X: expr}
	}
}

func (p *Parser) parseReturn() *ast.ReturnStmt {
	tok := p.expect(token.RETURN)
	stmt := &ast.ReturnStmt{Tok: tok}
	if !p.atStatementEnd() {
		stmt.Value = p.parseExpression()
	}
	return stmt
}

// atStatementEnd reports whether the current token could not possibly
// start an expression, i.e. a bare `return` is being used.
func (p *Parser) atStatementEnd() bool {
	switch p.cur.Type {
	case token.NEWLINE, token.RBRACE, token.EOF:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIf() *ast.IfStmt {
	tok := p.expect(token.IF)
	cond := p.parseExpression()
	p.expect(token.LBRACE)
	then := p.parseBlock(ast.RoleThen, token.RBRACE)
	p.expect(token.RBRACE)

	stmt := &ast.IfStmt{Tok: tok, Cond: cond, Then: then}

	// A following 'else' may be separated from the closing '}' by
	// newlines; they carry no meaning of their own (every block loop
	// skips them as statement separators), so it's safe to consume them
	// here without backtracking if no 'else' turns up.
	p.skipNewlines()
	if p.cur.Type == token.ELSE {
		p.advance()
		if p.cur.Type == token.IF {
			stmt.Else = p.parseIf()
		} else {
			p.expect(token.LBRACE)
			elseBlock := p.parseBlock(ast.RoleElse, token.RBRACE)
			p.expect(token.RBRACE)
			stmt.Else = elseBlock
		}
	}
	return stmt
}

func (p *Parser) parseLoop() *ast.LoopStmt {
	tok := p.expect(token.LOOP)
	cond := p.parseExpression()
	p.expect(token.LBRACE)
	body := p.parseBlock(ast.RoleBody, token.RBRACE)
	p.expect(token.RBRACE)
	return &ast.LoopStmt{Tok: tok, Cond: cond, Body: body}
}

// --- expressions: precedence climbing ---
//
// expression := or_expr
// or_expr    := cmp_expr { ('&&'|'||') cmp_expr }      -- flat precedence
// cmp_expr   := add_expr { ('=='|'!='|'<'|'>'|'<='|'>=') add_expr }
// add_expr   := mul_expr { ('+'|'-') mul_expr }
// mul_expr   := unary    { ('*'|'/'|'%') unary }
// unary      := ('!' | '-') unary | primary
// primary    := NUMBER | STRING | '(' expression ')' | IDENT (call | index | bare)

func (p *Parser) parseExpression() ast.Expr {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Expr {
	left := p.parseComparison()
	for p.cur.Type == token.AND || p.cur.Type == token.OR {
		tok := p.cur
		op := tok.Lexeme
		p.advance()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Tok: tok, Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for isComparisonOp(p.cur.Type) {
		tok := p.cur
		op := tok.Lexeme
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Tok: tok, Op: op, LHS: left, RHS: right}
	}
	return left
}

func isComparisonOp(t token.Type) bool {
	switch t {
	case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		tok := p.cur
		op := tok.Lexeme
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Tok: tok, Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.cur.Type == token.STAR || p.cur.Type == token.SLASH || p.cur.Type == token.PERCENT {
		tok := p.cur
		op := tok.Lexeme
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Tok: tok, Op: op, LHS: left, RHS: right}
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	if p.cur.Type == token.NOT || p.cur.Type == token.MINUS {
		tok := p.cur
		op := tok.Lexeme
		p.advance()
		x := p.parseUnary()
		return &ast.UnaryExpr{Tok: tok, Op: op, X: x}
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() ast.Expr {
	switch p.cur.Type {
	case token.NUMBER:
		tok := p.cur
		p.advance()
		n, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return &ast.NumberLiteral{Tok: tok, Value: n}
	case token.FLOAT:
		tok := p.cur
		p.advance()
		f, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return &ast.FloatLiteral{Tok: tok, Value: f}
	case token.STRING:
		tok := p.cur
		p.advance()
		return &ast.StringLiteral{Tok: tok, Value: tok.Lexeme}
	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RPAREN)
		return expr
	case token.IDENT:
		return p.parseIdentExpr()
	default:
		p.fail("unexpected token %s %q in expression", p.cur.Type, p.cur.Lexeme)
		panic("unreachable")
	}
}

func (p *Parser) parseIdentExpr() ast.Expr {
	nameTok := p.cur
	p.advance()

	switch p.cur.Type {
	case token.LBRACKET:
		p.advance()
		index := p.parseExpression()
		p.expect(token.RBRACKET)
		return &ast.ArrayAccess{Tok: nameTok, Name: nameTok.Lexeme, Index: index}
	case token.LPAREN:
		p.advance()
		args := p.parseArgs()
		p.expect(token.RPAREN)
		return &ast.CallExpr{Tok: nameTok, Callee: nameTok.Lexeme, Args: args}
	default:
		return &ast.Identifier{Tok: nameTok, Name: nameTok.Lexeme}
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	var args []ast.Expr
	if p.cur.Type == token.RPAREN {
		return args
	}
	args = append(args, p.parseExpression())
	for p.cur.Type == token.COMMA {
		p.advance()
		args = append(args, p.parseExpression())
	}
	return args
}
