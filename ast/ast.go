// Package ast defines the Abstract Syntax Tree produced by the parser.
//
// spec.md describes a single polymorphic node record with a kind tag, an
// inline string payload, two distinguished children and a list of extra
// children. Per the REDESIGN FLAGS in spec.md §9, this is expressed here
// as a sum type: a closed Node interface with one concrete struct per
// node kind and named fields in place of the generic left/right/payload
// slots. The tree shape and every invariant in spec.md §3 is preserved.
package ast

import "github.com/BJZR/B-lang/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
}

// Stmt is any node that can appear as a statement.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of every compiled unit: a flat list of top-level
// Function and Import declarations, in source order. After import
// resolution it holds only *FunctionDecl (plus the surviving *ImportStmt
// nodes codegen ignores).
type Program struct {
	Items []Node
}

func (p *Program) TokenLiteral() string { return "program" }

// ImportStmt is a top-level `import "path"` declaration. The path is
// carried verbatim; resolution is the job of the imports package, not the
// parser.
type ImportStmt struct {
	Tok  token.Token
	Path string
}

func (i *ImportStmt) TokenLiteral() string { return i.Tok.Lexeme }
func (i *ImportStmt) stmtNode()            {}

// VarDecl declares a scalar local or parameter: `type name [= expr]`.
// Init is nil for parameters and uninitialized locals.
type VarDecl struct {
	Tok  token.Token
	Name string
	Type *Identifier
	Init Expr
}

func (v *VarDecl) TokenLiteral() string { return v.Tok.Lexeme }
func (v *VarDecl) stmtNode()            {}

// ArrayDecl declares a fixed-size local array: `type name[size]`. Size
// must be a literal NumberLiteral; spec.md treats anything else as a
// codegen-time semantic error.
type ArrayDecl struct {
	Tok  token.Token
	Name string
	Type *Identifier
	Size *NumberLiteral
}

func (a *ArrayDecl) TokenLiteral() string { return a.Tok.Lexeme }
func (a *ArrayDecl) stmtNode()            {}

// FunctionDecl is a top-level function definition.
type FunctionDecl struct {
	Tok    token.Token
	Name   string
	Params []*VarDecl
	Body   *BlockStmt
}

func (f *FunctionDecl) TokenLiteral() string { return f.Tok.Lexeme }
func (f *FunctionDecl) stmtNode()            {}

// BlockRole tags what a BlockStmt is being used for; it does not affect
// codegen but mirrors spec.md's "role tag" payload convention and is handy
// when pretty-printing.
type BlockRole string

const (
	RoleBody BlockRole = "body"
	RoleThen BlockRole = "then"
	RoleElse BlockRole = "else"
)

// BlockStmt is an ordered list of statements delimited by `{ }`.
type BlockStmt struct {
	Tok   token.Token
	Role  BlockRole
	Stmts []Stmt
}

func (b *BlockStmt) TokenLiteral() string { return b.Tok.Lexeme }
func (b *BlockStmt) stmtNode()            {}

// Assignment stores a value into a scalar variable (`Index == nil`) or an
// array slot (`Index != nil`): `name[Index]? = RHS`.
type Assignment struct {
	Tok   token.Token
	Name  string
	Index Expr // nil for scalar assignment
	RHS   Expr
}

func (a *Assignment) TokenLiteral() string { return a.Tok.Lexeme }
func (a *Assignment) stmtNode()            {}

// IncDecStmt is a standalone `name++` or `name--` statement.
type IncDecStmt struct {
	Tok  token.Token
	Name string
	Op   string // "++" or "--"
}

func (s *IncDecStmt) TokenLiteral() string { return s.Tok.Lexeme }
func (s *IncDecStmt) stmtNode()            {}

// ReturnStmt returns from the enclosing function. Value is nil for a bare
// `return`, which codegen lowers as returning 0.
type ReturnStmt struct {
	Tok   token.Token
	Value Expr
}

func (r *ReturnStmt) TokenLiteral() string { return r.Tok.Lexeme }
func (r *ReturnStmt) stmtNode()            {}

// IfStmt is `if Cond { Then } [else (Else is *BlockStmt or *IfStmt)]`.
// An `else if` chain is represented by nesting another *IfStmt directly
// as Else, rather than wrapping it in a single-statement block.
type IfStmt struct {
	Tok  token.Token
	Cond Expr
	Then *BlockStmt
	Else Node // nil, *BlockStmt, or *IfStmt
}

func (i *IfStmt) TokenLiteral() string { return i.Tok.Lexeme }
func (i *IfStmt) stmtNode()            {}

// LoopStmt is B's only looping construct: `loop Cond { Body }`.
type LoopStmt struct {
	Tok  token.Token
	Cond Expr
	Body *BlockStmt
}

func (l *LoopStmt) TokenLiteral() string { return l.Tok.Lexeme }
func (l *LoopStmt) stmtNode()            {}

// BreakStmt and ContinueStmt target the innermost enclosing LoopStmt.
type BreakStmt struct{ Tok token.Token }

func (b *BreakStmt) TokenLiteral() string { return b.Tok.Lexeme }
func (b *BreakStmt) stmtNode()            {}

type ContinueStmt struct{ Tok token.Token }

func (c *ContinueStmt) TokenLiteral() string { return c.Tok.Lexeme }
func (c *ContinueStmt) stmtNode()            {}

// ExprStmt is an expression whose value is computed and discarded, e.g. a
// bare call statement.
type ExprStmt struct {
	Tok token.Token
	X   Expr
}

func (e *ExprStmt) TokenLiteral() string { return e.Tok.Lexeme }
func (e *ExprStmt) stmtNode()            {}

// --- expressions ---

// Identifier is a bare name in expression context, or the type-name slot
// of a VarDecl/ArrayDecl.
type Identifier struct {
	Tok  token.Token
	Name string
}

func (i *Identifier) TokenLiteral() string { return i.Tok.Lexeme }
func (i *Identifier) exprNode()            {}

// NumberLiteral is an integer literal (spec.md's NUMBER token); B does not
// codegen float arithmetic, but FloatLiteral still parses the `FLOAT`
// token so that the `float` keyword's literal syntax is recognized
// end-to-end, per spec.md's Non-goals ("float codegen" is out of scope,
// not float lexing/parsing).
type NumberLiteral struct {
	Tok   token.Token
	Value int64
}

func (n *NumberLiteral) TokenLiteral() string { return n.Tok.Lexeme }
func (n *NumberLiteral) exprNode()            {}

// FloatLiteral is recognized by the lexer/parser but rejected by codegen.
type FloatLiteral struct {
	Tok   token.Token
	Value float64
}

func (f *FloatLiteral) TokenLiteral() string { return f.Tok.Lexeme }
func (f *FloatLiteral) exprNode()            {}

// StringLiteral holds an already-escape-resolved string payload (bounded
// to token.MaxLexemeBytes by the lexer).
type StringLiteral struct {
	Tok   token.Token
	Value string
}

func (s *StringLiteral) TokenLiteral() string { return s.Tok.Lexeme }
func (s *StringLiteral) exprNode()            {}

// BinaryExpr is `LHS Op RHS` for arithmetic, comparison and logical
// operators. Comparisons are left-associative and chainable, exactly as
// spec.md's grammar allows (`a < b < c` parses, however dubious the
// result).
type BinaryExpr struct {
	Tok token.Token
	Op  string
	LHS Expr
	RHS Expr
}

func (b *BinaryExpr) TokenLiteral() string { return b.Tok.Lexeme }
func (b *BinaryExpr) exprNode()            {}

// UnaryExpr is `Op X` for `!` and unary `-`.
type UnaryExpr struct {
	Tok token.Token
	Op  string
	X   Expr
}

func (u *UnaryExpr) TokenLiteral() string { return u.Tok.Lexeme }
func (u *UnaryExpr) exprNode()            {}

// CallExpr is `Callee(Args...)`. Codegen special-cases a handful of
// built-in Callee names (exit, print, input, str_to_int) before falling
// back to a generic call.
type CallExpr struct {
	Tok    token.Token
	Callee string
	Args   []Expr
}

func (c *CallExpr) TokenLiteral() string { return c.Tok.Lexeme }
func (c *CallExpr) exprNode()            {}

// ArrayAccess is `Name[Index]` in expression (load) context; in statement
// (store) context the same shape appears inside Assignment instead.
type ArrayAccess struct {
	Tok   token.Token
	Name  string
	Index Expr
}

func (a *ArrayAccess) TokenLiteral() string { return a.Tok.Lexeme }
func (a *ArrayAccess) exprNode()            {}
