// Package astdump renders an *ast.Program as JSON for the `bc ast`
// debugging verb, and offers gjson/sjson-backed helpers for querying or
// patching that JSON -- handy both interactively and as golden-file
// maintenance tooling in tests.
package astdump

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/BJZR/B-lang/ast"
)

// node is the JSON shape every AST node is rendered into: a "kind" tag
// plus whatever fields that node kind has, so the dump stays close to
// spec.md §3's kind-tagged record even though the in-memory AST is a Go
// sum type.
type node map[string]any

// Dump converts prog to its JSON tree representation.
func Dump(prog *ast.Program) ([]byte, error) {
	items := make([]node, 0, len(prog.Items))
	for _, item := range prog.Items {
		items = append(items, dumpNode(item))
	}
	return json.MarshalIndent(node{"kind": "Program", "items": items}, "", "  ")
}

// Query runs a gjson path expression against the JSON produced by Dump.
func Query(dumped []byte, path string) (string, error) {
	result := gjson.GetBytes(dumped, path)
	if !result.Exists() {
		return "", fmt.Errorf("no match for query %q", path)
	}
	return result.String(), nil
}

// Patch applies an sjson path=value edit to dumped JSON, returning the
// patched document. Used by `bc ast --patch` to tweak one field without
// hand-editing a whole JSON blob.
func Patch(dumped []byte, path string, value any) ([]byte, error) {
	out, err := sjson.SetBytes(dumped, path, value)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func dumpNode(n ast.Node) node {
	switch v := n.(type) {
	case *ast.ImportStmt:
		return node{"kind": "Import", "path": v.Path}
	case *ast.FunctionDecl:
		params := make([]node, 0, len(v.Params))
		for _, p := range v.Params {
			params = append(params, dumpNode(p))
		}
		return node{"kind": "Function", "name": v.Name, "params": params, "body": dumpNode(v.Body)}
	case *ast.BlockStmt:
		stmts := make([]node, 0, len(v.Stmts))
		for _, s := range v.Stmts {
			stmts = append(stmts, dumpNode(s))
		}
		return node{"kind": "Block", "role": string(v.Role), "stmts": stmts}
	case *ast.VarDecl:
		out := node{"kind": "VarDecl", "name": v.Name, "type": v.Type.Name}
		if v.Init != nil {
			out["init"] = dumpNode(v.Init)
		}
		return out
	case *ast.ArrayDecl:
		return node{"kind": "ArrayDecl", "name": v.Name, "type": v.Type.Name, "size": v.Size.Value}
	case *ast.Assignment:
		out := node{"kind": "Assignment", "name": v.Name, "rhs": dumpNode(v.RHS)}
		if v.Index != nil {
			out["index"] = dumpNode(v.Index)
		}
		return out
	case *ast.IncDecStmt:
		return node{"kind": "IncDec", "name": v.Name, "op": v.Op}
	case *ast.ReturnStmt:
		out := node{"kind": "Return"}
		if v.Value != nil {
			out["value"] = dumpNode(v.Value)
		}
		return out
	case *ast.IfStmt:
		out := node{"kind": "If", "cond": dumpNode(v.Cond), "then": dumpNode(v.Then)}
		if v.Else != nil {
			out["else"] = dumpNode(v.Else)
		}
		return out
	case *ast.LoopStmt:
		return node{"kind": "Loop", "cond": dumpNode(v.Cond), "body": dumpNode(v.Body)}
	case *ast.BreakStmt:
		return node{"kind": "Break"}
	case *ast.ContinueStmt:
		return node{"kind": "Continue"}
	case *ast.ExprStmt:
		return node{"kind": "ExprStmt", "expr": dumpNode(v.X)}
	case *ast.Identifier:
		return node{"kind": "Identifier", "name": v.Name}
	case *ast.NumberLiteral:
		return node{"kind": "Number", "value": v.Value}
	case *ast.FloatLiteral:
		return node{"kind": "Float", "value": v.Value}
	case *ast.StringLiteral:
		return node{"kind": "String", "value": v.Value}
	case *ast.BinaryExpr:
		return node{"kind": "BinaryOp", "op": v.Op, "lhs": dumpNode(v.LHS), "rhs": dumpNode(v.RHS)}
	case *ast.UnaryExpr:
		return node{"kind": "UnaryOp", "op": v.Op, "x": dumpNode(v.X)}
	case *ast.CallExpr:
		args := make([]node, 0, len(v.Args))
		for _, a := range v.Args {
			args = append(args, dumpNode(a))
		}
		return node{"kind": "Call", "callee": v.Callee, "args": args}
	case *ast.ArrayAccess:
		return node{"kind": "ArrayAccess", "name": v.Name, "index": dumpNode(v.Index)}
	default:
		return node{"kind": fmt.Sprintf("unknown(%T)", n)}
	}
}
