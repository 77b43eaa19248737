// Package imports implements the post-parse import resolution pass:
// for each *ast.ImportStmt at program top level, the referenced file is
// lexed and parsed, and every top-level *ast.FunctionDecl it contains is
// appended to the importing program. See spec.md §4.3.
//
// Resolution is shallow (no transitive imports), the path is used
// verbatim with no search-path logic, and name collisions are not
// detected — the last definition simply wins when codegen emits
// duplicate labels, which an assembler downstream is expected to reject.
package imports

import (
	"fmt"
	"os"

	"github.com/BJZR/B-lang/ast"
	"github.com/BJZR/B-lang/lexer"
	"github.com/BJZR/B-lang/parser"
)

// ReadFile abstracts file access so tests can resolve imports against an
// in-memory fixture set instead of the real filesystem.
type ReadFile func(path string) ([]byte, error)

// Resolve mutates prog in place, appending the *ast.FunctionDecl nodes
// found in every imported file. read is typically os.ReadFile; pass a
// fake for tests.
func Resolve(prog *ast.Program, read ReadFile) error {
	// Snapshot the initial items: imports found while splicing in an
	// imported file's functions are never themselves followed, which is
	// what keeps resolution non-transitive.
	initial := make([]ast.Node, len(prog.Items))
	copy(initial, prog.Items)

	for _, item := range initial {
		imp, ok := item.(*ast.ImportStmt)
		if !ok {
			continue
		}
		fns, err := resolveOne(imp.Path, read)
		if err != nil {
			return err
		}
		for _, fn := range fns {
			prog.Items = append(prog.Items, fn)
		}
	}
	return nil
}

func resolveOne(path string, read ReadFile) ([]*ast.FunctionDecl, error) {
	src, err := read(path)
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", path, err)
	}

	l := lexer.New(string(src))
	p := parser.New(l)
	imported, err := p.ParseProgram()
	if err != nil {
		return nil, fmt.Errorf("import %q: %w", path, err)
	}

	var fns []*ast.FunctionDecl
	for _, item := range imported.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			fns = append(fns, fn)
		}
		// Other top-level kinds (nested *ast.ImportStmt) are dropped: the
		// original file's own imports are not followed, making circular
		// imports A->B->A truncate after one level by construction.
	}
	return fns, nil
}

// OSReadFile is the default ReadFile using the real filesystem.
func OSReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}
