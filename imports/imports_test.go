package imports

import (
	"errors"
	"testing"

	"github.com/BJZR/B-lang/ast"
	"github.com/BJZR/B-lang/lexer"
	"github.com/BJZR/B-lang/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram() error: %v", err)
	}
	return prog
}

func fakeFS(files map[string]string) ReadFile {
	return func(path string) ([]byte, error) {
		src, ok := files[path]
		if !ok {
			return nil, errors.New("no such file")
		}
		return []byte(src), nil
	}
}

func TestResolveSplicesFunctionsOnly(t *testing.T) {
	prog := mustParse(t, `import "lib.b"`+"\n"+`func main() { return 0 }`)

	read := fakeFS(map[string]string{
		"lib.b": `import "unused.b"` + "\n" + `func helper(int x) { return x + 1 }`,
	})

	if err := Resolve(prog, read); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	var names []string
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name)
		}
	}
	if len(names) != 2 || names[0] != "main" || names[1] != "helper" {
		t.Fatalf("functions after resolve = %v, want [main helper]", names)
	}
}

func TestResolveIsNonTransitive(t *testing.T) {
	prog := mustParse(t, `import "a.b"`+"\n"+`func main() { return 0 }`)

	read := fakeFS(map[string]string{
		"a.b": `import "b.b"` + "\n" + `func fromA() { return 1 }`,
		"b.b": `func fromB() { return 2 }`,
	})

	if err := Resolve(prog, read); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok && fn.Name == "fromB" {
			t.Fatal("fromB should not be reachable: imports are shallow, not transitive")
		}
	}
}

func TestResolveErrorsOnMissingFile(t *testing.T) {
	prog := mustParse(t, `import "missing.b"`+"\n"+`func main() { return 0 }`)
	if err := Resolve(prog, fakeFS(nil)); err == nil {
		t.Fatal("expected an error resolving a nonexistent import")
	}
}

func TestResolveAgainstRealFilesystem(t *testing.T) {
	prog := mustParse(t, `import "../testdata/import_lib.b"`+"\n"+`func main() { return 0 }`)

	if err := Resolve(prog, OSReadFile); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	var names []string
	for _, item := range prog.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok {
			names = append(names, fn.Name)
		}
	}
	if len(names) != 2 || names[0] != "main" || names[1] != "helper" {
		t.Fatalf("functions after resolve = %v, want [main helper]", names)
	}
}
