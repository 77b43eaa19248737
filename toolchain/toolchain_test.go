package toolchain

import (
	"errors"
	"strings"
	"testing"
)

func TestStageErrorMessageNamesTheStage(t *testing.T) {
	err := &StageError{Stage: "nasm", Err: errors.New("exit status 1")}
	if !strings.Contains(err.Error(), "nasm") {
		t.Fatalf("Error() = %q, want it to mention the stage name", err.Error())
	}
	if !strings.Contains(err.Error(), "exit status 1") {
		t.Fatalf("Error() = %q, want it to wrap the underlying error", err.Error())
	}
}

func TestStageErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &StageError{Stage: "ld", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatal("expected errors.Is to see through StageError via Unwrap")
	}
}

func TestOptionsDefaultToolNames(t *testing.T) {
	var opts Options
	if opts.nasm() != "nasm" {
		t.Fatalf("nasm() = %q, want %q when NasmPath is unset", opts.nasm(), "nasm")
	}
	if opts.ld() != "ld" {
		t.Fatalf("ld() = %q, want %q when LdPath is unset", opts.ld(), "ld")
	}
}

func TestOptionsOverrideToolPaths(t *testing.T) {
	opts := Options{NasmPath: "/opt/nasm", LdPath: "/opt/ld"}
	if opts.nasm() != "/opt/nasm" {
		t.Fatalf("nasm() = %q, want override", opts.nasm())
	}
	if opts.ld() != "/opt/ld" {
		t.Fatalf("ld() = %q, want override", opts.ld())
	}
}

func TestAssembleFailsWhenNasmMissing(t *testing.T) {
	opts := Options{NasmPath: "/nonexistent/nasm-binary"}
	err := Assemble(opts, "in.asm", "out.o")
	if err == nil {
		t.Fatal("expected an error when nasm cannot be found")
	}
	var stageErr *StageError
	if !errors.As(err, &stageErr) || stageErr.Stage != "nasm" {
		t.Fatalf("expected a *StageError for stage \"nasm\", got %v", err)
	}
}
