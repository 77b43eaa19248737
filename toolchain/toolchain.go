// Package toolchain wraps the external collaborators spec.md §6 specifies
// only by contract: invoking nasm to assemble, ld to link, and the
// resulting binary to run it. Assemble and Link failures are the third
// error kind from spec.md §7 -- fatal, exit status 1, wrapped in a
// *StageError naming the offending stage. RunBinary returns the program's
// own error unwrapped, so `bc run` can exit with the program's status.
package toolchain

import (
	"fmt"
	"os"
	"os/exec"
)

// StageError names which external stage failed and wraps its underlying
// error (a non-zero exit status or a failure to even start the process).
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Options configures where the external tools live; the zero value uses
// "nasm" and "ld" off $PATH, which config.Config.NasmPath/LdPath override.
type Options struct {
	NasmPath string
	LdPath   string
}

func (o Options) nasm() string {
	if o.NasmPath != "" {
		return o.NasmPath
	}
	return "nasm"
}

func (o Options) ld() string {
	if o.LdPath != "" {
		return o.LdPath
	}
	return "ld"
}

// Assemble runs `nasm -f elf64 asmFile -o objFile`.
func Assemble(opts Options, asmFile, objFile string) error {
	return run("nasm", opts.nasm(), "-f", "elf64", asmFile, "-o", objFile)
}

// Link runs `ld objFile -o binFile`.
func Link(opts Options, objFile, binFile string) error {
	return run("ld", opts.ld(), objFile, "-o", binFile)
}

// RunBinary executes binFile with no arguments, inheriting the current
// process's stdio, and returns its exit status via *exec.ExitError when
// non-zero (the caller maps that to the process's own exit code).
func RunBinary(binFile string) error {
	cmd := exec.Command(binFile)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func run(stage, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return &StageError{Stage: stage, Err: err}
	}
	return nil
}
