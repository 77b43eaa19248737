package cmd

import (
	"fmt"
	"os"

	"github.com/BJZR/B-lang/toolchain"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Compile and immediately execute a B file",
	Long: `run compiles a B source file the same way "bc compile" does, then
executes the resulting binary in place, forwarding stdin/stdout/stderr and
exiting with the program's own exit status. Intermediate files are always
removed afterwards.

Example:
  bc run hello.b`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	prog, err := parseSource(src, filename)
	if err != nil {
		return fmt.Errorf("%s", err)
	}

	res, err := generate(prog)
	if err != nil {
		return fmt.Errorf("%s", err)
	}

	tmpDir, err := os.MkdirTemp("", "bc-run-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	asmPath := tmpDir + "/a.asm"
	objPath := tmpDir + "/a.o"
	binPath := tmpDir + "/a.out"

	if err := os.WriteFile(asmPath, []byte(res.Assembly), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", asmPath, err)
	}

	opts := toolchainOptions()
	if err := toolchain.Assemble(opts, asmPath, objPath); err != nil {
		return err
	}
	if err := toolchain.Link(opts, objPath, binPath); err != nil {
		return err
	}

	if err := toolchain.RunBinary(binPath); err != nil {
		if exitErr, ok := asExitError(err); ok {
			// os.Exit skips deferred calls, so clean up explicitly.
			os.RemoveAll(tmpDir)
			os.Exit(exitErr)
		}
		return err
	}
	return nil
}
