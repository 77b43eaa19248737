package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BJZR/B-lang/toolchain"
	"github.com/spf13/cobra"
)

var (
	compileOutputFile string
	keepIntermediates bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile a B file to a standalone ELF binary",
	Long: `compile runs the full pipeline -- lex, parse, import resolution, code
generation, nasm assembly, and ld linking -- producing a runnable Linux
ELF binary.

Examples:
  bc compile hello.b
  bc compile hello.b -o hello
  bc compile hello.b --keep-intermediates`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutputFile, "output", "o", "", "output binary path (default: <input> without its extension)")
	compileCmd.Flags().BoolVar(&keepIntermediates, "keep-intermediates", false, "keep the generated .asm and .o files")
}

func runCompile(_ *cobra.Command, args []string) error {
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

	outBin := compileOutputFile
	if outBin == "" {
		ext := filepath.Ext(filename)
		outBin = strings.TrimSuffix(filename, ext)
		if outBin == filename {
			outBin = filename + ".out"
		}
	}
	asmPath := outBin + ".asm"
	objPath := outBin + ".o"

	if err := os.WriteFile(asmPath, []byte(res.Assembly), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", asmPath, err)
	}
	if !keepIntermediates {
		defer os.Remove(asmPath)
	}

	opts := toolchainOptions()
	if err := toolchain.Assemble(opts, asmPath, objPath); err != nil {
		return err
	}
	if !keepIntermediates {
		defer os.Remove(objPath)
	}

	if err := toolchain.Link(opts, objPath, outBin); err != nil {
		return err
	}

	fmt.Printf("Compiled %s -> %s\n", filename, outBin)
	return nil
}
