package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var asmOutputFile string

var asmCmd = &cobra.Command{
	Use:   "asm <file>",
	Short: "Emit the generated NASM assembly without assembling or linking",
	Long: `asm runs the full front end (lex, parse, import resolution) and code
generation, and writes the resulting NASM source to stdout or --output,
without invoking nasm or ld.

Examples:
  bc asm hello.b
  bc asm hello.b -o hello.asm`,
	Args: cobra.ExactArgs(1),
	RunE: runAsm,
}

func init() {
	rootCmd.AddCommand(asmCmd)
	asmCmd.Flags().StringVarP(&asmOutputFile, "output", "o", "", "write assembly to this file instead of stdout")
}

func runAsm(_ *cobra.Command, args []string) error {
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

	if asmOutputFile == "" {
		fmt.Print(res.Assembly)
		return nil
	}
	return os.WriteFile(asmOutputFile, []byte(res.Assembly), 0644)
}
