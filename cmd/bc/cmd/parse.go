package cmd

import (
	"fmt"

	"github.com/BJZR/B-lang/astdump"
	"github.com/spf13/cobra"
)

var parseDump bool

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a B file and report success or the first fatal error",
	Long: `parse runs the lexer, parser and import resolver over a file and
reports whether it succeeds. spec.md's parser aborts on the first fatal
error, so at most one diagnostic is ever printed.

Example:
  bc parse hello.b
  bc parse hello.b --dump`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseDump, "dump", false, "print the resulting AST as JSON")
}

func runParse(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	prog, err := parseSource(src, filename)
	if err != nil {
		return fmt.Errorf("%s", err)
	}

	if parseDump {
		dumped, err := astdump.Dump(prog)
		if err != nil {
			return fmt.Errorf("failed to dump AST: %w", err)
		}
		fmt.Println(string(dumped))
		return nil
	}

	fmt.Printf("%s: parsed OK (%d top-level item(s))\n", filename, len(prog.Items))
	return nil
}
