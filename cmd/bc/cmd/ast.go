package cmd

import (
	"fmt"

	"github.com/BJZR/B-lang/astdump"
	"github.com/spf13/cobra"
)

var (
	astQuery string
	astPatch []string
)

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Dump the parsed AST as JSON, optionally querying or patching it",
	Long: `ast parses a B file and prints its AST as JSON. With --query, only the
gjson path match is printed instead of the whole tree. With --patch
path=value (repeatable), the JSON is rewritten via sjson before printing
-- chiefly useful for hand-editing golden AST fixtures.

Examples:
  bc ast hello.b
  bc ast hello.b --query "items.0.name"
  bc ast hello.b --patch "items.0.name=renamed"`,
	Args: cobra.ExactArgs(1),
	RunE: runAst,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().StringVar(&astQuery, "query", "", "gjson path expression to extract from the dumped AST")
	astCmd.Flags().StringArrayVar(&astPatch, "patch", nil, "sjson path=value edit to apply before printing (repeatable)")
}

func runAst(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	prog, err := parseSource(src, filename)
	if err != nil {
		return fmt.Errorf("%s", err)
	}

	dumped, err := astdump.Dump(prog)
	if err != nil {
		return fmt.Errorf("failed to dump AST: %w", err)
	}

	for _, kv := range astPatch {
		path, value, ok := splitPatchArg(kv)
		if !ok {
			return fmt.Errorf("invalid --patch argument %q, expected path=value", kv)
		}
		dumped, err = astdump.Patch(dumped, path, value)
		if err != nil {
			return fmt.Errorf("failed to apply patch %q: %w", kv, err)
		}
	}

	if astQuery != "" {
		result, err := astdump.Query(dumped, astQuery)
		if err != nil {
			return err
		}
		fmt.Println(result)
		return nil
	}

	fmt.Println(string(dumped))
	return nil
}

func splitPatchArg(kv string) (path, value string, ok bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:], true
		}
	}
	return "", "", false
}
