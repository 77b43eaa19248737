package cmd

import (
	"fmt"

	"github.com/BJZR/B-lang/lexer"
	"github.com/BJZR/B-lang/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a B file and print the resulting tokens",
	Long: `lex scans a B source file and prints every token it produces, one per
line, in the form TYPE "lexeme" @line. Useful for debugging the lexer
itself independent of the parser.

Example:
  bc lex hello.b`,
	Args: cobra.ExactArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func runLex(_ *cobra.Command, args []string) error {
	filename := args[0]

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	l := lexer.New(src)
	for {
		tok := l.NextToken()
		fmt.Printf("%-10s %-20q @%d\n", tok.Type, tok.Lexeme, tok.Line)
		if tok.Type == token.EOF {
			break
		}
	}

	for _, lerr := range l.Errors() {
		fmt.Printf("warning: line %d: %s\n", lerr.Line, lerr.Message)
	}

	return nil
}
