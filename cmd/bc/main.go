// Command bc is the B-language ahead-of-time compiler: lex, parse,
// resolve imports, generate x86-64 NASM assembly, then optionally drive
// nasm/ld to produce and run a Linux ELF binary.
package main

import (
	"fmt"
	"os"

	"github.com/BJZR/B-lang/cmd/bc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
