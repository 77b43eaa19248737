package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version is set by -ldflags at build time; it defaults to a dev marker.
	Version = "0.1.0-dev"

	colorFlag  bool
	colorIsSet bool
)

var rootCmd = &cobra.Command{
	Use:   "bc",
	Short: "An ahead-of-time compiler for the B language",
	Long: `bc compiles B source files to x86-64 NASM assembly targeting a bare
Linux _start entry point, and can optionally drive nasm and ld to produce
and run a standalone ELF binary.`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		colorIsSet = cmd.Flags().Changed("color")
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&colorFlag, "color", true, "colorize diagnostic output when stderr is a terminal")
}
