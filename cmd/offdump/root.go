package main

import (
	"io"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

// logger carries --verbose diagnostics; it is silent otherwise.
var logger = log.New(io.Discard, "offdump: ", 0)

var rootCmd = &cobra.Command{
	Use:   "offdump",
	Short: "Write, inspect and verify offset-pointer snapshots",
	Long: `offdump works with snapshots: relocatable byte images of contexts whose
fields are addressed by offset pointers.

It can write snapshots of the built-in fixtures, print the section table of
any snapshot and verify checksums and framing.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	if verbose && !quiet {
		logger.SetOutput(cmd.ErrOrStderr())
	} else {
		logger.SetOutput(io.Discard)
	}
	if noColor {
		color.NoColor = true
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
