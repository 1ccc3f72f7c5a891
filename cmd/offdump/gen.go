package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rawbytedev/offptr/internal/fixtures"
	"github.com/rawbytedev/offptr/pkg/snapshot"
)

var (
	genOutput   string
	genConfig   string
	genCompress bool
	genAlign    bool
)

var genCmd = &cobra.Command{
	Use:   "gen <fixture>",
	Short: "Write a snapshot of a built-in fixture",
	Long: `Write a snapshot of one of the built-in fixtures:

  circle    the circle of fifths, a twelve-key cycle
  chain     foos and bars pointing at each other across two fields
  document  a text and the spans of its words

Options are read from --config (YAML) first; --compress and --align
override the file when given.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: fixtures.Names,
	RunE:      runGen,
}

func init() {
	addGenFlags(genCmd)
}

func addGenFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output path (default <fixture>.ofs)")
	cmd.Flags().StringVar(&genConfig, "config", "", "YAML file with snapshot options")
	cmd.Flags().BoolVar(&genCompress, "compress", false, "Compress the data region with zstd")
	cmd.Flags().BoolVar(&genAlign, "align", false, "Align sections to 8 bytes")
}

func runGen(cmd *cobra.Command, args []string) error {
	name := args[0]
	opts, err := genOptions(cmd)
	if err != nil {
		return err
	}
	logger.Printf("encoding %s with %+v", name, opts)

	buf, err := fixtures.Encode(name, opts)
	if err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(fixtures.Names, ", "))
	}

	path := genOutput
	if path == "" {
		path = name + ".ofs"
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(buf))
	}
	return nil
}

// genOptions merges the config file with flags set on the command line.
func genOptions(cmd *cobra.Command) (snapshot.Options, error) {
	var opts snapshot.Options
	if genConfig != "" {
		var err error
		if opts, err = snapshot.LoadOptions(genConfig, opts); err != nil {
			return opts, fmt.Errorf("loading config: %w", err)
		}
		logger.Printf("loaded options from %s", genConfig)
	}
	if cmd.Flags().Changed("compress") {
		opts.Compress = genCompress
	}
	if cmd.Flags().Changed("align") {
		opts.Align = genAlign
	}
	return opts, nil
}
