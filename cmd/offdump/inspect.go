package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/offptr/pkg/snapshot"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect <file> [file...]",
	Short: "Print the header and section table of snapshots",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVar(&inspectFormat, "format", "yaml", "Output format: yaml or text")
}

// inspected is one file's manifest as printed by inspect.
type inspected struct {
	File     string            `yaml:"file"`
	Manifest snapshot.Manifest `yaml:"manifest"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFormat != "yaml" && inspectFormat != "text" {
		return fmt.Errorf("unknown format %q (want yaml or text)", inspectFormat)
	}
	var all []inspected
	for _, path := range args {
		buf, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		m, err := snapshot.Inspect(buf)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		logger.Printf("%s: %d sections", path, len(m.Sections))
		all = append(all, inspected{File: path, Manifest: m})
	}

	out := cmd.OutOrStdout()
	if inspectFormat == "text" {
		s := newStyles(!color.NoColor)
		for _, in := range all {
			writeText(out, s, in)
		}
		return nil
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(all); err != nil {
		return err
	}
	return enc.Close()
}

// styles holds the color formatters of the text format.
type styles struct {
	file    *color.Color
	heading *color.Color
	name    *color.Color
}

func newStyles(enabled bool) *styles {
	s := &styles{
		file:    color.New(color.Bold, color.FgHiWhite),
		heading: color.New(color.Bold),
		name:    color.New(color.FgHiBlue),
	}
	if !enabled {
		s.file.DisableColor()
		s.heading.DisableColor()
		s.name.DisableColor()
	}
	return s
}

func writeText(w io.Writer, s *styles, in inspected) {
	m := in.Manifest
	s.file.Fprintf(w, "%s\n", in.File)
	fmt.Fprintf(w, "  %s v%d, schema 0x%x, %d bytes\n", s.heading.Sprint("snapshot"), m.Version, m.SchemaID, m.Size)
	fmt.Fprintf(w, "  %s %d stored, %d raw", s.heading.Sprint("data"), m.DataBytes, m.RawBytes)
	if m.Compressed {
		fmt.Fprint(w, ", zstd")
	}
	if m.Aligned {
		fmt.Fprint(w, ", aligned")
	}
	fmt.Fprintln(w)
	for _, sec := range m.Sections {
		fmt.Fprintf(w, "  %-12s %6d x %3d B at %d\n", s.name.Sprint(sec.Name), sec.Count, sec.ElemSize, sec.Offset)
	}
}
