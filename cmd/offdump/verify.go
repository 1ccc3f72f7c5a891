package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/rawbytedev/offptr/pkg/snapshot"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file> [file...]",
	Short: "Check the framing and checksums of snapshots",
	Long: `Check every file concurrently: header, checksum, section table and, for
compressed snapshots, that the data region decompresses to its recorded size.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	results := make([]error, len(args))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		g.Go(func() error {
			buf, err := os.ReadFile(path)
			if err == nil {
				err = snapshot.Verify(buf)
			}
			results[i] = err
			return nil
		})
	}
	_ = g.Wait()

	out := cmd.OutOrStdout()
	ok, fail := color.New(color.FgGreen), color.New(color.FgRed, color.Bold)
	failed := 0
	for i, path := range args {
		if err := results[i]; err != nil {
			failed++
			fmt.Fprintf(out, "%s %s: %v\n", fail.Sprint("FAIL"), path, err)
			continue
		}
		logger.Printf("%s verified", path)
		if !quiet {
			fmt.Fprintf(out, "%s   %s\n", ok.Sprint("ok"), path)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(args))
	}
	return nil
}
