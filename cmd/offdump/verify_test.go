package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/offptr/pkg/snapshot"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:  "verify <file> [file...]",
		Args: cobra.MinimumNArgs(1),
		RunE: runVerify,
	}
}

func TestVerifyCmd(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	good := []string{
		writeFixture(t, dir, "circle", snapshot.Options{Compress: true}),
		writeFixture(t, dir, "chain", snapshot.Options{Align: true}),
		writeFixture(t, dir, "document", snapshot.Options{}),
	}

	var buf bytes.Buffer
	cmd := newVerifyCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs(good)
	require.NoError(t, cmd.Execute())
	for _, path := range good {
		assert.Contains(t, buf.String(), "ok   "+path)
	}
}

func TestVerifyCmd_Failure(t *testing.T) {
	color.NoColor = true
	dir := t.TempDir()
	good := writeFixture(t, dir, "chain", snapshot.Options{})

	data, err := os.ReadFile(good)
	require.NoError(t, err)
	data[len(data)-5] ^= 1
	bad := filepath.Join(dir, "bad.ofs")
	require.NoError(t, os.WriteFile(bad, data, 0o600))
	missing := filepath.Join(dir, "missing.ofs")

	var buf bytes.Buffer
	cmd := newVerifyCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{good, bad, missing})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 files failed")

	out := buf.String()
	assert.Contains(t, out, "ok   "+good)
	assert.Contains(t, out, "FAIL "+bad+": snapshot: checksum mismatch")
	assert.Contains(t, out, "FAIL "+missing)
}
