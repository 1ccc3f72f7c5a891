package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/offptr/internal/fixtures"
	"github.com/rawbytedev/offptr/pkg/snapshot"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "inspect <file> [file...]",
		Args: cobra.MinimumNArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().StringVar(&inspectFormat, "format", "yaml", "Output format: yaml or text")
	return cmd
}

func writeFixture(t *testing.T, dir, name string, opts snapshot.Options) string {
	t.Helper()
	buf, err := fixtures.Encode(name, opts)
	require.NoError(t, err)
	path := filepath.Join(dir, name+".ofs")
	require.NoError(t, os.WriteFile(path, buf, 0o600))
	return path
}

func TestInspectCmd_YAML(t *testing.T) {
	dir := t.TempDir()
	circle := writeFixture(t, dir, "circle", snapshot.Options{Compress: true})
	chain := writeFixture(t, dir, "chain", snapshot.Options{})

	var buf bytes.Buffer
	cmd := newInspectCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{circle, chain})
	require.NoError(t, cmd.Execute())

	var got []inspected
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, circle, got[0].File)
	assert.True(t, got[0].Manifest.Compressed)
	assert.Equal(t, fixtures.CircleSchema, got[0].Manifest.SchemaID)
	require.Len(t, got[1].Manifest.Sections, 2)
	assert.Equal(t, "bars", got[1].Manifest.Sections[1].Name)
}

func TestInspectCmd_Text(t *testing.T) {
	path := writeFixture(t, t.TempDir(), "document", snapshot.Options{Align: true})

	var buf bytes.Buffer
	cmd := newInspectCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--format", "text", path})
	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, path)
	assert.Contains(t, out, "aligned")
	assert.Contains(t, out, "words")
	assert.Contains(t, out, "text")
}

func TestInspectCmd_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "chain", snapshot.Options{})

	cmd := newInspectCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--format", "json", path})
	assert.ErrorContains(t, cmd.Execute(), "unknown format")

	junk := filepath.Join(dir, "junk.ofs")
	require.NoError(t, os.WriteFile(junk, []byte("not a snapshot"), 0o600))
	cmd = newInspectCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{junk})
	err := cmd.Execute()
	require.ErrorIs(t, err, snapshot.ErrShortBuffer)
}
