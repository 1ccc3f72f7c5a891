package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/offptr/internal/fixtures"
	"github.com/rawbytedev/offptr/pkg/snapshot"
)

// newGenCmd creates a fresh gen command for testing.
func newGenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:  "gen <fixture>",
		Args: cobra.ExactArgs(1),
		RunE: runGen,
	}
	addGenFlags(cmd)
	return cmd
}

func runGenCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newGenCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenCmd_WritesSnapshot(t *testing.T) {
	for _, name := range fixtures.Names {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name+".ofs")
			out, err := runGenCmd(t, name, "-o", path)
			require.NoError(t, err)
			assert.Contains(t, out, "wrote "+path)

			buf, err := os.ReadFile(path)
			require.NoError(t, err)
			require.NoError(t, snapshot.Verify(buf))
		})
	}
}

func TestGenCmd_CircleLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "circle.ofs")
	_, err := runGenCmd(t, "circle", "-o", path, "--compress", "--align")
	require.NoError(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	l, err := fixtures.CircleLayout(snapshot.Options{})
	require.NoError(t, err)
	var c fixtures.CircleOfFifths
	require.NoError(t, l.Decode(buf, &c))
	require.Equal(t, fixtures.NewCircleOfFifths().Keys, c.Keys)
}

func TestGenCmd_ConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(config, []byte("compress: true\nalign: true\n"), 0o600))

	path := filepath.Join(dir, "chain.ofs")
	_, err := runGenCmd(t, "chain", "-o", path, "--config", config, "--compress=false")
	require.NoError(t, err)

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	m, err := snapshot.Inspect(buf)
	require.NoError(t, err)
	assert.False(t, m.Compressed)
	assert.True(t, m.Aligned)
}

func TestGenCmd_Errors(t *testing.T) {
	_, err := runGenCmd(t)
	assert.Error(t, err)

	_, err = runGenCmd(t, "triangle", "-o", filepath.Join(t.TempDir(), "x.ofs"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown fixture")

	_, err = runGenCmd(t, "circle", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}
