package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacmar/portfolio/internal/content"
	"github.com/vacmar/portfolio/internal/roadmap"
)

// execute runs the command tree with args and returns what it printed.
// Flag values are reset afterwards since the tree is shared.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestCommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "render", "roadmap", "content"} {
		assert.True(t, names[want], "missing %q subcommand", want)
	}

	for _, flag := range []string{"config", "verbose", "content"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestRender_ProjectsToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "roadmap.svg")
	_, err := execute(t, "render", "--filter", "project", "--reveal", "all", "--touch", "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	svg := string(data)

	assert.True(t, strings.HasPrefix(svg, "<?xml"))
	assert.Equal(t, 3, strings.Count(svg, `class="roadmap-node revealed"`))
	assert.Contains(t, svg, `data-node-id="7"`)
	assert.NotContains(t, svg, `data-node-id="1"`)
	assert.Contains(t, svg, ">Elevatr</text>")
}

func TestRender_NoneRevealedToStdout(t *testing.T) {
	out, err := execute(t, "render", "--reveal", "none")
	require.NoError(t, err)

	assert.Equal(t, 13, strings.Count(out, `class="roadmap-node"`))
	assert.NotContains(t, out, "revealed")
	assert.NotContains(t, out, `class="roadmap-label"`)
}

func TestRender_RejectsBadFlags(t *testing.T) {
	_, err := execute(t, "render", "--filter", "hobbies")
	require.ErrorIs(t, err, roadmap.ErrUnknownFilter)

	_, err = execute(t, "render", "--reveal", "some")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--reveal")
}

// failingClose accepts writes and fails on Close.
type failingClose struct{ bytes.Buffer }

func (*failingClose) Close() error { return errors.New("disk full") }

func TestRender_ReportsCloseError(t *testing.T) {
	orig := createFile
	t.Cleanup(func() { createFile = orig })
	var got *failingClose
	createFile = func(string) (io.WriteCloser, error) {
		got = &failingClose{}
		return got, nil
	}

	_, err := execute(t, "render", "-o", "frame.svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "close frame.svg")
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, got)
	assert.Contains(t, got.String(), "<svg")
}

func TestContentExport_SQLiteThenYAML(t *testing.T) {
	db := filepath.Join(t.TempDir(), "roadmap.db")
	_, err := execute(t, "content", "export", "--sqlite", db)
	require.NoError(t, err)

	store, err := content.LoadRoadmap(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 13, store.Len())

	out, err := execute(t, "content", "export", "--from", db, "--yaml")
	require.NoError(t, err)
	nodes, err := content.ParseRoadmapYAML([]byte(out))
	require.NoError(t, err)
	require.Len(t, nodes, 13)
	assert.Equal(t, "Frontend Foundations", nodes[0].Title)
}

func TestContentExport_NeedsTarget(t *testing.T) {
	_, err := execute(t, "content", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to export")
}

func TestSetup_ReportsBadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [not, a, port"), 0o600))

	_, err := execute(t, "render", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
