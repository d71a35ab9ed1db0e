package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rmi-forms/internal/schema"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything it printed.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	os.Stdout = old
	buf := make([]byte, 64*1024)
	n, _ := r.Read(buf)
	r.Close()
	return string(buf[:n]), runErr
}

func TestNewWritesSnapshot(t *testing.T) {
	out := filepath.Join(t.TempDir(), "cmrt.json")
	_, err := captureStdout(t, func() error {
		return RunNew(context.Background(), []string{"--template", "cmrt", "-o", out})
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	snap, err := schema.ParseSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, "6.5", snap.VersionID)
	assert.Equal(t, "en-US", snap.Locale)
	assert.Equal(t, []string{"tantalum", "tin", "gold", "tungsten"}, snap.Data.SelectedMinerals)
}

func TestNewRejectsUnknownTemplate(t *testing.T) {
	_, err := captureStdout(t, func() error {
		return RunNew(context.Background(), []string{"--template", "xyz"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestCheckReportsMissingItems(t *testing.T) {
	out := filepath.Join(t.TempDir(), "crt.json")
	_, err := captureStdout(t, func() error {
		return RunNew(context.Background(), []string{"--template", "crt", "-o", out})
	})
	require.NoError(t, err)

	output, err := captureStdout(t, func() error {
		return RunCheck(context.Background(), []string{out, "--summary"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required items missing")
	assert.Contains(t, output, "completion")
}

func TestVersionsListsFamilies(t *testing.T) {
	output, err := captureStdout(t, func() error {
		return RunVersions(context.Background(), []string{"--template", "emrt"})
	})
	require.NoError(t, err)
	assert.Contains(t, output, "emrt (default 2.1):")
	assert.Contains(t, output, "2.0")
	assert.False(t, strings.Contains(output, "cmrt"))
}

func TestVersionsRejectsUnknownFormat(t *testing.T) {
	_, err := captureStdout(t, func() error {
		return RunVersions(context.Background(), []string{"--format", "toml"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
