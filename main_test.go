package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyguide/internal/config"
	"studyguide/internal/export"
	"studyguide/internal/state"
)

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	data := `
storage:
  backend: sqlite
  dir: ` + filepath.Join(dir, "data") + `
export:
  dir: ` + filepath.Join(dir, "exports") + `
print:
  command: ""
`
	path := filepath.Join(dir, "studyguide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runAppWithStderr(t, args...)
	return out, err
}

func runAppWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err := app.Run(state.ContextWithEnv(context.Background()), append([]string{config.AppName}, args...))
	return out.String(), errOut.String(), err
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	out, err := runApp(t, "--config", cfg, "export")
	require.NoError(t, err)

	path := filepath.Join(dir, "exports", export.FileName)
	assert.Equal(t, path, strings.TrimSpace(out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, []any{}, snap["reviewed"])
	assert.Equal(t, []any{}, snap["favorites"])
	assert.Contains(t, snap, "exportDate")

	// log goes to storage directory by default
	assert.FileExists(t, filepath.Join(dir, "data", "studyguide.log"))
}

func TestExportCommand_ToDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	target := filepath.Join(dir, "elsewhere")

	out, err := runApp(t, "--config", cfg, "export", target)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(target, export.FileName), strings.TrimSpace(out))
	assert.FileExists(t, filepath.Join(target, export.FileName))
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	dest := filepath.Join(dir, "dump.yaml")

	_, err := runApp(t, "--config", cfg, "dumpconfig", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.Contains(t, string(data), filepath.Join(dir, "exports"))
}

func TestDumpConfig_Default(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	dest := filepath.Join(dir, "default.yaml")

	_, err := runApp(t, "--config", cfg, "dumpconfig", "--default", dest)
	require.NoError(t, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")
}

func TestBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: floppy\n"), 0o644))

	_, stderr, err := runAppWithStderr(t, "--config", path, "export")
	require.Error(t, err)
	assert.Contains(t, stderr, "Program ended with error")
	assert.Contains(t, stderr, "unable to prepare configuration")
	assert.Contains(t, stderr, "Backend")
}

func TestMissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")

	_, stderr, err := runAppWithStderr(t, "--config", path, "export")
	require.Error(t, err)
	assert.Contains(t, stderr, "failed to read config file")
}

func TestExportCommand_FailureIsReported(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	// a regular file where the export directory should be
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	out, stderr, err := runAppWithStderr(t, "--config", cfg, "export", filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "Program ended with error")

	// the file log gets it too
	data, rerr := os.ReadFile(filepath.Join(dir, "data", "studyguide.log"))
	require.NoError(t, rerr)
	assert.Contains(t, string(data), "Program ended with error")
}

func TestSuccessWritesNothingToStderr(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	_, stderr, err := runAppWithStderr(t, "--config", cfg, "export")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}
