package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
name: demo
tasks:
  - name: a
    run: "true"
  - name: c
    run: "true"
    requires: [a]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGraphCommand_Text(t *testing.T) {
	path := writeManifest(t, testManifest)

	out, err := execute(t, "graph", path)
	require.NoError(t, err)

	assert.Contains(t, out, `Pipeline "demo" (2 tasks)`)
	assert.Contains(t, out, "requires a")
}

func TestGraphCommand_DOT(t *testing.T) {
	path := writeManifest(t, testManifest)

	out, err := execute(t, "graph", "--format", "dot", path)
	require.NoError(t, err)

	assert.Contains(t, out, "digraph pipeline {")
	assert.Contains(t, out, `"a" -> "c";`)
}

func TestGraphCommand_UnknownFormat(t *testing.T) {
	path := writeManifest(t, testManifest)

	_, err := execute(t, "graph", "--format", "svg", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown graph format "svg"`)
}

func TestGraphCommand_MissingManifest(t *testing.T) {
	_, err := execute(t, "graph", filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
}

func TestRunCommand_InvalidManifest(t *testing.T) {
	path := writeManifest(t, "name: demo\n")

	_, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declares no tasks")
}
