package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cliDoc = `{
  "id": "cli-path",
  "topic": "Shell",
  "items": [
    {"id": "ls", "kind": "flashcard", "question": "List files?", "answer": "ls"},
    {"id": "cd", "kind": "open_ended", "question": "Explain cd"}
  ]
}`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_Workflow(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	doc := filepath.Join(dir, "path.json")
	require.NoError(t, os.WriteFile(doc, []byte(cliDoc), 0o644))
	common := []string{"--db", db, "--user", "tester"}

	out, err := execute(t, "", append([]string{"import", doc}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Path ID: cli-path")

	out, err = execute(t, "", append([]string{"paths"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "cli-path")
	assert.Contains(t, out, "1 paths")

	out, err = execute(t, "", append([]string{"rate", "ls", "good"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "mastery 1")

	_, err = execute(t, "", append([]string{"rate", "nope", "good"}, common...)...)
	assert.Error(t, err)

	out, err = execute(t, "", append([]string{"due", "--count"}, common...)...)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	out, err = execute(t, "", append([]string{"stats", "cli-path"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "learning")
	assert.Contains(t, out, "new")

	out, err = execute(t, "", append([]string{"stats"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "1 reviews")

	out, err = execute(t, "n\n", append([]string{"reset", "cli-path"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	out, err = execute(t, "y\n", append([]string{"reset", "cli-path"}, common...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "Shell"`)

	_, err = execute(t, "", append([]string{"practice", "cli-path"}, common...)...)
	assert.Error(t, err)
}
