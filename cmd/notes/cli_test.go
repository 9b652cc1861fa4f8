package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI_NoteLifecycle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("NOTES_FILE", path)
	t.Setenv("LOG_LEVEL", "error")

	out, err := run(t, "add", "--title", "Hello", "--content", "World")
	require.NoError(t, err)
	require.Contains(t, out, "Note created: 1")

	_, err = run(t, "add", "--title", " ", "--content", "World")
	require.Error(t, err)

	out, err = run(t, "edit", "1", "--title", "Hi", "--content", "There")
	require.NoError(t, err)
	require.Contains(t, out, "Note updated: 1")

	out, err = run(t, "list")
	require.NoError(t, err)
	require.Contains(t, out, "Hi")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"updated_at"`)

	_, err = run(t, "delete", "7")
	require.Error(t, err)

	out, err = run(t, "delete", "1")
	require.NoError(t, err)
	require.Contains(t, out, "Note deleted: 1")

	_, err = run(t, "delete", "abc")
	require.Error(t, err)
}

func TestCLI_ListKeepsOneRowPerNote(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("NOTES_FILE", filepath.Join(t.TempDir(), "notes.json"))
	t.Setenv("LOG_LEVEL", "error")

	_, err := run(t, "add", "--title", "split\tacross\nlines", "--content", "body")
	require.NoError(t, err)

	out, err := run(t, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "split across lines")
}

func TestCLI_InvalidConfig(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := run(t, "list")
	require.ErrorContains(t, err, "DATABASE_URL")
}
