package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadSelectionKeepsOrderAndDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.txt")
	require.NoError(t, os.WriteFile(path, []byte("c3\n# skip\n\n  c1  \n"), 0o644))

	sel, err := readSelection(strings.NewReader(""), []string{"c1", " ", "c2"}, path)
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c2", "c3", "c1"}, sel.IDs())
}

func TestReadSelectionMissingFile(t *testing.T) {
	_, err := readSelection(strings.NewReader(""), nil, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open ids file")
}

func TestParseAssignments(t *testing.T) {
	fields, err := parseAssignments([]string{"status=sold", "note=a=b", "tier="})
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"status": "sold", "note": "a=b", "tier": ""}, fields)

	_, err = parseAssignments([]string{"=x"})
	require.Error(t, err)
	_, err = parseAssignments([]string{"novalue"})
	require.Error(t, err)
}
