package prerequisites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPaths(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "fabric-config.json"), []byte("{}"), 0o600))

	results := CheckPaths(root, []PathCheck{
		{Path: "config", Dir: true, Required: true},
		{Path: "config/fabric-config.json", Required: true},
		{Path: "config/ise-config.json", Required: true},
		{Path: "config", Required: true}, // a directory where a file is expected
		{Path: ".gitignore"},
	})

	found := make([]bool, len(results))
	for i, r := range results {
		found[i] = r.Found
	}
	assert.Equal(t, []bool{true, true, false, false, false}, found)

	err := MissingRequired(results)
	require.Error(t, err)
	assert.Equal(t, "missing required paths: config/ise-config.json, config", err.Error())
}

func TestMissingRequired_None(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MissingRequired([]PathResult{
		{Check: PathCheck{Path: "a", Required: true}, Found: true},
		{Check: PathCheck{Path: "b"}, Found: false},
	}))
}

func TestScanPlaceholders(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hosts.yml")
	require.NoError(t, os.WriteFile(path, []byte("all:\n  hosts:\n    edge1:\n      ansible_host: 10.1.1.10\n"), 0o600))

	warnings, err := ScanPlaceholders(path, DefaultPlaceholders)

	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, 4, warnings[0].Line)
	assert.Contains(t, warnings[0].String(), "hosts.yml:4: contains example address 10.1.1.10")
}

func TestScanPlaceholders_MissingFile(t *testing.T) {
	t.Parallel()
	warnings, err := ScanPlaceholders(filepath.Join(t.TempDir(), "nope.yml"), DefaultPlaceholders)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestCheckGitignore(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	good := filepath.Join(dir, "good")
	require.NoError(t, os.WriteFile(good, []byte(".env\n.vault_pass\n"), 0o600))
	assert.Empty(t, CheckGitignore(good))

	partial := filepath.Join(dir, "partial")
	require.NoError(t, os.WriteFile(partial, []byte(".env\n"), 0o600))
	warnings := CheckGitignore(partial)
	require.Len(t, warnings, 1)
	assert.Equal(t, "should ignore .vault_pass", warnings[0].Message)

	missing := CheckGitignore(filepath.Join(dir, "missing"))
	require.Len(t, missing, 1)
	assert.Equal(t, "not found", missing[0].Message)
}
