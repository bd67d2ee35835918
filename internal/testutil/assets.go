// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssetTree creates a fresh temporary asset root and populates it. Each path
// is relative to the root; paths ending in "/" become empty directories and
// everything else becomes a small regular file. It returns the root.
func AssetTree(t *testing.T, paths ...string) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "FBXs")
	require.NoError(t, os.Mkdir(root, 0755))
	AddAssets(t, root, paths...)
	return root
}

// AddAssets creates the given paths under an existing root, using the same
// conventions as AssetTree.
func AddAssets(t *testing.T, root string, paths ...string) {
	t.Helper()

	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("model"), 0644))
	}
}

// ReadManifest decodes a JSON manifest file into a string slice.
func ReadManifest(t *testing.T, path string) []string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var list []string
	require.NoError(t, json.Unmarshal(data, &list), "manifest is not a JSON string array: %s", data)
	return list
}
