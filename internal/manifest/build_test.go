package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/modelmanifest/internal/ctxlog"
	"github.com/specialistvlad/modelmanifest/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionsFor(root string) Options {
	opts := DefaultOptions()
	opts.AssetRoot = root
	return opts
}

func TestBuild_MixedAssetRoot(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.AssetTree(t,
		"Chair/Chair.fbx",
		"Table/table_v2.fbx",
		"notes.txt",
	)
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	res, err := Build(ctx, optionsFor(root))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, filepath.Join(root, DefaultOutputName), res.Path)
	assert.Equal(t, []string{"Chair"}, testutil.ReadManifest(t, res.Path))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "[\n  \"Chair\"\n]", string(data))
}

func TestBuild_EmptyAssetRoot(t *testing.T) {
	t.Parallel()

	root := testutil.AssetTree(t)
	ctx := ctxlog.Discard(context.Background())

	res, err := Build(ctx, optionsFor(root))

	require.NoError(t, err)
	assert.Equal(t, 0, res.Count)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestBuild_MissingAssetRootWritesNothing(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	parent := t.TempDir()
	root := filepath.Join(parent, "FBXs")
	ctx := ctxlog.Discard(context.Background())

	// --- Act ---
	res, err := Build(ctx, optionsFor(root))

	// --- Assert ---
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, res)

	entries, readErr := os.ReadDir(parent)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "no output file or directory may be created")
}

func TestBuild_UnwritableManifestPath(t *testing.T) {
	t.Parallel()

	// A directory occupying the manifest path makes the write fail.
	root := testutil.AssetTree(t, "Chair/Chair.fbx", DefaultOutputName+"/")
	ctx := ctxlog.Discard(context.Background())

	_, err := Build(ctx, optionsFor(root))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create manifest")
}

func TestBuild_InvalidOptions(t *testing.T) {
	t.Parallel()

	opts := optionsFor(testutil.AssetTree(t))
	opts.Format = "xml"

	_, err := Build(ctxlog.Discard(context.Background()), opts)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid manifest options")
}

func TestBuild_OverwritesExistingManifest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.AssetTree(t, "Lamp/Lamp.fbx")
	manifestPath := filepath.Join(root, DefaultOutputName)
	stale := `["Ghost", "Lamp", {"not": "a string"}, "padding to make the old file longer than the new one"]`
	require.NoError(t, os.WriteFile(manifestPath, []byte(stale), 0644))

	// --- Act ---
	res, err := Build(ctxlog.Discard(context.Background()), optionsFor(root))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
	assert.Equal(t, []string{"Lamp"}, testutil.ReadManifest(t, manifestPath))
}

func TestBuild_IdempotentUnderStaticInput(t *testing.T) {
	t.Parallel()

	root := testutil.AssetTree(t, "A/A.fbx", "B/B.fbx", "C/C.fbx", "D/", "e.fbx")
	ctx := ctxlog.Discard(context.Background())
	opts := optionsFor(root)

	first, err := Build(ctx, opts)
	require.NoError(t, err)
	firstBytes, err := os.ReadFile(first.Path)
	require.NoError(t, err)

	second, err := Build(ctx, opts)
	require.NoError(t, err)
	secondBytes, err := os.ReadFile(second.Path)
	require.NoError(t, err)

	assert.Equal(t, first.Count, second.Count)
	assert.Equal(t, string(firstBytes), string(secondBytes))
}

func TestBuild_CorrectnessAndCompleteness(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	root := testutil.AssetTree(t,
		"Alpha/Alpha.fbx",
		"Beta/Beta.fbx",
		"Beta/extra.fbx",
		"Gamma/Gamma.obj",
		"Delta/Nested/Delta.fbx",
		"Epsilon/Epsilon.fbx/",
		"Zeta/Zeta.fbx",
		"stray.fbx",
		"Alpha.fbx",
	)

	// --- Act ---
	res, err := Build(ctxlog.Discard(context.Background()), optionsFor(root))
	require.NoError(t, err)

	// --- Assert ---
	got := testutil.ReadManifest(t, res.Path)
	want := []string{"Alpha", "Beta", "Zeta"}
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}

	for _, id := range got {
		info, err := os.Stat(filepath.Join(root, id))
		require.NoError(t, err)
		assert.True(t, info.IsDir(), "%s must be a directory", id)

		info, err = os.Stat(filepath.Join(root, id, id+".fbx"))
		require.NoError(t, err)
		assert.True(t, info.Mode().IsRegular(), "%s.fbx must be a regular file", id)
	}
}

func TestBuild_YAMLOutput(t *testing.T) {
	t.Parallel()

	root := testutil.AssetTree(t, "Chair/Chair.fbx", "Table/Table.fbx")
	opts := optionsFor(root)
	opts.Format = FormatYAML
	opts.Output = "models.yaml"
	opts.Sort = true

	res, err := Build(ctxlog.Discard(context.Background()), opts)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "models.yaml"), res.Path)
	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "- Chair\n- Table\n", string(data))
}

func TestBuild_AbsoluteOutputOutsideRoot(t *testing.T) {
	t.Parallel()

	root := testutil.AssetTree(t, "Chair/Chair.fbx")
	out := filepath.Join(t.TempDir(), "list.json")
	opts := optionsFor(root)
	opts.Output = out

	res, err := Build(ctxlog.Discard(context.Background()), opts)

	require.NoError(t, err)
	assert.Equal(t, out, res.Path)
	assert.Equal(t, []string{"Chair"}, testutil.ReadManifest(t, out))
	assert.NoFileExists(t, filepath.Join(root, DefaultOutputName))
}
