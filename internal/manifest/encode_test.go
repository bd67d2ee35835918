package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		list     ModelList
		format   Format
		expected string
	}{
		{
			name:     "json two entries",
			list:     ModelList{"ModelA", "ModelB"},
			format:   FormatJSON,
			expected: "[\n  \"ModelA\",\n  \"ModelB\"\n]",
		},
		{
			name:     "json nil list is an empty array",
			list:     nil,
			format:   FormatJSON,
			expected: "[]",
		},
		{
			name:     "json keeps utf-8 and html characters",
			list:     ModelList{"Stühle", "A&B<C>"},
			format:   FormatJSON,
			expected: "[\n  \"Stühle\",\n  \"A&B<C>\"\n]",
		},
		{
			name:     "yaml sequence",
			list:     ModelList{"ModelA", "ModelB"},
			format:   FormatYAML,
			expected: "- ModelA\n- ModelB\n",
		},
		{
			name:     "yaml empty",
			list:     ModelList{},
			format:   FormatYAML,
			expected: "[]\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Encode(tc.list, tc.format)

			require.NoError(t, err)
			assert.Equal(t, tc.expected, string(got))
		})
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := Encode(ModelList{"A"}, "toml")

	require.Error(t, err)
}

func TestWrite_MissingDirectoryIsNotCreated(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing", "modelList.json")

	err := Write(path, ModelList{"A"}, FormatJSON)

	require.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, filepath.Dir(path))
}

func TestWrite_TruncatesLongerContent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "modelList.json")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0644))

	require.NoError(t, Write(path, ModelList{}, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
