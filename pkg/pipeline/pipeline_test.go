package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/rowminer/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, DefaultMaxNumber, opts.MaxNumber)
	assert.Equal(t, DefaultRowLength, opts.RowLength)
	assert.Equal(t, DefaultGenerate, opts.Generate)
	assert.Equal(t, DefaultSeed, opts.Seed)
	assert.Equal(t, DefaultStore, opts.Store)
	assert.Nil(t, opts.Logger)
	assert.Equal(t, "7/40", opts.Config().String())
}

func TestValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"row longer than universe", Options{MaxNumber: 5, RowLength: 6}, errors.ErrCodeInvalidConfiguration},
		{"two sources", Options{Input: "a.txt", Generate: 3}, errors.ErrCodeInvalidInput},
		{"negative generate", Options{Generate: -1}, errors.ErrCodeInvalidInput},
		{"negative workers", Options{Workers: -2}, errors.ErrCodeInvalidInput},
		{"negative limit", Options{Limit: -1}, errors.ErrCodeInvalidInput},
		{"unknown store", Options{Store: "btree"}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestValidateAndSetDefaults_InlineRowsSkipGenerator(t *testing.T) {
	opts := Options{MaxNumber: 5, RowLength: 3, Rows: [][]int{{1, 2, 4}}}
	require.NoError(t, opts.ValidateAndSetDefaults())
	assert.Zero(t, opts.Generate)
	assert.Equal(t, "inline", opts.Source())
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rowminer.toml")
	content := `
max_number = 49
row_length = 6
input = "draws.txt"
workers = 4
limit = 100
store = "sparse"
concurrent = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	opts, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 49, opts.MaxNumber)
	assert.Equal(t, 6, opts.RowLength)
	assert.Equal(t, "draws.txt", opts.Input)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, 100, opts.Limit)
	assert.Equal(t, "sparse", opts.Store)
	assert.True(t, opts.Concurrent)
}

func TestLoadOptions_Errors(t *testing.T) {
	dir := t.TempDir()

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("max_numbr = 5\n"), 0644))
	_, err := LoadOptions(unknown)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("max_number = \n"), 0644))
	_, err = LoadOptions(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	_, err = LoadOptions("")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath), "got %v", err)
}

func TestOptionsMerge(t *testing.T) {
	base := Options{MaxNumber: 49, RowLength: 6, Input: "draws.txt", Workers: 4}
	base.Merge(Options{RowLength: 5, Generate: 10, Limit: 3})

	assert.Equal(t, 49, base.MaxNumber)
	assert.Equal(t, 5, base.RowLength)
	assert.Empty(t, base.Input, "a new source replaces the old one")
	assert.Equal(t, 10, base.Generate)
	assert.Equal(t, 4, base.Workers)
	assert.Equal(t, 3, base.Limit)
}
