package collector

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/arthur-debert/fnr/pkg/errors"
	"github.com/arthur-debert/fnr/pkg/filesystem"
	"github.com/arthur-debert/fnr/pkg/testutil"
	"github.com/arthur-debert/fnr/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sortedPaths(matches []types.Match) []string {
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = m.Path
	}
	sort.Strings(paths)
	return paths
}

func TestCollect_LiteralRename(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "foo.txt", "")
	testutil.CreateFile(t, dir, "other.txt", "")
	testutil.CreateFile(t, dir, "sub/foo-notes.md", "")

	matches, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern: types.PatternConfig{Pattern: "foo", Replacement: "qux", HasReplace: true},
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	byName := map[string]types.Match{}
	for _, m := range matches {
		byName[m.NewName] = m
	}
	assert.Contains(t, byName, "qux.txt")
	assert.Contains(t, byName, "qux-notes.md")

	for _, m := range matches {
		assert.Equal(t, "foo", m.Pattern)
		assert.Equal(t, "qux", m.Replacement)
		assert.False(t, m.IsDir)
	}
}

func TestCollect_MatchesDirectories(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "bar/baz.txt", "")

	matches, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern: types.PatternConfig{Pattern: "bar", Replacement: "qux", HasReplace: true},
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsDir)
	assert.Equal(t, "qux", matches[0].NewName)
}

func TestCollect_GlobFilter(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "foo.txt", "")
	testutil.CreateFile(t, dir, "foo.log", "")
	testutil.CreateFile(t, dir, "sub/foo.txt", "")

	matches, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern: types.PatternConfig{Pattern: "foo"},
		Globs:   []string{"**/*.txt"},
	})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
	for _, m := range matches {
		assert.NotContains(t, m.Path, ".log")
	}
}

func TestCollect_TypeFilter(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "foo/foo.txt", "")

	matches, err := Collect(filesystem.NewOS(), Options{
		Walker:   types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern:  types.PatternConfig{Pattern: "foo"},
		FileType: types.FileTypeDir,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].IsDir)

	matches, err = Collect(filesystem.NewOS(), Options{
		Walker:   types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern:  types.PatternConfig{Pattern: "foo"},
		FileType: types.FileTypeFile,
	})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.False(t, matches[0].IsDir)
}

func TestCollect_InvalidPatternFailsBeforeWalk(t *testing.T) {
	// The base dir does not exist; a compile failure must be reported
	// before traversal is even attempted.
	_, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: "/does/not/exist", Recursive: true},
		Pattern: types.PatternConfig{Pattern: "(unbalanced", Regex: true},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidPattern))
}

func TestCollect_InvalidGlobFailsBeforeWalk(t *testing.T) {
	_, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: "/does/not/exist", Recursive: true},
		Pattern: types.PatternConfig{Pattern: "foo"},
		Globs:   []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidGlob))
}

func TestCollect_SearchIsIdempotent(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "foo.txt", "")
	testutil.CreateFile(t, dir, "sub/foo.md", "")

	opts := Options{
		Walker:  types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern: types.PatternConfig{Pattern: "foo"},
	}

	first, err := Collect(filesystem.NewOS(), opts)
	require.NoError(t, err)
	second, err := Collect(filesystem.NewOS(), opts)
	require.NoError(t, err)

	assert.Equal(t, sortedPaths(first), sortedPaths(second))
	for _, m := range first {
		// Search mode keeps the original name.
		assert.Equal(t, filepath.Base(m.Path), m.NewName)
	}
}

func TestCollect_EmptyBatch(t *testing.T) {
	dir := testutil.TempDir(t)
	testutil.CreateFile(t, dir, "unrelated.txt", "")

	matches, err := Collect(filesystem.NewOS(), Options{
		Walker:  types.WalkerConfig{BaseDir: dir, Recursive: true},
		Pattern: types.PatternConfig{Pattern: "nomatch"},
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}
