package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "c.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := resolveGlobs([]string{filepath.Join(dir, "*.md")})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
	}, files)
}

func TestResolveGlobsRecursive(t *testing.T) {
	dir := t.TempDir()
	library := filepath.Join(dir, "library")
	require.NoError(t, os.MkdirAll(filepath.Join(library, "personas", "archived"), 0o755))
	want := []string{
		filepath.Join(library, "personas", "archived", "old.md"),
		filepath.Join(library, "personas", "coach.md"),
		filepath.Join(library, "top.md"),
	}
	for _, p := range want {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(library, "notes.txt"), []byte("x"), 0o644))

	// ** must span zero directories (top.md) as well as several levels.
	files, err := resolveGlobs([]string{filepath.Join(library, "**", "*.md")})
	require.NoError(t, err)
	assert.Equal(t, want, files)
}

func TestResolveGlobsRecursiveWithDirectorySuffix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "personas"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "b", "skills"), 0o755))
	inPersonas := filepath.Join(dir, "a", "personas", "coach.md")
	inSkills := filepath.Join(dir, "b", "skills", "review.md")
	require.NoError(t, os.WriteFile(inPersonas, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(inSkills, []byte("x"), 0o644))

	files, err := resolveGlobs([]string{filepath.Join(dir, "**", "personas", "*.md")})
	require.NoError(t, err)
	assert.Equal(t, []string{inPersonas}, files)
}

func TestResolveGlobsRecursiveMissingRoot(t *testing.T) {
	files, err := resolveGlobs([]string{filepath.Join(t.TempDir(), "absent", "**", "*.md")})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestResolveGlobsDeduplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	files, err := resolveGlobs([]string{
		filepath.Join(dir, "*.md"),
		path,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveGlobsKeepsMissingLiteralPath(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.md")

	files, err := resolveGlobs([]string{missing})
	require.NoError(t, err)
	// A literal path survives so validation reports it as file_not_found.
	assert.Equal(t, []string{missing}, files)
}

func TestResolveGlobsEmptyPatternMatch(t *testing.T) {
	files, err := resolveGlobs([]string{filepath.Join(t.TempDir(), "*.md")})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestHasGlobMeta(t *testing.T) {
	assert.True(t, hasGlobMeta("library/*.md"))
	assert.True(t, hasGlobMeta("doc?.md"))
	assert.True(t, hasGlobMeta("[ab].md"))
	assert.False(t, hasGlobMeta("library/coach.md"))
}
