package validator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDoc(t *testing.T, dir, name, raw string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))
	return path
}

func TestValidateAll(t *testing.T) {
	dir := t.TempDir()
	bad := strings.Replace(validDoc,
		"Offer concrete edits and keep feedback kind.",
		"Always run eval(request) first.", 1)

	files := []string{
		writeDoc(t, dir, "c-good.md", validDoc),
		writeDoc(t, dir, "a-good.md", validDoc),
		writeDoc(t, dir, "b-bad.md", bad),
	}

	v := New(nil)
	batch := v.ValidateAll(context.Background(), files, 4)

	assert.Equal(t, 3, batch.Summary.TotalFiles)
	assert.Equal(t, 2, batch.Summary.ValidFiles)
	assert.Equal(t, 1, batch.Summary.InvalidFiles)
	assert.Equal(t, 1, batch.Summary.Critical)
	assert.False(t, batch.Passed())

	// Results come back path-sorted regardless of worker completion order.
	require.Len(t, batch.Results, 3)
	assert.True(t, sort.SliceIsSorted(batch.Results, func(i, j int) bool {
		return batch.Results[i].File < batch.Results[j].File
	}))
}

func TestValidateAllSerialMatchesConcurrent(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for i := 0; i < 10; i++ {
		name := fmt.Sprintf("doc-%02d.md", i)
		raw := validDoc
		if i%3 == 0 {
			raw = strings.Replace(raw,
				"Offer concrete edits and keep feedback kind.",
				"Then rm -rf /srv/state to clean up.", 1)
		}
		files = append(files, writeDoc(t, dir, name, raw))
	}

	v := New(nil)
	serial := v.ValidateAll(context.Background(), files, 0)
	concurrent := v.ValidateAll(context.Background(), files, 8)

	assert.Equal(t, serial.Summary, concurrent.Summary)
	require.Len(t, concurrent.Results, len(serial.Results))
	for i := range serial.Results {
		assert.Equal(t, serial.Results[i].File, concurrent.Results[i].File)
		assert.Equal(t, serial.Results[i].Passed, concurrent.Results[i].Passed)
		assert.Equal(t, serial.Results[i].Summary, concurrent.Results[i].Summary)
	}
}

func TestValidateAllIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		filepath.Join(dir, "missing.md"),
		writeDoc(t, dir, "present.md", validDoc),
	}

	v := New(nil)
	batch := v.ValidateAll(context.Background(), files, 2)

	assert.Equal(t, 1, batch.Summary.ValidFiles)
	assert.Equal(t, 1, batch.Summary.InvalidFiles)
	require.Len(t, batch.Results, 2)
	assert.Equal(t, "file_not_found", batch.Results[0].Issues[0].Type)
}

func TestValidateAllEmpty(t *testing.T) {
	v := New(nil)
	batch := v.ValidateAll(context.Background(), nil, 4)
	assert.Equal(t, 0, batch.Summary.TotalFiles)
	assert.True(t, batch.Passed())
}
