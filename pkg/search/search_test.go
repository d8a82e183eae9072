package search

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/browsey/browsey/pkg/logging"
)

func newTestLogger() *logging.Logger {
	return logging.NewRoot(logging.LevelDisabled, false)
}

type starSet map[string]bool

func (s starSet) IsStarred(path string) bool { return s[path] }

func collect(t *testing.T, start, query string, stars StarredLookup, cancel *atomic.Bool) []Progress {
	t.Helper()
	var batches []Progress
	Stream(start, query, stars, cancel, newTestLogger(), func(p Progress) {
		batches = append(batches, p)
	})
	return batches
}

func TestStreamFindsMatchingEntriesCaseInsensitively(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Report.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))

	batches := collect(t, dir, "report", nil, nil)
	require.NotEmpty(t, batches)

	var found []string
	for _, b := range batches {
		for _, e := range b.Entries {
			found = append(found, e.Name)
		}
	}
	assert.Contains(t, found, "Report.txt")
	assert.NotContains(t, found, "other.txt")

	last := batches[len(batches)-1]
	assert.True(t, last.Done)
}

func TestStreamRecursesIntoSubdirectories(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "needle.txt"), []byte("x"), 0644))

	batches := collect(t, dir, "needle", nil, nil)
	var found []string
	for _, b := range batches {
		for _, e := range b.Entries {
			found = append(found, e.Path)
		}
	}
	assert.Contains(t, found, filepath.Join(nested, "needle.txt"))
}

func TestStreamEmptyQueryYieldsImmediateDone(t *testing.T) {
	dir := t.TempDir()
	batches := collect(t, dir, "   ", nil, nil)
	require.Len(t, batches, 1)
	assert.True(t, batches[0].Done)
	assert.Empty(t, batches[0].Entries)
}

func TestStreamDecoratesStarredEntries(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gem.txt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0644))

	stars := starSet{target: true}
	batches := collect(t, dir, "gem", stars, nil)

	var entry *Entry
	for _, b := range batches {
		for i := range b.Entries {
			if b.Entries[i].Path == target {
				entry = &b.Entries[i]
			}
		}
	}
	require.NotNil(t, entry)
	assert.True(t, entry.Starred)
}

func TestStreamCancelledStopsEarlyWithDoneBatch(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "match"+string(rune('a'+i))+".txt"), []byte("x"), 0644))
	}

	cancel := &atomic.Bool{}
	cancel.Store(true)

	batches := collect(t, dir, "match", nil, cancel)
	require.NotEmpty(t, batches)
	assert.True(t, batches[len(batches)-1].Done)
	assert.Empty(t, batches[len(batches)-1].Entries)
}

func TestStreamSkipsUnreadableSubdirectory(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are meaningless when running as root")
	}

	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.MkdirAll(locked, 0000))
	defer os.Chmod(locked, 0755)

	visible := filepath.Join(dir, "visible")
	require.NoError(t, os.MkdirAll(visible, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(visible, "query.txt"), []byte("x"), 0644))

	batches := collect(t, dir, "query", nil, nil)
	var found []string
	for _, b := range batches {
		for _, e := range b.Entries {
			found = append(found, e.Path)
		}
	}
	assert.Contains(t, found, filepath.Join(visible, "query.txt"))
}
