package index_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/jitvcs/internal/index"
)

func TestSerializeParseRoundTrip(t *testing.T) {
	now := time.Date(2026, 8, 3, 10, 30, 0, 0, time.UTC)
	c := index.New()
	c.Stage(map[string]string{
		"a.txt":        "1111111111111111111111111111111111111111",
		"dir/b.txt":    "2222222222222222222222222222222222222222",
		"zzzlast.json": "3333333333333333333333333333333333333333",
	}, now)

	data := c.Serialize()
	parsed, err := index.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, len(c.Files), parsed.Meta.Entries)
	require.Len(t, parsed.Files, 3)
	for path, f := range c.Files {
		got, ok := parsed.Files[path]
		require.True(t, ok, "missing entry for %s", path)
		assert.Equal(t, f.Checksum, got.Checksum)
		assert.True(t, f.AdditionDate.Equal(got.AdditionDate))
		assert.True(t, f.LastModified.Equal(got.LastModified))
		assert.Equal(t, f.IsDirty, got.IsDirty)
		assert.Equal(t, f.IsNew, got.IsNew)
	}
}

func TestStageNewFileMarksDirtyAndNew(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	c := index.New()
	mutated := c.Stage(map[string]string{"a.txt": "deadbeef"}, now)

	assert.True(t, mutated)
	assert.True(t, c.Meta.IsDirty)
	f := c.Files["a.txt"]
	assert.True(t, f.IsNew)
	assert.True(t, f.IsDirty)
}

func TestStageIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	c := index.New()
	c.Stage(map[string]string{"a.txt": "deadbeef"}, now)
	c.PrepareCommit(now)

	later := now.Add(time.Hour)
	mutated := c.Stage(map[string]string{"a.txt": "deadbeef"}, later)

	assert.False(t, mutated)
	assert.False(t, c.Meta.IsDirty)
	assert.False(t, c.Files["a.txt"].IsDirty)
}

func TestStageChangedFileClearsIsNew(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	c := index.New()
	c.Stage(map[string]string{"a.txt": "aaaa"}, now)
	c.PrepareCommit(now)

	later := now.Add(time.Hour)
	mutated := c.Stage(map[string]string{"a.txt": "bbbb"}, later)

	assert.True(t, mutated)
	f := c.Files["a.txt"]
	assert.False(t, f.IsNew)
	assert.True(t, f.IsDirty)
	assert.Equal(t, "bbbb", f.Checksum)
}

func TestPrepareCommitClearsDirtyFlags(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	c := index.New()
	c.Stage(map[string]string{"a.txt": "aaaa", "b.txt": "bbbb"}, now)

	c.PrepareCommit(now.Add(time.Minute))

	assert.False(t, c.Meta.IsDirty)
	for _, f := range c.Files {
		assert.False(t, f.IsDirty)
		assert.False(t, f.IsNew)
	}
}

func TestStageLeavesUntouchedEntriesAlone(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	c := index.New()
	c.Stage(map[string]string{"a.txt": "aaaa", "b.txt": "bbbb"}, now)
	c.PrepareCommit(now)

	later := now.Add(time.Hour)
	c.Stage(map[string]string{"a.txt": "cccc"}, later)

	// b.txt wasn't part of this scan; it must remain tracked, unchanged.
	b := c.Files["b.txt"]
	assert.Equal(t, "bbbb", b.Checksum)
	assert.False(t, b.IsDirty)
}
