package merge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brickster241/jitvcs/internal/merge"
)

func TestLinesNoChangesOnEitherSide(t *testing.T) {
	base := []string{"a", "b", "c"}
	got := merge.Lines(base, base, base)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.False(t, merge.HasConflict(got))
}

func TestLinesOnlyBranch1Changed(t *testing.T) {
	base := []string{"a", "b", "c"}
	branch1 := []string{"a", "X", "c"}
	got := merge.Lines(base, branch1, base)
	assert.Equal(t, []string{"a", "X", "c"}, got)
	assert.False(t, merge.HasConflict(got))
}

func TestLinesOnlyBranch2Changed(t *testing.T) {
	base := []string{"a", "b", "c"}
	branch2 := []string{"a", "Y", "c"}
	got := merge.Lines(base, base, branch2)
	assert.Equal(t, []string{"a", "Y", "c"}, got)
	assert.False(t, merge.HasConflict(got))
}

func TestLinesBothChangedDifferentlyProducesConflict(t *testing.T) {
	base := []string{"a", "b", "c"}
	branch1 := []string{"a", "X", "c"}
	branch2 := []string{"a", "Y", "c"}
	got := merge.Lines(base, branch1, branch2)

	assert.Equal(t, []string{
		"a",
		merge.ConflictMarkerStart,
		"X",
		merge.ConflictMarkerMid,
		"Y",
		merge.ConflictMarkerEnd,
		"c",
	}, got)
	assert.True(t, merge.HasConflict(got))
}

func TestLinesBranch1AppendedLineAbsentFromBase(t *testing.T) {
	base := []string{"a"}
	branch1 := []string{"a", "b"}
	got := merge.Lines(base, branch1, base)
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestLinesEmptyBaseNewFilePresentOnBothSides(t *testing.T) {
	branch1 := []string{"shared"}
	branch2 := []string{"shared"}
	got := merge.Lines(nil, branch1, branch2)
	assert.Equal(t, []string{"shared"}, got)
	assert.False(t, merge.HasConflict(got))
}
