package diff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brickster241/jitvcs/internal/diff"
)

func texts(lines []diff.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return out
}

func TestLinesNoChange(t *testing.T) {
	lines := diff.Lines([]string{"a", "b"}, []string{"a", "b"})
	assert.Equal(t, []string{"  a", "  b"}, texts(lines))
}

func TestLinesPureInsertion(t *testing.T) {
	lines := diff.Lines([]string{"a"}, []string{"a", "b"})
	assert.Equal(t, []string{"  a", "+ b"}, texts(lines))
}

func TestLinesPureDeletion(t *testing.T) {
	lines := diff.Lines([]string{"a", "b"}, []string{"a"})
	assert.Equal(t, []string{"  a", "- b"}, texts(lines))
}

func TestLinesMixedChange(t *testing.T) {
	lines := diff.Lines(
		[]string{"one", "two", "three"},
		[]string{"one", "three", "four"},
	)
	assert.Equal(t, []string{"  one", "- two", "  three", "+ four"}, texts(lines))
}

func TestLinesEmptyInputs(t *testing.T) {
	assert.Empty(t, diff.Lines(nil, nil))
}
