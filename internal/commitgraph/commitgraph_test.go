package commitgraph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/jitvcs/internal/commitgraph"
)

func mkCommit(checksum, branch string, t time.Time, parents ...string) commitgraph.Commit {
	return commitgraph.Commit{
		Checksum:   checksum,
		Message:    "msg " + checksum,
		BranchName: branch,
		Author:     "tester",
		Timestamp:  t,
		Parents:    parents,
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	g := commitgraph.New()
	g.Add(mkCommit("c1", "main", base))
	g.Add(mkCommit("c2", "main", base.Add(time.Hour), "c1"))
	g.Add(mkCommit("c3", "feature", base.Add(2*time.Hour), "c2"))

	encoded, err := g.Encode()
	require.NoError(t, err)

	decoded, err := commitgraph.Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, g.Len(), decoded.Len())

	c3, ok := decoded.Get("c3")
	require.True(t, ok)
	assert.Equal(t, "feature", c3.BranchName)
	assert.Equal(t, []string{"c2"}, c3.Parents)
	assert.True(t, base.Add(2*time.Hour).Equal(c3.Timestamp))
}

func TestAddWithParentsDropsUnknownParents(t *testing.T) {
	g := commitgraph.New()
	g.Add(mkCommit("c1", "main", time.Now().UTC()))
	g.AddWithParents(mkCommit("c2", "main", time.Now().UTC()), []string{"c1", "ghost"})

	c2, ok := g.Get("c2")
	require.True(t, ok)
	assert.Equal(t, []string{"c1"}, c2.Parents)
}

func TestIntersectionFindsMostRecentCommonAncestor(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	g := commitgraph.New()
	g.Add(mkCommit("root", "main", base))
	g.Add(mkCommit("base", "main", base.Add(time.Hour), "root"))
	g.Add(mkCommit("left1", "main", base.Add(2*time.Hour), "base"))
	g.Add(mkCommit("left2", "main", base.Add(3*time.Hour), "left1"))
	g.Add(mkCommit("right1", "feature", base.Add(2*time.Hour), "base"))
	g.Add(mkCommit("right2", "feature", base.Add(3*time.Hour), "right1"))

	lca, ok := g.Intersection("left2", "right2")
	require.True(t, ok)
	assert.Equal(t, "base", lca.Checksum)
}

func TestIntersectionUnrelatedHistories(t *testing.T) {
	g := commitgraph.New()
	g.Add(mkCommit("a", "main", time.Now().UTC()))
	g.Add(mkCommit("b", "other", time.Now().UTC()))

	_, ok := g.Intersection("a", "b")
	assert.False(t, ok)
}

func TestHistoryFollowsSameBranchAndDecoratesMergedBranch(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	g := commitgraph.New()
	g.Add(mkCommit("root", "main", base))
	g.Add(mkCommit("feat1", "feature", base.Add(time.Hour), "root"))
	g.Add(mkCommit("merge", "main", base.Add(2*time.Hour), "root", "feat1"))

	hist := g.History("merge")
	require.Len(t, hist, 3)
	assert.Equal(t, "merge", hist[0].Commit.Checksum)
	assert.Empty(t, hist[0].BranchPoint)

	// one entry continues the main branch, one decorates the feature parent.
	var sawRoot, sawFeatureDecoration bool
	for _, e := range hist[1:] {
		if e.Commit.Checksum == "root" && e.BranchPoint == "" {
			sawRoot = true
		}
		if e.Commit.Checksum == "feat1" && e.BranchPoint == "feature" {
			sawFeatureDecoration = true
		}
	}
	assert.True(t, sawRoot)
	assert.True(t, sawFeatureDecoration)
}
