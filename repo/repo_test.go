package repo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/repo"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
}

func TestInitCommitScenario(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))

	result, err := r.Commit("first")
	require.NoError(t, err)
	assert.Empty(t, result.Parent)

	tip, err := repo.ReadBranchHead(r.Paths, repo.MasterBranch)
	require.NoError(t, err)
	assert.Equal(t, result.Digest, tip)

	assert.True(t, r.Objects.Has(result.Digest))
}

func TestStatusReportsModifiedAfterEdit(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("first")
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\nworld\n")

	st, err := r.Status()
	require.NoError(t, err)
	assert.Equal(t, []string{"file.txt"}, st.Modified)
	assert.Empty(t, st.Staged)
	assert.Empty(t, st.New)
	assert.Empty(t, st.Deleted)
}

func TestBranchCheckoutRestoresState(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("first")
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\nworld\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("second")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	_, err = r.Commit("empty")
	assert.True(t, jiterr.Is(err, jiterr.NothingToCommit))

	writeFile(t, root, "file.txt", "hello\nworld\nfeature\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("feature work")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(repo.MasterBranch))

	data, err := os.ReadFile(filepath.Join(root, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", string(data))
}

func TestIntersectionOfDivergedBranches(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	first, err := r.Commit("first")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	writeFile(t, root, "file.txt", "hello\nfeature\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("feature work")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(repo.MasterBranch))
	writeFile(t, root, "other.txt", "aside\n")
	require.NoError(t, r.Add("."))
	masterTip, err := r.Commit("master work")
	require.NoError(t, err)

	featureTip, err := repo.ReadBranchHead(r.Paths, "feature")
	require.NoError(t, err)

	graph, err := r.Graph()
	require.NoError(t, err)
	lca, ok := graph.Intersection(featureTip, masterTip.Digest)
	require.True(t, ok)
	assert.Equal(t, first.Digest, lca.Checksum)
}

func TestDiffReportsTieBreak(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("first")
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\nworld\n")

	diffs, err := r.Diff()
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "file.txt", diffs[0].Path)

	var rendered []string
	for _, l := range diffs[0].Lines {
		rendered = append(rendered, l.String())
	}
	assert.Equal(t, []string{"  hello", "+ world"}, rendered)
}

func TestMergeCleanNonOverlappingChanges(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "a\nb\nc\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("base")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	writeFile(t, root, "a.txt", "a\nb\nC\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("feature changes last line")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(repo.MasterBranch))
	writeFile(t, root, "a.txt", "a\nB\nc\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("master changes middle line")
	require.NoError(t, err)

	result, err := r.Merge("feature")
	require.NoError(t, err)
	assert.Empty(t, result.Conflicts)
	assert.NotEmpty(t, result.Digest)

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a\nB\nC\n", string(data))
}

func TestMergeConflictLeavesMarkers(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "a.txt", "a\nb\nc\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("base")
	require.NoError(t, err)

	require.NoError(t, r.Branch("feature"))
	writeFile(t, root, "a.txt", "a\nX\nc\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("feature edits middle")
	require.NoError(t, err)

	require.NoError(t, r.Checkout(repo.MasterBranch))
	writeFile(t, root, "a.txt", "a\nY\nc\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("master edits middle")
	require.NoError(t, err)

	result, err := r.Merge("feature")
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt"}, result.Conflicts)

	data, err := os.ReadFile(filepath.Join(root, "a.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<<<<<<< BRANCH 1")
	assert.Contains(t, string(data), "Y")
	assert.Contains(t, string(data), "X")
}

func TestCloneFullRepoChecksOutHead(t *testing.T) {
	srcRoot := t.TempDir()
	r, err := repo.Init(srcRoot)
	require.NoError(t, err)

	writeFile(t, srcRoot, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("first")
	require.NoError(t, err)

	destRoot := t.TempDir()
	// Clone copies into destRoot/.jit (creating it as needed); destRoot starts empty.
	require.NoError(t, os.RemoveAll(destRoot))
	require.NoError(t, os.MkdirAll(destRoot, 0o750))

	dest, err := repo.Clone(srcRoot, destRoot)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(destRoot, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	st, err := dest.Status()
	require.NoError(t, err)
	assert.False(t, st.IsDirty())
}

func TestCloneBranchWithDepthChecksOutTip(t *testing.T) {
	srcRoot := t.TempDir()
	r, err := repo.Init(srcRoot)
	require.NoError(t, err)

	writeFile(t, srcRoot, "file.txt", "v1\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("v1")
	require.NoError(t, err)

	writeFile(t, srcRoot, "file.txt", "v2\n")
	require.NoError(t, r.Add("."))
	_, err = r.Commit("v2")
	require.NoError(t, err)

	destRoot := t.TempDir()
	require.NoError(t, os.RemoveAll(destRoot))

	dest, err := repo.CloneBranch(srcRoot, destRoot, repo.MasterBranch, 1)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(destRoot, "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "v2\n", string(data))

	tip, err := repo.ReadBranchHead(dest.Paths, repo.MasterBranch)
	require.NoError(t, err)
	assert.True(t, dest.Objects.Has(tip))
}

func TestResolveCommitishSuffixes(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "v1\n")
	require.NoError(t, r.Add("."))
	first, err := r.Commit("v1")
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "v2\n")
	require.NoError(t, r.Add("."))
	second, err := r.Commit("v2")
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "v3\n")
	require.NoError(t, r.Add("."))
	third, err := r.Commit("v3")
	require.NoError(t, err)

	digest, err := r.ResolveCommitish("HEAD")
	require.NoError(t, err)
	assert.Equal(t, third.Digest, digest)

	digest, err = r.ResolveCommitish("HEAD~1")
	require.NoError(t, err)
	assert.Equal(t, second.Digest, digest)

	digest, err = r.ResolveCommitish("HEAD~2")
	require.NoError(t, err)
	assert.Equal(t, first.Digest, digest)

	digest, err = r.ResolveCommitish(repo.MasterBranch + "~1")
	require.NoError(t, err)
	assert.Equal(t, second.Digest, digest)

	_, err = r.ResolveCommitish("HEAD~5")
	assert.Error(t, err)
}

func TestCatFileAndHashObject(t *testing.T) {
	root := t.TempDir()
	r, err := repo.Init(root)
	require.NoError(t, err)

	writeFile(t, root, "file.txt", "hello\n")
	require.NoError(t, r.Add("."))
	result, err := r.Commit("first")
	require.NoError(t, err)

	data, err := r.CatFile("HEAD")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	data, err = r.CatFile(result.Digest)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	digest, err := r.HashObject(filepath.Join(root, "file.txt"), false)
	require.NoError(t, err)
	assert.Len(t, digest, 40)

	writeFile(t, root, "other.txt", "new content\n")
	other, err := r.HashObject(filepath.Join(root, "other.txt"), false)
	require.NoError(t, err)
	assert.False(t, r.Objects.Has(other))

	written, err := r.HashObject(filepath.Join(root, "other.txt"), true)
	require.NoError(t, err)
	assert.Equal(t, other, written)
	assert.True(t, r.Objects.Has(written))
}
