package repo

import (
	"path/filepath"
	"sort"

	"github.com/brickster241/jitvcs/internal/diff"
	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/objstore"
)

// FileDiff is the rendered diff for one path.
type FileDiff struct {
	Path  string
	Lines []diff.Line
}

// Diff compares the working tree against the snapshot of the commit
// HEAD points at: every file tracked in that commit whose working-tree
// content differs from its committed blob gets a line-level diff.
// Before the first commit there is no snapshot and the result is empty.
func (r *Repo) Diff() ([]FileDiff, error) {
	headDigest, err := ResolveHeadDigest(r.Paths)
	if err != nil {
		return nil, err
	}
	idx := index.New()
	if headDigest != "" && headDigest != ZeroDigest {
		if idx, err = index.ReadBinary(r.Objects, headDigest); err != nil {
			return nil, err
		}
	}

	paths := idx.SortedFilenames()
	var out []FileDiff
	for _, rel := range paths {
		f := idx.Files[rel]
		before, err := r.Objects.GetText(f.Checksum)
		if err != nil {
			return nil, err
		}
		after, err := readWorkingLines(r.Paths.Root, rel)
		if err != nil {
			return nil, err
		}

		lines := diff.Lines(before, after)
		if hasChange(lines) {
			out = append(out, FileDiff{Path: rel, Lines: lines})
		}
	}
	return out, nil
}

// DiffBranches compares the tip snapshots of two branches, diffing
// every path present in either.
func (r *Repo) DiffBranches(branchA, branchB string) ([]FileDiff, error) {
	aContent, err := r.branchIndex(branchA)
	if err != nil {
		return nil, err
	}
	bContent, err := r.branchIndex(branchB)
	if err != nil {
		return nil, err
	}

	paths := map[string]struct{}{}
	for p := range aContent.Files {
		paths[p] = struct{}{}
	}
	for p := range bContent.Files {
		paths[p] = struct{}{}
	}
	sorted := make([]string, 0, len(paths))
	for p := range paths {
		sorted = append(sorted, p)
	}
	sort.Strings(sorted)

	var out []FileDiff
	for _, rel := range sorted {
		before, err := textOrEmpty(r.Objects, aContent, rel)
		if err != nil {
			return nil, err
		}
		after, err := textOrEmpty(r.Objects, bContent, rel)
		if err != nil {
			return nil, err
		}
		lines := diff.Lines(before, after)
		if hasChange(lines) {
			out = append(out, FileDiff{Path: rel, Lines: lines})
		}
	}
	return out, nil
}

func (r *Repo) branchIndex(branch string) (*index.Content, error) {
	digest, err := ReadBranchHead(r.Paths, branch)
	if err != nil {
		return nil, err
	}
	return index.ReadBinary(r.Objects, digest)
}

func textOrEmpty(store *objstore.Store, c *index.Content, path string) ([]string, error) {
	f, ok := c.Files[path]
	if !ok {
		return nil, nil
	}
	return store.GetText(f.Checksum)
}

func readWorkingLines(root, rel string) ([]string, error) {
	data, err := readFileOrEmpty(filepath.Join(root, rel))
	if err != nil {
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: read working file for diff")
	}
	return objstore.SplitLines(data), nil
}

func hasChange(lines []diff.Line) bool {
	for _, l := range lines {
		if l.Op != diff.Equal {
			return true
		}
	}
	return false
}
