package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/commitgraph"
	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/merge"
	"github.com/brickster241/jitvcs/internal/objstore"
)

// MergeResult reports the outcome of a merge attempt.
type MergeResult struct {
	// Digest is the new merge commit's checksum, set only when Conflicts
	// is empty.
	Digest string
	// Conflicts lists every path left with unresolved conflict markers.
	// When non-empty the working tree and index were left dirty for the
	// user to resolve and commit manually.
	Conflicts []string
}

// Merge performs a three-way merge of featureBranch into the currently
// checked-out branch.
func (r *Repo) Merge(featureBranch string) (MergeResult, error) {
	head, err := ReadHead(r.Paths)
	if err != nil {
		return MergeResult{}, err
	}
	if head.Kind != HeadBranch {
		return MergeResult{}, jiterr.New(jiterr.RepoDirty, "merge requires an attached branch")
	}
	if err := r.RequireClean("merge"); err != nil {
		return MergeResult{}, err
	}

	branchName := head.Branch
	theirsTip, err := ReadBranchHead(r.Paths, featureBranch)
	if err != nil {
		return MergeResult{}, err
	}
	oursTip, err := ReadBranchHead(r.Paths, branchName)
	if err != nil {
		return MergeResult{}, err
	}

	graph, err := r.loadGraph()
	if err != nil {
		return MergeResult{}, err
	}
	lca, ok := graph.Intersection(theirsTip, oursTip)
	if !ok {
		return MergeResult{}, jiterr.Newf(jiterr.UnrelatedHistories, "no common ancestor between %s and %s", branchName, featureBranch)
	}
	if lca.Checksum == theirsTip {
		return MergeResult{}, jiterr.New(jiterr.NothingToMerge, "nothing to merge")
	}

	base, err := index.ReadBinary(r.Objects, lca.Checksum)
	if err != nil {
		return MergeResult{}, err
	}
	theirs, err := index.ReadBinary(r.Objects, theirsTip)
	if err != nil {
		return MergeResult{}, err
	}
	ours, err := index.ReadFile(r.Paths.Index())
	if err != nil {
		return MergeResult{}, err
	}

	now := time.Now()
	merged := index.New()
	var conflicts []string

	for path, oe := range ours.Files {
		be, inBase := base.Files[path]
		te, inTheirs := theirs.Files[path]

		switch {
		case inBase && !inTheirs:
			merged.Files[path] = oe

		case inBase && be.Checksum == oe.Checksum && inTheirs && te.Checksum != oe.Checksum:
			if err := r.checkoutBlob(path, te.Checksum); err != nil {
				return MergeResult{}, err
			}
			entry := oe
			entry.Checksum = te.Checksum
			entry.LastModified = now
			merged.Files[path] = entry

		case inBase && inTheirs && be.Checksum != oe.Checksum && be.Checksum != te.Checksum && oe.Checksum != te.Checksum:
			conflicted, err := r.threeWayMergePath(path, be.Checksum, oe.Checksum, te.Checksum, now, oe)
			if err != nil {
				return MergeResult{}, err
			}
			merged.Files[path] = *conflicted
			if conflicted.IsDirty {
				conflicts = append(conflicts, path)
			}

		case !inBase && inTheirs && oe.Checksum != te.Checksum:
			conflicted, err := r.threeWayMergePath(path, "", oe.Checksum, te.Checksum, now, oe)
			if err != nil {
				return MergeResult{}, err
			}
			merged.Files[path] = *conflicted
			if conflicted.IsDirty {
				conflicts = append(conflicts, path)
			}

		default:
			merged.Files[path] = oe
		}
	}

	for path, te := range theirs.Files {
		if _, inOurs := ours.Files[path]; inOurs {
			continue
		}
		if err := r.checkoutBlob(path, te.Checksum); err != nil {
			return MergeResult{}, err
		}
		merged.Files[path] = index.FileInfo{
			Filename:     path,
			Checksum:     te.Checksum,
			AdditionDate: now,
			LastModified: now,
		}
	}

	if len(conflicts) > 0 {
		merged.Meta.IsDirty = true
		merged.Meta.Entries = len(merged.Files)
		merged.Meta.LastModified = now
		if err := index.WriteFile(r.Paths.Index(), merged); err != nil {
			return MergeResult{}, err
		}
		sort.Strings(conflicts)
		return MergeResult{Conflicts: conflicts}, nil
	}

	merged.PrepareCommit(now)
	serialized := merged.Serialize()
	digest := codec.HashBytes(serialized)

	if err := r.Objects.Put(digest, serialized); err != nil {
		return MergeResult{}, err
	}
	if err := index.WriteFile(r.Paths.Index(), merged); err != nil {
		return MergeResult{}, err
	}

	message := fmt.Sprintf("Merge %s into %s", featureBranch, branchName)
	author, err := Author(r.Paths)
	if err != nil {
		return MergeResult{}, err
	}
	graph.AddWithParents(commitgraph.Commit{
		Checksum:   digest,
		Message:    message,
		BranchName: branchName,
		Author:     author,
		Timestamp:  now,
	}, []string{theirsTip, oursTip})
	if err := r.saveGraph(graph); err != nil {
		return MergeResult{}, err
	}

	if err := WriteBranchHead(r.Paths, branchName, digest); err != nil {
		return MergeResult{}, err
	}
	if err := AppendLog(r.Paths.BranchLog(branchName), oursTip, digest, "merge", message, now); err != nil {
		return MergeResult{}, err
	}

	return MergeResult{Digest: digest}, nil
}

// checkoutBlob materialises the object at digest into the working tree
// at path, overwriting.
func (r *Repo) checkoutBlob(path, digest string) error {
	raw, err := r.Objects.Get(digest)
	if err != nil {
		return err
	}
	dest := filepath.Join(r.Paths.Root, path)
	if err := os.MkdirAll(filepath.Dir(dest), DirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: create merge working directory")
	}
	if err := os.WriteFile(dest, raw, FilePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: write merged blob")
	}
	return nil
}

// threeWayMergePath merges the three text versions of path, writes the
// result into the working tree, and returns the resulting index entry
// (IsDirty set iff the merge left conflict markers).
func (r *Repo) threeWayMergePath(path, baseDigest, oursDigest, theirsDigest string, now time.Time, prior index.FileInfo) (*index.FileInfo, error) {
	baseText, err := textOrNil(r.Objects, baseDigest)
	if err != nil {
		return nil, err
	}
	oursText, err := r.Objects.GetText(oursDigest)
	if err != nil {
		return nil, err
	}
	theirsText, err := r.Objects.GetText(theirsDigest)
	if err != nil {
		return nil, err
	}

	mergedLines := merge.Lines(baseText, oursText, theirsText)
	dest := filepath.Join(r.Paths.Root, path)
	if err := os.MkdirAll(filepath.Dir(dest), DirPerm); err != nil {
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: create merge working directory")
	}
	content := strings.Join(mergedLines, "\n") + "\n"
	if err := os.WriteFile(dest, []byte(content), FilePerm); err != nil {
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: write merge result")
	}

	entry := prior
	entry.Checksum = codec.HashBytes([]byte(content))
	entry.LastModified = now
	entry.IsDirty = merge.HasConflict(mergedLines)
	return &entry, nil
}

func textOrNil(store *objstore.Store, digest string) ([]string, error) {
	if digest == "" {
		return nil, nil
	}
	return store.GetText(digest)
}
