package repo

import (
	"time"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/commitgraph"
	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// CommitResult reports what a successful commit produced.
type CommitResult struct {
	Digest string
	Parent string // empty for an initial commit
}

const wildBranch = "wild"

// Commit prepares the index for hashing, stores it as an object,
// extends the commit graph, and advances the current ref (branch tip
// or detached HEAD).
func (r *Repo) Commit(message string) (CommitResult, error) {
	idx, err := index.ReadFile(r.Paths.Index())
	if err != nil {
		return CommitResult{}, err
	}
	if !idx.Meta.IsDirty {
		return CommitResult{}, jiterr.New(jiterr.NothingToCommit, "nothing to commit")
	}

	now := time.Now()
	idx.PrepareCommit(now)
	if err := index.WriteFile(r.Paths.Index(), idx); err != nil {
		return CommitResult{}, err
	}

	serialized := idx.Serialize()
	digest := codec.HashBytes(serialized)

	head, err := ReadHead(r.Paths)
	if err != nil {
		return CommitResult{}, err
	}

	var old, logPath, branchName string
	switch head.Kind {
	case HeadBranch:
		old, err = ReadBranchHead(r.Paths, head.Branch)
		if err != nil {
			return CommitResult{}, err
		}
		logPath = r.Paths.BranchLog(head.Branch)
		branchName = head.Branch
	case HeadDetached:
		old = head.Digest
		logPath = r.Paths.HeadLog()
	}

	if err := r.Objects.Put(digest, serialized); err != nil {
		return CommitResult{}, err
	}

	if err := AppendLog(logPath, old, digest, "commit", message, now); err != nil {
		return CommitResult{}, err
	}

	graph, err := r.loadGraph()
	if err != nil {
		return CommitResult{}, err
	}

	var parents []string
	if old != "" && old != ZeroDigest {
		parents = append(parents, old)
		if head.Kind == HeadDetached {
			if parent, ok := graph.Get(old); ok {
				branchName = parent.BranchName
			}
		}
	}
	if branchName == "" {
		branchName = wildBranch
	}

	author, err := Author(r.Paths)
	if err != nil {
		return CommitResult{}, err
	}

	graph.AddWithParents(commitgraph.Commit{
		Checksum:   digest,
		Message:    message,
		BranchName: branchName,
		Author:     author,
		Timestamp:  now,
	}, parents)

	if err := r.saveGraph(graph); err != nil {
		return CommitResult{}, err
	}

	if head.Kind == HeadBranch {
		if err := WriteBranchHead(r.Paths, head.Branch, digest); err != nil {
			return CommitResult{}, err
		}
	} else {
		if err := WriteHead(r.Paths, Head{Kind: HeadDetached, Digest: digest}); err != nil {
			return CommitResult{}, err
		}
	}

	result := CommitResult{Digest: digest}
	if old != "" && old != ZeroDigest {
		result.Parent = old
	}
	return result, nil
}
