package repo

import (
	"strconv"
	"strings"

	"github.com/brickster241/jitvcs/internal/jiterr"
)

// ResolveCommitish resolves a commit-ish string (a branch name, a raw
// digest, "HEAD", or any of those followed by one or more "~N"/"^N"
// suffixes) to a commit digest. "~N" walks N generations via the first
// parent; "^N" steps to the Nth parent of a merge commit.
func (r *Repo) ResolveCommitish(commitIsh string) (string, error) {
	idx := strings.IndexAny(commitIsh, "^~")
	base := commitIsh
	if idx != -1 {
		base = commitIsh[:idx]
	} else {
		idx = len(commitIsh)
	}

	var digest string
	switch {
	case base == "HEAD":
		d, err := ResolveHeadDigest(r.Paths)
		if err != nil {
			return "", err
		}
		digest = d
	case isDigest(base):
		digest = base
	default:
		d, err := ReadBranchHead(r.Paths, base)
		if err != nil {
			return "", err
		}
		digest = d
	}

	graph, err := r.loadGraph()
	if err != nil {
		return "", err
	}
	if _, ok := graph.Get(digest); !ok {
		return "", jiterr.Newf(jiterr.NotFound, "invalid object name: %s", commitIsh)
	}

	for idx < len(commitIsh) {
		sign := commitIsh[idx]
		suffix := commitIsh[idx+1:]
		numStr := "1"

		if len(suffix) > 0 {
			nextIdx := strings.IndexAny(suffix, "^~")
			if nextIdx == -1 {
				numStr = suffix
				idx = len(commitIsh)
			} else {
				numStr = suffix[:nextIdx]
				if numStr == "" {
					idx++
					numStr = "1"
				} else {
					idx += 1 + len(numStr)
				}
			}
		} else {
			idx++
		}

		num, err := strconv.Atoi(numStr)
		if err != nil {
			return "", jiterr.Newf(jiterr.InvalidName, "%s is not a valid suffix after %c", numStr, sign)
		}

		switch sign {
		case '~':
			for i := 0; i < num; i++ {
				commit, ok := graph.Get(digest)
				if !ok || len(commit.Parents) == 0 {
					return "", jiterr.Newf(jiterr.NotFound, "invalid object name: %s", commitIsh)
				}
				digest = commit.Parents[0]
			}
		case '^':
			commit, ok := graph.Get(digest)
			if !ok || num <= 0 || len(commit.Parents) < num {
				return "", jiterr.Newf(jiterr.NotFound, "invalid object name: %s", commitIsh)
			}
			digest = commit.Parents[num-1]
		default:
			return "", jiterr.New(jiterr.InvalidName, "invalid suffix: must be ^ or ~")
		}
	}

	return digest, nil
}
