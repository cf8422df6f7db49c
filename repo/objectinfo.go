package repo

import (
	"os"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// CatFile resolves target — a commit-ish, a branch name, or a raw
// digest — and returns the raw bytes stored at it. The object store is
// blob-only (no tree objects), so there is no type to distinguish: a
// digest is either the fixed commit-graph blob, a serialized index, or
// a tracked file's content. Objects are read through Store.Get, which
// inflates them; the commit-graph blob is written by PutRaw with its
// own length-prefixed framing, and CatFile does not decode it.
func (r *Repo) CatFile(target string) ([]byte, error) {
	digest, err := r.ResolveCommitish(target)
	if err != nil {
		digest = target
	}
	return r.Objects.Get(digest)
}

// HashObject computes the digest for path's contents, optionally
// writing it into the object store.
func (r *Repo) HashObject(path string, write bool) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", jiterr.Wrap(jiterr.IoFailure, err, "repo: read file to hash")
	}
	digest := codec.HashBytes(data)
	if write {
		if err := r.Objects.Put(digest, data); err != nil {
			return "", err
		}
	}
	return digest, nil
}
