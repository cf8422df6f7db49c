package repo

import (
	"os"
	"path/filepath"
	"time"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/scanner"
)

// isDigest reports whether s looks like a 40-hex content digest.
func isDigest(s string) bool {
	if len(s) != codec.DigestSize {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			return false
		}
	}
	return true
}

// Branch creates a new branch named name at the current HEAD commit and
// switches to it. It refuses a dirty working tree and an invalid name.
func (r *Repo) Branch(name string) error {
	if !BranchNamePattern.MatchString(name) {
		return jiterr.Newf(jiterr.InvalidName, "invalid branch name %q", name)
	}
	if err := r.RequireClean("branch"); err != nil {
		return err
	}

	digest, err := ResolveHeadDigest(r.Paths)
	if err != nil {
		return err
	}

	if err := WriteBranchHead(r.Paths, name, digest); err != nil {
		return err
	}
	if err := WriteHead(r.Paths, Head{Kind: HeadBranch, Branch: name}); err != nil {
		return err
	}
	return AppendLog(r.Paths.BranchLog(name), ZeroDigest, digest, "branch", "created "+name, time.Now())
}

// ListBranches returns every branch name, sorted, along with the
// currently checked-out one (empty when HEAD is detached).
func (r *Repo) ListBranches() ([]string, string, error) {
	names, err := ListBranches(r.Paths)
	if err != nil {
		return nil, "", err
	}
	head, err := ReadHead(r.Paths)
	if err != nil {
		return nil, "", err
	}
	current := ""
	if head.Kind == HeadBranch {
		current = head.Branch
	}
	return names, current, nil
}

// resolveTarget resolves a checkout argument to a commit digest: first
// as a raw digest present in the object store, otherwise as a branch
// name.
func (r *Repo) resolveTarget(target string) (digest string, isBranch bool, err error) {
	if isDigest(target) && r.Objects.Has(target) {
		return target, false, nil
	}
	if BranchExists(r.Paths, target) {
		digest, err = ReadBranchHead(r.Paths, target)
		return digest, true, err
	}
	return "", false, jiterr.Newf(jiterr.NotFound, "no branch or commit named %s", target)
}

// Checkout materialises the snapshot at target into the working tree
// and index, then updates HEAD. target is first tried as a commit
// digest, then as a branch name.
func (r *Repo) Checkout(target string) error {
	if err := r.RequireClean("checkout"); err != nil {
		return err
	}

	digest, isBranch, err := r.resolveTarget(target)
	if err != nil {
		return err
	}

	targetIndex, err := index.ReadBinary(r.Objects, digest)
	if err != nil {
		return err
	}

	if err := r.materialize(targetIndex); err != nil {
		return err
	}

	if err := index.WriteFile(r.Paths.Index(), targetIndex); err != nil {
		return err
	}

	if isBranch {
		return WriteHead(r.Paths, Head{Kind: HeadBranch, Branch: target})
	}
	return WriteHead(r.Paths, Head{Kind: HeadDetached, Digest: digest})
}

// materialize writes every file in target into the working tree,
// overwriting, and deletes any currently-scanned file absent from
// target.
func (r *Repo) materialize(target *index.Content) error {
	working, err := scanner.Scan(r.Paths.Root)
	if err != nil {
		return err
	}

	for _, rel := range working {
		if _, tracked := target.Files[rel]; !tracked {
			if err := os.Remove(filepath.Join(r.Paths.Root, rel)); err != nil && !os.IsNotExist(err) {
				return jiterr.Wrap(jiterr.IoFailure, err, "repo: remove stale working file")
			}
		}
	}

	for rel, f := range target.Files {
		raw, err := r.Objects.Get(f.Checksum)
		if err != nil {
			return err
		}
		dest := filepath.Join(r.Paths.Root, rel)
		if err := os.MkdirAll(filepath.Dir(dest), DirPerm); err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "repo: create working directory")
		}
		if err := os.WriteFile(dest, raw, FilePerm); err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "repo: materialise working file")
		}
	}
	return nil
}
