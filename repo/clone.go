package repo

import (
	"io"
	"os"
	"path/filepath"

	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jitpath"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// Clone copies sourceRoot's entire .jit directory into destRoot and
// checks out whatever HEAD pointed at. Cloning here is a
// local-filesystem copy, not a network transport.
func Clone(sourceRoot, destRoot string) (*Repo, error) {
	src := jitpath.New(sourceRoot)
	if _, err := os.Stat(src.JitDir()); err != nil {
		return nil, jiterr.Newf(jiterr.NotFound, "no jit repository found at %s", sourceRoot)
	}

	if err := copyTree(src.JitDir(), jitpath.New(destRoot).JitDir()); err != nil {
		return nil, err
	}

	dest := Open(destRoot)
	if err := dest.checkoutHeadSnapshot(); err != nil {
		return nil, err
	}
	return dest, nil
}

// CloneBranch copies only branch's history (its tip index, the blobs it
// references, and up to depth of its most recent commits; depth <= 0
// means the whole branch) into destRoot, then checks it out. The commit
// graph blob itself is copied whole (it's cheap and self-contained),
// but object copying is restricted to what the requested depth of
// commits actually reference.
func CloneBranch(sourceRoot, destRoot, branch string, depth int) (*Repo, error) {
	return CloneBranchProgress(sourceRoot, destRoot, branch, depth, nil)
}

// CloneBranchProgress is CloneBranch with an onCommit callback invoked
// once per commit whose objects have just been copied, so a caller can
// drive a progress indicator without polling.
func CloneBranchProgress(sourceRoot, destRoot, branch string, depth int, onCommit func()) (*Repo, error) {
	src := Open(sourceRoot)
	if _, err := os.Stat(src.Paths.JitDir()); err != nil {
		return nil, jiterr.Newf(jiterr.NotFound, "no jit repository found at %s", sourceRoot)
	}

	dest := Open(destRoot)
	for _, dir := range []string{
		dest.Paths.JitDir(),
		dest.Paths.ObjectsDir(),
		dest.Paths.RefsHeadsDir(),
		dest.Paths.LogsDir(),
	} {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: create clone directory layout")
		}
	}

	if src.Objects.Has(jitpath.CommitGraphDigest) {
		if err := src.Objects.CopyTo(dest.Objects, jitpath.CommitGraphDigest); err != nil {
			return nil, err
		}
	}

	tip, err := ReadBranchHead(src.Paths, branch)
	if err != nil {
		return nil, err
	}

	graph, err := src.loadGraph()
	if err != nil {
		return nil, err
	}

	copied := 0
	for _, entry := range graph.History(tip) {
		if entry.BranchPoint != "" {
			continue
		}
		if depth > 0 && copied >= depth {
			break
		}
		copied++

		commit := entry.Commit
		if err := src.Objects.CopyTo(dest.Objects, commit.Checksum); err != nil {
			return nil, err
		}
		content, err := index.ReadBinary(src.Objects, commit.Checksum)
		if err != nil {
			return nil, err
		}
		for _, f := range content.Files {
			if err := src.Objects.CopyTo(dest.Objects, f.Checksum); err != nil {
				return nil, err
			}
		}
		if onCommit != nil {
			onCommit()
		}
	}

	if err := WriteBranchHead(dest.Paths, branch, tip); err != nil {
		return nil, err
	}
	if err := copyFileIfExists(src.Paths.BranchLog(branch), dest.Paths.BranchLog(branch)); err != nil {
		return nil, err
	}
	if err := WriteHead(dest.Paths, Head{Kind: HeadBranch, Branch: branch}); err != nil {
		return nil, err
	}

	if err := dest.checkoutHeadSnapshot(); err != nil {
		return nil, err
	}
	return dest, nil
}

// checkoutHeadSnapshot materialises whatever HEAD currently points at,
// without the RequireClean gate Checkout applies — used right after a
// clone, where the destination working tree starts empty.
func (r *Repo) checkoutHeadSnapshot() error {
	digest, err := ResolveHeadDigest(r.Paths)
	if err != nil {
		return err
	}
	content, err := index.ReadBinary(r.Objects, digest)
	if err != nil {
		return err
	}
	if err := r.materialize(content); err != nil {
		return err
	}
	return index.WriteFile(r.Paths.Index(), content)
}

func copyTree(srcDir, dstDir string) error {
	return filepath.WalkDir(srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "repo: walk source .jit tree")
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "repo: relativize clone path")
		}
		dest := filepath.Join(dstDir, rel)
		if d.IsDir() {
			return os.MkdirAll(dest, DirPerm)
		}
		return copyFile(path, dest)
	})
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), DirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: create clone destination directory")
	}
	in, err := os.Open(src)
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: open clone source file")
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: create clone destination file")
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: copy clone file contents")
	}
	return nil
}

func copyFileIfExists(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: stat clone source file")
	}
	return copyFile(src, dst)
}
