// Package repo is the repository engine: it ties the codec, scanner,
// index, object store, commit graph, diff and merge packages into the
// verbs a front-end dispatches (init, add, status, commit, branch,
// checkout, merge, log, diff, clone). It does no printing of its own —
// callers decide how to render results.
package repo

import (
	"os"

	"github.com/brickster241/jitvcs/internal/commitgraph"
	"github.com/brickster241/jitvcs/internal/jitpath"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/objstore"
)

// MasterBranch is the default branch name created by Init.
const MasterBranch = "master"

// ZeroDigest is the 40-zero placeholder stored at a freshly initialised
// master branch ref (there is no commit yet to point at).
const ZeroDigest = "0000000000000000000000000000000000000000"

// DirPerm/FilePerm are the permissions used for new .jit metadata
// files.
const (
	DirPerm  = 0o750
	FilePerm = 0o640
)

// Repo is a handle to a repository rooted at a working-tree directory.
type Repo struct {
	Paths   jitpath.Paths
	Objects *objstore.Store
}

// Open returns a handle for the repository rooted at root. It does not
// verify the repository exists; use Init to create one.
func Open(root string) *Repo {
	paths := jitpath.New(root)
	return &Repo{
		Paths:   paths,
		Objects: objstore.New(paths.ObjectsDir()),
	}
}

// Init creates the .jit skeleton: the objects/refs/logs directory tree,
// a master branch ref pointing at the zero digest, and HEAD attached to
// refs/heads/master.
func Init(root string) (*Repo, error) {
	r := Open(root)

	for _, dir := range []string{
		r.Paths.JitDir(),
		r.Paths.ObjectsDir(),
		r.Paths.RefsHeadsDir(),
		r.Paths.LogsDir(),
		r.Paths.BranchesDir(),
	} {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: init directory layout")
		}
	}

	if err := WriteBranchHead(r.Paths, MasterBranch, ZeroDigest); err != nil {
		return nil, err
	}
	if err := WriteHead(r.Paths, Head{Kind: HeadBranch, Branch: MasterBranch}); err != nil {
		return nil, err
	}
	return r, nil
}

// Graph exposes the current commit graph, for introspection tools and
// tests that need to check ancestry directly (e.g. intersection/LCA).
func (r *Repo) Graph() (*commitgraph.Graph, error) {
	return r.loadGraph()
}

// loadGraph reads the commit graph object, returning an empty graph if
// it has never been written (a fresh repository).
func (r *Repo) loadGraph() (*commitgraph.Graph, error) {
	if !r.Objects.Has(jitpath.CommitGraphDigest) {
		return commitgraph.New(), nil
	}
	raw, err := r.Objects.GetRaw(jitpath.CommitGraphDigest)
	if err != nil {
		return nil, err
	}
	return commitgraph.Decode(raw)
}

// saveGraph persists g at the fixed commit-graph digest. The graph is
// rewritten on every commit, so it goes through PutRaw (which always
// overwrites) rather than Put's write-once path; Encode already applies
// the graph's own compression framing.
func (r *Repo) saveGraph(g *commitgraph.Graph) error {
	encoded, err := g.Encode()
	if err != nil {
		return err
	}
	return r.Objects.PutRaw(jitpath.CommitGraphDigest, encoded)
}
