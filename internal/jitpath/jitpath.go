// Package jitpath threads the repository root and the .jit directory
// layout through every operation as an explicit value, rather than
// holding them in module-level singletons.
package jitpath

import "path/filepath"

// RepoDirName is the name of the directory a jit repository keeps its
// metadata in, analogous to .git.
const RepoDirName = ".jit"

// IgnoreFileName is the name of the file that holds working-tree ignore
// globs, one per line.
const IgnoreFileName = ".jitignore"

// CommitGraphDigest is the fixed, well-known digest the commit graph
// blob is always stored at, so both ends of a clone agree where to
// find it without negotiation. It is not the hash of any real
// content; it's a reserved 40-hex constant carved out of the
// object-digest namespace.
const CommitGraphDigest = "4015b57a143aec5156fd1444a017a32137a3fd0f"

// Paths bundles every well-known path under a repository root.
type Paths struct {
	Root string // working-tree root
}

// New builds a Paths rooted at root (the working-tree root, the parent
// of .jit).
func New(root string) Paths { return Paths{Root: root} }

// JitDir is the .jit metadata directory.
func (p Paths) JitDir() string { return filepath.Join(p.Root, RepoDirName) }

// Head is the HEAD file.
func (p Paths) Head() string { return filepath.Join(p.JitDir(), "HEAD") }

// Index is the staging index file.
func (p Paths) Index() string { return filepath.Join(p.JitDir(), "index") }

// ObjectsDir is the object store root.
func (p Paths) ObjectsDir() string { return filepath.Join(p.JitDir(), "objects") }

// RefsHeadsDir is the directory holding one file per branch.
func (p Paths) RefsHeadsDir() string { return filepath.Join(p.JitDir(), "refs", "heads") }

// BranchRef is the ref file for a named branch.
func (p Paths) BranchRef(name string) string { return filepath.Join(p.RefsHeadsDir(), name) }

// LogsDir is the root of the append-only ref logs.
func (p Paths) LogsDir() string { return filepath.Join(p.JitDir(), "logs") }

// BranchLog is the log file for a named branch's ref.
func (p Paths) BranchLog(name string) string {
	return filepath.Join(p.LogsDir(), "refs", "heads", name)
}

// HeadLog is the log file used while HEAD is detached (there is no
// branch ref to log against).
func (p Paths) HeadLog() string { return filepath.Join(p.LogsDir(), "HEAD") }

// IgnoreFile is the .jitignore file at the working-tree root.
func (p Paths) IgnoreFile() string { return filepath.Join(p.Root, IgnoreFileName) }

// Config is the repository's key=value configuration file.
func (p Paths) Config() string { return filepath.Join(p.JitDir(), "config") }

// BranchesDir is a reserved, currently unused branches/ directory.
func (p Paths) BranchesDir() string { return filepath.Join(p.JitDir(), "branches") }
