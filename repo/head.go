package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jitpath"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// HeadKind distinguishes the two shapes HEAD can take: a symbolic ref
// to a branch, or a raw commit digest.
type HeadKind int

const (
	// HeadBranch means HEAD points at a named branch via a symbolic ref.
	HeadBranch HeadKind = iota
	// HeadDetached means HEAD holds a raw commit digest directly.
	HeadDetached
)

// Head is the parsed contents of the HEAD file.
type Head struct {
	Kind   HeadKind
	Branch string // valid when Kind == HeadBranch
	Digest string // valid when Kind == HeadDetached
}

const refPrefix = "refs/heads/"

// BranchNamePattern is the allowed branch-name grammar.
var BranchNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ReadHead loads and parses the HEAD file.
func ReadHead(p jitpath.Paths) (Head, error) {
	raw, err := os.ReadFile(p.Head())
	if err != nil {
		return Head{}, jiterr.Wrap(jiterr.IoFailure, err, "repo: read HEAD")
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, refPrefix) {
		return Head{Kind: HeadBranch, Branch: strings.TrimPrefix(text, refPrefix)}, nil
	}
	return Head{Kind: HeadDetached, Digest: text}, nil
}

// WriteHead serializes h to the HEAD file.
func WriteHead(p jitpath.Paths, h Head) error {
	var text string
	switch h.Kind {
	case HeadBranch:
		text = refPrefix + h.Branch
	case HeadDetached:
		text = h.Digest
	}
	if err := os.WriteFile(p.Head(), []byte(text+"\n"), FilePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: write HEAD")
	}
	return nil
}

// ReadBranchHead reads the tip digest a branch ref currently points at.
func ReadBranchHead(p jitpath.Paths, name string) (string, error) {
	raw, err := os.ReadFile(p.BranchRef(name))
	if err != nil {
		if os.IsNotExist(err) {
			return "", jiterr.Newf(jiterr.NotFound, "no branch named %s", name)
		}
		return "", jiterr.Wrap(jiterr.IoFailure, err, "repo: read branch ref")
	}
	return strings.TrimSpace(string(raw)), nil
}

// WriteBranchHead sets a branch ref to digest, creating refs/heads/ as
// needed.
func WriteBranchHead(p jitpath.Paths, name, digest string) error {
	if err := os.MkdirAll(p.RefsHeadsDir(), DirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: create refs/heads")
	}
	if err := os.WriteFile(p.BranchRef(name), []byte(digest+"\n"), FilePerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: write branch ref")
	}
	return nil
}

// BranchExists reports whether a branch ref file exists.
func BranchExists(p jitpath.Paths, name string) bool {
	_, err := os.Stat(p.BranchRef(name))
	return err == nil
}

// ListBranches returns every branch name under refs/heads, sorted.
func ListBranches(p jitpath.Paths) ([]string, error) {
	entries, err := os.ReadDir(p.RefsHeadsDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "repo: list refs/heads")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// ResolveHeadDigest returns the concrete commit digest HEAD currently
// points at, dereferencing a symbolic ref if necessary.
func ResolveHeadDigest(p jitpath.Paths) (string, error) {
	h, err := ReadHead(p)
	if err != nil {
		return "", err
	}
	if h.Kind == HeadDetached {
		return h.Digest, nil
	}
	return ReadBranchHead(p, h.Branch)
}

// AppendLog appends one line to the log file at logPath, in the
// "<old>\t<new>\t<timestamp>\t<kind>: <message>" format used for
// logs/<ref-path>.
func AppendLog(logPath, oldDigest, newDigest, kind, message string, now time.Time) error {
	if err := os.MkdirAll(filepath.Dir(logPath), DirPerm); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: create log directory")
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, FilePerm)
	if err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: open log for append")
	}
	defer f.Close()

	line := fmt.Sprintf("%s\t%s\t%s\t%s: %s\n", oldDigest, newDigest, now.Format(index.TimeLayout), kind, message)
	if _, err := f.WriteString(line); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "repo: append log line")
	}
	return nil
}
