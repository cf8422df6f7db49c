package repo

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/scanner"
)

// Status is the four-way (plus clean) partition of the working tree
// against the index.
type Status struct {
	Staged   []string
	Modified []string
	New      []string
	Deleted  []string
	Clean    []string
}

// IsDirty reports the stricter gate branch/checkout/merge require:
// any set other than Clean blocks the verb.
func (s Status) IsDirty() bool {
	return len(s.Staged) > 0 || len(s.Modified) > 0 || len(s.New) > 0 || len(s.Deleted) > 0
}

// hashWorkingFile hashes a file's current on-disk contents.
func hashWorkingFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", jiterr.Wrap(jiterr.IoFailure, err, "repo: read working file")
	}
	return codec.HashBytes(data), nil
}

// Status scans the working tree and classifies every path against the
// currently staged index.
func (r *Repo) Status() (Status, error) {
	idx, err := index.ReadFile(r.Paths.Index())
	if err != nil {
		return Status{}, err
	}

	paths, err := scanner.Scan(r.Paths.Root)
	if err != nil {
		return Status{}, err
	}

	var st Status
	seen := map[string]struct{}{}
	for _, rel := range paths {
		seen[rel] = struct{}{}
		digest, err := hashWorkingFile(filepath.Join(r.Paths.Root, rel))
		if err != nil {
			return Status{}, err
		}

		entry, tracked := idx.Files[rel]
		switch {
		case !tracked:
			st.New = append(st.New, rel)
		case entry.Checksum != digest:
			st.Modified = append(st.Modified, rel)
		case entry.IsDirty:
			st.Staged = append(st.Staged, rel)
		default:
			st.Clean = append(st.Clean, rel)
		}
	}

	for p := range idx.Files {
		if _, ok := seen[p]; !ok {
			st.Deleted = append(st.Deleted, p)
		}
	}

	sort.Strings(st.Staged)
	sort.Strings(st.Modified)
	sort.Strings(st.New)
	sort.Strings(st.Deleted)
	sort.Strings(st.Clean)
	return st, nil
}

// RequireClean returns a RepoDirty error naming the operation if the
// working tree is not clean; branch/checkout/merge all gate on this.
func (r *Repo) RequireClean(operation string) error {
	st, err := r.Status()
	if err != nil {
		return err
	}
	if st.IsDirty() {
		return jiterr.Newf(jiterr.RepoDirty, "you have uncommitted changes! please commit them first (%s)", operation)
	}
	return nil
}
