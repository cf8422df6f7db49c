package repo

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/brickster241/jitvcs/internal/index"
	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/scanner"
)

// Add recursively scans target (a working-tree-root-relative path, or
// "." for the whole tree) and stages every non-ignored file found
// under it.
func (r *Repo) Add(target string) error {
	all, err := scanner.Scan(r.Paths.Root)
	if err != nil {
		return err
	}

	target = scanner.NormalizePath(target)
	selected := make([]string, 0, len(all))
	for _, rel := range all {
		if target == "." || rel == target || strings.HasPrefix(rel, target+"/") {
			selected = append(selected, rel)
		}
	}
	if len(selected) == 0 {
		return jiterr.Newf(jiterr.NotFound, "no files found under %s", target)
	}

	current := make(map[string]string, len(selected))
	for _, rel := range selected {
		path := filepath.Join(r.Paths.Root, rel)
		digest, err := hashWorkingFile(path)
		if err != nil {
			return err
		}
		if err := r.Objects.PutFile(path, digest); err != nil {
			return err
		}
		current[rel] = digest
	}

	idx, err := index.ReadFile(r.Paths.Index())
	if err != nil {
		return err
	}
	idx.Stage(current, time.Now())
	return index.WriteFile(r.Paths.Index(), idx)
}
