// Package scanner implements a read-only, idempotent working-tree
// enumeration: every regular file under a root whose normalised
// relative path isn't excluded by the repository directory itself or
// by .jitignore.
package scanner

import (
	"io/fs"
	"path"
	"path/filepath"
	"sort"

	"github.com/brickster241/jitvcs/internal/jitpath"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// Scan walks root and returns the sorted, forward-slash, root-relative
// paths of every tracked file: not the repository directory itself, and
// not matched by any .jitignore pattern.
func Scan(root string) ([]string, error) {
	ignores, err := loadIgnoreSet(jitpath.New(root).IgnoreFile())
	if err != nil {
		return nil, err
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "scanner: walk working tree")
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return jiterr.Wrap(jiterr.IoFailure, err, "scanner: relativize path")
		}
		rel = NormalizePath(rel)

		if d.IsDir() {
			if rel == jitpath.RepoDirName {
				return filepath.SkipDir
			}
			if ignores.matches(rel+"/", d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if ignores.matches(rel, d.Name()) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(files)
	return files, nil
}

// NormalizePath removes . / .. segments and redundant separators and
// renders the result with forward slashes.
func NormalizePath(p string) string {
	cleaned := filepath.ToSlash(filepath.Clean(p))
	return path.Clean(cleaned)
}
