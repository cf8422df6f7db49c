// Package index implements the staging manifest: a textual key=value
// record with one metadata section and one section per tracked file.
// The grammar is hand-rolled rather than parsed with an ini library
// (see DESIGN.md) because the format repeats the same section name
// ([ENTRY]) once per file and a generic ini parser would merge or drop
// duplicate sections.
package index

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/brickster241/jitvcs/internal/jiterr"
	"github.com/brickster241/jitvcs/internal/objstore"
)

// TimeLayout is the on-disk timestamp format used throughout the index
// (and mirrored by the commit metadata).
const TimeLayout = "2006-01-02 15:04:05"

// FileInfo describes one tracked file.
type FileInfo struct {
	Filename     string
	Checksum     string
	AdditionDate time.Time
	LastModified time.Time
	IsDirty      bool
	IsNew        bool
}

// MetaData is the [METADATA] section.
type MetaData struct {
	Entries      int
	LastModified time.Time
	IsDirty      bool
}

// Content is the full parsed index: one MetaData plus a path→FileInfo
// map. Paths are unique; map order carries no meaning.
type Content struct {
	Meta  MetaData
	Files map[string]FileInfo
}

// New returns an empty Content ready to be staged into.
func New() *Content {
	return &Content{Files: map[string]FileInfo{}}
}

// SortedFilenames returns the tracked paths in lexicographic order.
func (c *Content) SortedFilenames() []string {
	names := make([]string, 0, len(c.Files))
	for name := range c.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Serialize renders c in the §4.4 text grammar.
func (c *Content) Serialize() []byte {
	var b strings.Builder
	b.WriteString("[METADATA]\n")
	b.WriteString("entries = " + strconv.Itoa(len(c.Files)) + "\n")
	b.WriteString("last_modified = " + c.Meta.LastModified.Format(TimeLayout) + "\n")
	b.WriteString("is_dirty = " + boolString(c.Meta.IsDirty) + "\n")

	for _, name := range c.SortedFilenames() {
		f := c.Files[name]
		b.WriteString("\n[ENTRY]\n")
		b.WriteString("filename = " + f.Filename + "\n")
		b.WriteString("checksum = " + f.Checksum + "\n")
		b.WriteString("addition_date = " + f.AdditionDate.Format(TimeLayout) + "\n")
		b.WriteString("last_modified = " + f.LastModified.Format(TimeLayout) + "\n")
		b.WriteString("is_dirty = " + boolString(f.IsDirty) + "\n")
		b.WriteString("is_new = " + boolString(f.IsNew) + "\n")
		b.WriteString("\n")
	}
	return []byte(b.String())
}

// Parse reads the §4.4 text grammar. It tolerates missing keys
// (default-zero fields) and a blank line as the entry terminator.
func Parse(data []byte) (*Content, error) {
	content := New()
	var cur FileInfo
	inEntry := false
	haveCur := false

	flush := func() {
		if haveCur && cur.Filename != "" {
			content.Files[cur.Filename] = cur
		}
		cur = FileInfo{}
		haveCur = false
	}

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "[METADATA]":
			flush()
			inEntry = false
		case line == "[ENTRY]":
			flush()
			inEntry = true
			haveCur = true
		case strings.Contains(line, "="):
			idx := strings.Index(line, "=")
			key := strings.TrimSpace(line[:idx])
			val := strings.TrimSpace(line[idx+1:])
			if !inEntry {
				switch key {
				case "entries":
					content.Meta.Entries, _ = strconv.Atoi(val)
				case "last_modified":
					content.Meta.LastModified, _ = time.Parse(TimeLayout, val)
				case "is_dirty":
					content.Meta.IsDirty = val == "true"
				}
			} else {
				haveCur = true
				switch key {
				case "filename":
					cur.Filename = val
				case "checksum":
					cur.Checksum = val
				case "addition_date":
					cur.AdditionDate, _ = time.Parse(TimeLayout, val)
				case "last_modified":
					cur.LastModified, _ = time.Parse(TimeLayout, val)
				case "is_dirty":
					cur.IsDirty = val == "true"
				case "is_new":
					cur.IsNew = val == "true"
				}
			}
		case line == "" && inEntry:
			flush()
			inEntry = false
		}
	}
	flush()

	content.Meta.Entries = len(content.Files)
	return content, nil
}

// Stage merges a freshly scanned path→digest map into c: new paths are
// marked is_new=is_dirty=true; paths whose digest changed are marked
// is_dirty=true with is_new cleared; unchanged paths are left
// untouched. Returns whether anything was mutated. Staging the same
// set twice is idempotent: the second pass finds every digest already
// matching and mutates nothing.
func (c *Content) Stage(current map[string]string, now time.Time) bool {
	mutated := false
	for path, digest := range current {
		existing, tracked := c.Files[path]
		switch {
		case !tracked:
			c.Files[path] = FileInfo{
				Filename:     path,
				Checksum:     digest,
				AdditionDate: now,
				LastModified: now,
				IsDirty:      true,
				IsNew:        true,
			}
			mutated = true
		case existing.Checksum != digest:
			existing.Checksum = digest
			existing.LastModified = now
			existing.IsDirty = true
			existing.IsNew = false
			c.Files[path] = existing
			mutated = true
		}
	}
	if mutated {
		c.Meta.IsDirty = true
	}
	c.Meta.Entries = len(c.Files)
	c.Meta.LastModified = now
	return mutated
}

// PrepareCommit clears every entry's is_dirty/is_new flags and the
// metadata is_dirty flag, producing the canonical post-commit state
// that must be hashed to derive a stable commit digest.
func (c *Content) PrepareCommit(now time.Time) {
	for name, f := range c.Files {
		f.IsDirty = false
		f.IsNew = false
		c.Files[name] = f
	}
	c.Meta.IsDirty = false
	c.Meta.LastModified = now
	c.Meta.Entries = len(c.Files)
}

// Clone returns a deep copy of c, which can be mutated independently
// of c.
func (c *Content) Clone() *Content {
	out := New()
	out.Meta = c.Meta
	for k, v := range c.Files {
		out.Files[k] = v
	}
	return out
}

// ReadFile loads and parses the index at path. A missing file yields an
// empty Content rather than an error, since a freshly initialised
// repository has no index yet.
func ReadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, jiterr.Wrap(jiterr.IoFailure, err, "index: read")
	}
	return Parse(data)
}

// WriteFile serializes c and writes it to path.
func WriteFile(path string, c *Content) error {
	if err := os.WriteFile(path, c.Serialize(), 0o640); err != nil {
		return jiterr.Wrap(jiterr.IoFailure, err, "index: write")
	}
	return nil
}

// ReadBinary loads and parses the index content stored as an object
// under digest, i.e. the tree a commit points at: decompress the
// stored blob, then parse the same text grammar used for the working
// index.
func ReadBinary(store *objstore.Store, digest string) (*Content, error) {
	raw, err := store.Get(digest)
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}
