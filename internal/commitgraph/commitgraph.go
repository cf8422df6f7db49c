// Package commitgraph implements the commit graph: an in-memory map
// from commit digest to Commit, persisted as a single
// deflate-compressed binary blob at a fixed well-known digest
// (jitpath.CommitGraphDigest) so a clone always knows where to find it
// without any negotiation.
package commitgraph

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"
	"time"

	"github.com/hashicorp/go-set/v2"

	"github.com/brickster241/jitvcs/internal/codec"
	"github.com/brickster241/jitvcs/internal/jiterr"
)

// Commit is one node in the graph.
type Commit struct {
	Checksum   string
	Message    string
	BranchName string
	Author     string
	Timestamp  time.Time
	Parents    []string
}

// Graph is the full in-memory commit history: every commit ever made,
// keyed by its own checksum.
type Graph struct {
	commits map[string]Commit
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{commits: map[string]Commit{}}
}

// Add inserts or overwrites commit verbatim, including whatever parents
// it already carries.
func (g *Graph) Add(c Commit) {
	g.commits[c.Checksum] = c
}

// AddWithParents inserts commit, keeping only the parent checksums that
// are already present in the graph — exactly
// CommitGraph::add_commit(Commit, parents)'s filtering behaviour.
func (g *Graph) AddWithParents(c Commit, parents []string) {
	linked := make([]string, 0, len(parents))
	for _, p := range parents {
		if _, ok := g.commits[p]; ok {
			linked = append(linked, p)
		}
	}
	c.Parents = linked
	g.Add(c)
}

// Get looks up a commit by checksum.
func (g *Graph) Get(checksum string) (Commit, bool) {
	c, ok := g.commits[checksum]
	return c, ok
}

// Len reports how many commits the graph holds.
func (g *Graph) Len() int { return len(g.commits) }

// Intersection returns the most recent common ancestor of checksum1 and
// checksum2: every ancestor of checksum1 is collected first, then
// checksum2's ancestors are walked and checked against that set; of
// the overlapping commits, the one with the latest timestamp wins.
// Returns false if either commit is unknown or no common ancestor
// exists (unrelated histories).
func (g *Graph) Intersection(checksum1, checksum2 string) (Commit, bool) {
	start1, ok1 := g.commits[checksum1]
	start2, ok2 := g.commits[checksum2]
	if !ok1 || !ok2 {
		return Commit{}, false
	}

	ancestors := set.New[string](0)
	stack1 := []Commit{start1}
	for len(stack1) > 0 {
		cur := stack1[len(stack1)-1]
		stack1 = stack1[:len(stack1)-1]
		if !ancestors.Insert(cur.Checksum) {
			continue
		}
		for _, p := range cur.Parents {
			if parent, ok := g.commits[p]; ok {
				stack1 = append(stack1, parent)
			}
		}
	}

	var intersections []Commit
	stack2 := []Commit{start2}
	visited2 := set.New[string](0)
	for len(stack2) > 0 {
		cur := stack2[len(stack2)-1]
		stack2 = stack2[:len(stack2)-1]
		if ancestors.Contains(cur.Checksum) {
			intersections = append(intersections, cur)
		}
		if !visited2.Insert(cur.Checksum) {
			continue
		}
		for _, p := range cur.Parents {
			if parent, ok := g.commits[p]; ok {
				stack2 = append(stack2, parent)
			}
		}
	}

	if len(intersections) == 0 {
		return Commit{}, false
	}
	sort.Slice(intersections, func(i, j int) bool {
		return intersections[j].Timestamp.Before(intersections[i].Timestamp)
	})
	return intersections[0], true
}

// HistoryEntry is one line of a rendered commit history. BranchPoint is
// set when this entry is a decorated "merged from" ancestor on a
// different branch rather than the next commit on the branch being
// walked.
type HistoryEntry struct {
	Commit      Commit
	BranchPoint string
}

// History walks the same-branch parent chain starting at checksum,
// exactly as print_commit_history does: each commit is emitted in
// order, and whenever a parent belongs to a different branch it is
// emitted too, decorated with its branch name, without the walk
// following it further.
func (g *Graph) History(checksum string) []HistoryEntry {
	var out []HistoryEntry
	for {
		commit, ok := g.commits[checksum]
		if !ok {
			break
		}
		out = append(out, HistoryEntry{Commit: commit})

		next := checksum
		for _, pChecksum := range commit.Parents {
			parent, ok := g.commits[pChecksum]
			if !ok {
				continue
			}
			if parent.BranchName == commit.BranchName {
				next = parent.Checksum
			} else {
				out = append(out, HistoryEntry{Commit: parent, BranchPoint: parent.BranchName})
			}
		}
		if next == checksum {
			break
		}
		checksum = next
	}
	return out
}

func writeLP(w *bytes.Buffer, s string) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(s)))
	w.Write(n[:])
	w.WriteString(s)
}

func readLP(r *bytes.Reader) (string, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Serialize renders the graph as the length-prefixed binary form
// save_commits writes: a u64 commit count, then each commit as a
// sequence of u64-length-prefixed string fields, an int64 Unix-nanosecond
// timestamp, and a u64-length-prefixed list of parent checksums.
func (g *Graph) Serialize() []byte {
	var buf bytes.Buffer
	var count [8]byte
	binary.LittleEndian.PutUint64(count[:], uint64(len(g.commits)))
	buf.Write(count[:])

	for _, c := range g.commits {
		writeLP(&buf, c.Checksum)
		writeLP(&buf, c.Message)
		writeLP(&buf, c.BranchName)
		writeLP(&buf, c.Author)

		var ts [8]byte
		binary.LittleEndian.PutUint64(ts[:], uint64(c.Timestamp.UnixNano()))
		buf.Write(ts[:])

		var np [8]byte
		binary.LittleEndian.PutUint64(np[:], uint64(len(c.Parents)))
		buf.Write(np[:])
		for _, p := range c.Parents {
			writeLP(&buf, p)
		}
	}
	return buf.Bytes()
}

// Deserialize parses the Serialize form back into a Graph.
func Deserialize(raw []byte) (*Graph, error) {
	r := bytes.NewReader(raw)
	var count uint64
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read commit count")
	}

	g := New()
	for i := uint64(0); i < count; i++ {
		var c Commit
		var err error
		if c.Checksum, err = readLP(r); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read checksum")
		}
		if c.Message, err = readLP(r); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read message")
		}
		if c.BranchName, err = readLP(r); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read branch name")
		}
		if c.Author, err = readLP(r); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read author")
		}

		var nanos uint64
		if err := binary.Read(r, binary.LittleEndian, &nanos); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read timestamp")
		}
		c.Timestamp = time.Unix(0, int64(nanos)).UTC()

		var parentCount uint64
		if err := binary.Read(r, binary.LittleEndian, &parentCount); err != nil {
			return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read parent count")
		}
		c.Parents = make([]string, parentCount)
		for j := uint64(0); j < parentCount; j++ {
			if c.Parents[j], err = readLP(r); err != nil {
				return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read parent checksum")
			}
		}

		g.commits[c.Checksum] = c
	}
	return g, nil
}

// Encode compresses Serialize's output behind a u64 compressed-length
// prefix, matching save_commits's on-disk framing.
func (g *Graph) Encode() ([]byte, error) {
	compressed, err := codec.Compress(g.Serialize())
	if err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: compress")
	}
	var buf bytes.Buffer
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(compressed)))
	buf.Write(n[:])
	buf.Write(compressed)
	return buf.Bytes(), nil
}

// Decode reverses Encode.
func Decode(raw []byte) (*Graph, error) {
	r := bytes.NewReader(raw)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read compressed length")
	}
	compressed := make([]byte, n)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: read compressed body")
	}
	serialized, err := codec.Decompress(compressed)
	if err != nil {
		return nil, jiterr.Wrap(jiterr.CodecFailure, err, "commitgraph: decompress")
	}
	return Deserialize(serialized)
}
