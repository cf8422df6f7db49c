package repo

import "github.com/brickster241/jitvcs/internal/commitgraph"

// Log returns the commit history starting at HEAD, as
// commitgraph.History walks it: same-branch parent links are followed
// until no parent on the same branch remains, and parents on other
// branches appear as decorated entries without being followed.
func (r *Repo) Log() ([]commitgraph.HistoryEntry, error) {
	digest, err := ResolveHeadDigest(r.Paths)
	if err != nil {
		return nil, err
	}
	graph, err := r.loadGraph()
	if err != nil {
		return nil, err
	}
	return graph.History(digest), nil
}
