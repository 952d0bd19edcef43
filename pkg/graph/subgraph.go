package graph

import (
	"fmt"

	"github.com/RoaringBitmap/roaring"
)

// LastTermNodeSet returns the nodes that qualify for the goodness-of-fit
// subgraph of a cERGM fit: every node whose term is the last term of the
// network, plus every earlier-term node that is the target of an out-arc
// from a last-term node. Terms must have been attached with SetTerms.
func (d *Directed) LastTermNodeSet() (*roaring.Bitmap, error) {
	if !d.HasTerms() {
		return nil, fmt.Errorf("graph has no terms attached")
	}
	keep := roaring.New()
	for node := 1; node <= d.n; node++ {
		if d.Term(node) != d.maxTerm {
			continue
		}
		keep.Add(uint32(node))
		for _, to := range d.OutNeighbors(node) {
			keep.Add(uint32(to))
		}
	}
	return keep, nil
}

// InducedSubgraph returns the subgraph induced by the node set keep: the
// kept nodes, renumbered 1..k in ascending order of their old numbers, and
// every arc of the graph whose endpoints are both kept. Set members
// outside 1..NodeCount are ignored. Term labels, when attached, carry over
// to the kept nodes.
func (d *Directed) InducedSubgraph(keep *roaring.Bitmap) *Directed {
	order := make([]int, 0, keep.GetCardinality())
	renum := make(map[int]int, keep.GetCardinality())
	it := keep.Iterator()
	for it.HasNext() {
		node := int(it.Next())
		if node < 1 || node > d.n {
			continue
		}
		order = append(order, node)
		renum[node] = len(order)
	}

	sub := &Directed{g: newSimpleDirected(len(order)), n: len(order)}
	if d.HasTerms() {
		terms := make([]int, len(order))
		for i, node := range order {
			terms[i] = d.Term(node)
		}
		_ = sub.SetTerms(terms) // len(terms) == sub.n
	}
	for _, from := range order {
		for _, to := range d.OutNeighbors(from) {
			if newTo, ok := renum[to]; ok {
				sub.g.SetEdge(sub.g.NewEdge(sub.g.Node(int64(renum[from])), sub.g.Node(int64(newTo))))
				sub.arcs++
			}
		}
	}
	return sub
}

// LastTermSubgraph extracts the goodness-of-fit subgraph in one step: the
// subgraph induced by LastTermNodeSet.
func (d *Directed) LastTermSubgraph() (*Directed, error) {
	keep, err := d.LastTermNodeSet()
	if err != nil {
		return nil, err
	}
	return d.InducedSubgraph(keep), nil
}
