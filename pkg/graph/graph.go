// Package graph provides the directed-graph model and file formats used for
// cERGM goodness-of-fit subgraph extraction.
//
// The package defines the following types:
//
// - Directed: a directed graph over nodes numbered 1..N with optional
// per-node integer term (time period) labels, backed by gonum's
// simple.DirectedGraph.
// - Arc: an ordered (From, To) pair of node numbers.
// - Info: summary statistics for a graph.
// - ConvertResult: the outcome of an arc-list format conversion.
// - SQLiteStore: persistence of term-labelled graphs in a SQLite database.
//
// File formats follow EstimNetDirected conventions: networks are Pajek arc
// lists (either the compact arc-list layout or the layout with an explicit
// vertex section) and term labels live in attribute files whose first line
// is the attribute name.
package graph

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Directed is a directed graph whose nodes are numbered 1..N, matching the
// 1-based numbering of Pajek network files. Parallel arcs collapse to a
// single arc and self-arcs are rejected, so the graph is always a simple
// digraph as cERGM models require.
type Directed struct {
	g    *simple.DirectedGraph
	n    int
	arcs int

	// terms[i] is the term of node i+1, nil until SetTerms.
	terms   []int
	maxTerm int
}

// Arc is a directed arc between two 1-based node numbers.
type Arc struct {
	From int
	To   int
}

// NewDirected creates a graph with n nodes, numbered 1..n, and no arcs.
func NewDirected(n int) (*Directed, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid node count %d", n)
	}
	return &Directed{g: newSimpleDirected(n), n: n}, nil
}

func newSimpleDirected(n int) *simple.DirectedGraph {
	g := simple.NewDirectedGraph()
	for i := 1; i <= n; i++ {
		g.AddNode(simple.Node(i))
	}
	return g
}

// NodeCount returns the number of nodes in the graph.
func (d *Directed) NodeCount() int {
	return d.n
}

// ArcCount returns the number of distinct arcs in the graph.
func (d *Directed) ArcCount() int {
	return d.arcs
}

// AddArc adds the arc from -> to. Both endpoints must be in 1..NodeCount.
// Adding an arc that is already present is a no-op, and self-arcs are an
// error.
func (d *Directed) AddArc(from, to int) error {
	if from < 1 || from > d.n {
		return fmt.Errorf("arc source %d outside 1..%d", from, d.n)
	}
	if to < 1 || to > d.n {
		return fmt.Errorf("arc target %d outside 1..%d", to, d.n)
	}
	if from == to {
		return fmt.Errorf("self-arc at node %d", from)
	}
	if d.g.HasEdgeFromTo(int64(from), int64(to)) {
		return nil
	}
	d.g.SetEdge(d.g.NewEdge(d.g.Node(int64(from)), d.g.Node(int64(to))))
	d.arcs++
	return nil
}

// HasArc reports whether the arc from -> to is present.
func (d *Directed) HasArc(from, to int) bool {
	if from < 1 || from > d.n || to < 1 || to > d.n {
		return false
	}
	return d.g.HasEdgeFromTo(int64(from), int64(to))
}

// OutNeighbors returns the targets of the arcs leaving node, in ascending
// order. A node outside 1..NodeCount has no neighbors.
func (d *Directed) OutNeighbors(node int) []int {
	if node < 1 || node > d.n {
		return nil
	}
	var out []int
	it := d.g.From(int64(node))
	for it.Next() {
		out = append(out, int(it.Node().ID()))
	}
	sort.Ints(out)
	return out
}

// InNeighbors returns the sources of the arcs entering node, in ascending
// order.
func (d *Directed) InNeighbors(node int) []int {
	if node < 1 || node > d.n {
		return nil
	}
	var in []int
	it := d.g.To(int64(node))
	for it.Next() {
		in = append(in, int(it.Node().ID()))
	}
	sort.Ints(in)
	return in
}

// Arcs returns every arc in the graph, sorted by source and then target.
func (d *Directed) Arcs() []Arc {
	arcs := make([]Arc, 0, d.arcs)
	for from := 1; from <= d.n; from++ {
		for _, to := range d.OutNeighbors(from) {
			arcs = append(arcs, Arc{From: from, To: to})
		}
	}
	return arcs
}

// SetTerms attaches a term (time period) label to every node. terms[i] is
// the term of node i+1, so the slice length must equal NodeCount. The slice
// is retained, not copied.
func (d *Directed) SetTerms(terms []int) error {
	if len(terms) != d.n {
		return fmt.Errorf("got %d terms for %d nodes", len(terms), d.n)
	}
	max := 0
	if len(terms) > 0 {
		max = terms[0]
		for _, t := range terms[1:] {
			if t > max {
				max = t
			}
		}
	}
	d.terms = terms
	d.maxTerm = max
	return nil
}

// HasTerms reports whether term labels have been attached with SetTerms.
func (d *Directed) HasTerms() bool {
	return d.terms != nil
}

// Terms returns the attached term labels, nil if none are attached. The
// returned slice must not be modified.
func (d *Directed) Terms() []int {
	return d.terms
}

// Term returns the term of the given node. The node must be in
// 1..NodeCount and terms must have been attached.
func (d *Directed) Term(node int) int {
	return d.terms[node-1]
}

// MaxTerm returns the highest term attached by SetTerms, the last time
// period of the network. It is zero when no terms are attached.
func (d *Directed) MaxTerm() int {
	return d.maxTerm
}

// Info holds summary statistics for a graph.
type Info struct {
	Nodes      int
	Arcs       int
	Density    float64
	ZeroDeg    int
	ZeroInDeg  int
	ZeroOutDeg int
}

// Info computes summary statistics for the graph.
func (d *Directed) Info() Info {
	inf := Info{Nodes: d.n, Arcs: d.arcs}
	if d.n > 1 {
		inf.Density = float64(d.arcs) / (float64(d.n) * float64(d.n-1))
	}
	for node := 1; node <= d.n; node++ {
		in := d.g.To(int64(node)).Len()
		out := d.g.From(int64(node)).Len()
		if in == 0 {
			inf.ZeroInDeg++
		}
		if out == 0 {
			inf.ZeroOutDeg++
		}
		if in == 0 && out == 0 {
			inf.ZeroDeg++
		}
	}
	return inf
}

func (i Info) String() string {
	return fmt.Sprintf("nodes: %d  arcs: %d  density: %.6g  zero-deg: %d  zero-in-deg: %d  zero-out-deg: %d",
		i.Nodes, i.Arcs, i.Density, i.ZeroDeg, i.ZeroInDeg, i.ZeroOutDeg)
}
