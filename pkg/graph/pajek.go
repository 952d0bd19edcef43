package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ConvertResult is the outcome of ConvertArclist.
type ConvertResult struct {
	// Vertices is the node count declared by the *Vertices header.
	Vertices int
	// Arcs is the number of arc lines copied through.
	Arcs int
	// OutOfRange counts arc lines with an endpoint outside 1..Vertices.
	// Such lines are copied through anyway, the numbering problem is
	// caught again when the output is loaded.
	OutOfRange int
}

// ConvertArclist rewrites a compact Pajek arc-list network, the layout
// written by EstimNetDirected and its simulator, into the equivalent
// network with an explicit vertex section, the layout expected by graph
// loaders that require every vertex to be enumerated.
//
// The input must start with a "*Vertices N" line followed by a "*Arcs"
// line, both case-insensitive, with the arc lines after that. The output
// is "*Vertices N", the vertex numbers 1..N one per line, "*Arcs", and
// then the input's arc lines unchanged. Nothing is written to w unless
// the whole input validates, and blank lines are dropped.
func ConvertArclist(r io.Reader, w io.Writer) (*ConvertResult, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, scanFailure(sc, "missing *Vertices header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 2 || !strings.EqualFold(fields[0], "*vertices") {
		return nil, fmt.Errorf("bad network file: expected *Vertices header, got %q", sc.Text())
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("bad vertex count %q", fields[1])
	}

	if !sc.Scan() {
		return nil, scanFailure(sc, "missing *Arcs header")
	}
	if !strings.EqualFold(strings.TrimSpace(sc.Text()), "*arcs") {
		return nil, fmt.Errorf("bad network file: expected *Arcs header, got %q", sc.Text())
	}

	res := &ConvertResult{Vertices: n}
	var lines []string
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		from, to, err := parseArcLine(line)
		if err != nil {
			return nil, err
		}
		if from < 1 || from > n || to < 1 || to > n {
			res.OutOfRange++
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading network file: %w", err)
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "*Vertices %d\n", n)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(bw, "%d\n", i)
	}
	bw.WriteString("*Arcs\n")
	for _, line := range lines {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	res.Arcs = len(lines)
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing network file: %w", err)
	}
	return res, nil
}

// ReadPajek loads a directed graph from a Pajek network. Both layouts are
// accepted: the compact arc list where *Arcs directly follows the
// *Vertices header, and the layout with an explicit vertex section in
// between. Vertex lines may carry labels after the vertex number, which
// are ignored. Arc endpoints outside 1..N, self-arcs, and malformed lines
// are errors.
func ReadPajek(r io.Reader) (*Directed, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, scanFailure(sc, "missing *Vertices header")
	}
	fields := strings.Fields(sc.Text())
	if len(fields) < 2 || !strings.EqualFold(fields[0], "*vertices") {
		return nil, fmt.Errorf("bad network file: expected *Vertices header, got %q", sc.Text())
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return nil, fmt.Errorf("bad vertex count %q", fields[1])
	}

	g, err := NewDirected(n)
	if err != nil {
		return nil, err
	}

	sawArcs := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "*arcs") {
			sawArcs = true
			break
		}
		if strings.HasPrefix(line, "*") {
			return nil, fmt.Errorf("bad network file: expected *Arcs section, got %q", line)
		}
		id, err := strconv.Atoi(strings.Fields(line)[0])
		if err != nil {
			return nil, fmt.Errorf("bad vertex line %q", line)
		}
		if id < 1 || id > n {
			return nil, fmt.Errorf("vertex %d outside 1..%d", id, n)
		}
	}
	if !sawArcs {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading network file: %w", err)
		}
		return nil, fmt.Errorf("bad network file: no *Arcs section")
	}

	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		from, to, err := parseArcLine(line)
		if err != nil {
			return nil, err
		}
		if err := g.AddArc(from, to); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading network file: %w", err)
	}
	return g, nil
}

// WritePajek writes the graph as a Pajek network with an explicit vertex
// section: the *Vertices header, vertex numbers 1..N one per line, and the
// *Arcs section sorted by source and then target.
func (d *Directed) WritePajek(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "*Vertices %d\n", d.n)
	for i := 1; i <= d.n; i++ {
		fmt.Fprintf(bw, "%d\n", i)
	}
	bw.WriteString("*Arcs\n")
	for _, a := range d.Arcs() {
		fmt.Fprintf(bw, "%d %d\n", a.From, a.To)
	}
	return bw.Flush()
}

func parseArcLine(line string) (from, to int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("bad arc line %q: want two node numbers", line)
	}
	from, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad arc line %q: %w", line, err)
	}
	to, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("bad arc line %q: %w", line, err)
	}
	return from, to, nil
}

func scanFailure(sc *bufio.Scanner, msg string) error {
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading network file: %w", err)
	}
	return fmt.Errorf("bad network file: %s", msg)
}
