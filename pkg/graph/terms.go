package graph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadTerms reads an EstimNetDirected categorical attribute file holding
// the term (time period) of every node. The first line must be the
// attribute name "term" and each following line is one integer, the term
// of the node in that position: line i+1 belongs to node i. Trailing blank
// lines are tolerated, interior ones are not since they would shift the
// node alignment.
func ReadTerms(r io.Reader) ([]int, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading term file: %w", err)
		}
		return nil, fmt.Errorf("bad term file: empty")
	}
	if name := strings.TrimSpace(sc.Text()); name != "term" {
		return nil, fmt.Errorf("bad term file: attribute name %q, want \"term\"", name)
	}

	var lines []string
	for sc.Scan() {
		lines = append(lines, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading term file: %w", err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	terms := make([]int, len(lines))
	for i, line := range lines {
		t, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("bad term for node %d: %q", i+1, line)
		}
		terms[i] = t
	}
	return terms, nil
}

// WriteTerms writes the graph's term labels as an EstimNetDirected
// categorical attribute file, the format ReadTerms reads. Terms must have
// been attached with SetTerms.
func (d *Directed) WriteTerms(w io.Writer) error {
	if !d.HasTerms() {
		return fmt.Errorf("graph has no terms attached")
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("term\n")
	for _, t := range d.terms {
		fmt.Fprintf(bw, "%d\n", t)
	}
	return bw.Flush()
}
