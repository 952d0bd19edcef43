package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/estimnet/cergm-gof/pkg/graph"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "usage: subgraphs-to-sqlite dbfile network.net [network.net ...]")
		os.Exit(1)
	}

	dbFile := os.Args[1]
	netFiles := os.Args[2:]

	store, err := graph.NewSQLiteStore(dbFile)
	if err != nil {
		log.Fatalf("Error initializing SQLite store: %v", err)
	}
	defer store.Close()

	for _, netFile := range netFiles {
		g, err := readNetwork(netFile)
		if err != nil {
			log.Fatalf("Error reading network from %s: %v", netFile, err)
		}

		name := strings.TrimSuffix(filepath.Base(netFile), ".net")
		if err := store.WriteGraph(name, g); err != nil {
			log.Fatalf("Error writing %s to SQLite database: %v", name, err)
		}
		fmt.Printf("stored %s: %d nodes, %d arcs\n", name, g.NodeCount(), g.ArcCount())
	}
}

// readNetwork loads a Pajek network and, when the matching term attribute
// file sits next to it, attaches the term labels too. Subgraph outputs
// named x_cergm2_subgraph.net pair with x_cergm2_terms.txt, anything else
// with <base>_terms.txt.
func readNetwork(netFile string) (*graph.Directed, error) {
	f, err := os.Open(netFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := graph.ReadPajek(f)
	if err != nil {
		return nil, err
	}

	termFile := termFileFor(netFile)
	tf, err := os.Open(termFile)
	if os.IsNotExist(err) {
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	defer tf.Close()

	terms, err := graph.ReadTerms(tf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", termFile, err)
	}
	if err := g.SetTerms(terms); err != nil {
		return nil, fmt.Errorf("%s: %w", termFile, err)
	}
	return g, nil
}

func termFileFor(netFile string) string {
	if strings.HasSuffix(netFile, "_subgraph.net") {
		return strings.TrimSuffix(netFile, "_subgraph.net") + "_terms.txt"
	}
	return strings.TrimSuffix(netFile, ".net") + "_terms.txt"
}
