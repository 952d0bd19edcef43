package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/estimnet/cergm-gof/pkg/graph"
)

func main() {
	if len(os.Args) != 2 && len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: graph-info network.net [terms.txt]")
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatalf("Error opening network: %v", err)
	}
	defer f.Close()

	g, err := graph.ReadPajek(f)
	if err != nil {
		log.Fatalf("Error reading network: %v", err)
	}

	if len(os.Args) == 3 {
		tf, err := os.Open(os.Args[2])
		if err != nil {
			log.Fatalf("Error opening term file: %v", err)
		}
		defer tf.Close()

		terms, err := graph.ReadTerms(tf)
		if err != nil {
			log.Fatalf("Error reading terms: %v", err)
		}
		if err := g.SetTerms(terms); err != nil {
			log.Fatalf("Error attaching terms: %v", err)
		}
	}

	fmt.Println(g.Info())

	if g.HasTerms() {
		fmt.Printf("maxterm = %d\n", g.MaxTerm())

		counts := map[int]int{}
		for node := 1; node <= g.NodeCount(); node++ {
			counts[g.Term(node)]++
		}
		termList := make([]int, 0, len(counts))
		for term := range counts {
			termList = append(termList, term)
		}
		sort.Ints(termList)
		for _, term := range termList {
			fmt.Printf("term %d: %d nodes\n", term, counts[term])
		}
	}
}
