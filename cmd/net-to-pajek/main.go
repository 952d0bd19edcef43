package main

import (
	"fmt"
	"log"
	"os"

	"github.com/estimnet/cergm-gof/pkg/graph"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: net-to-pajek inputfile outputfile")
		os.Exit(1)
	}

	inputFile := os.Args[1]
	outputFile := os.Args[2]

	in, err := os.Open(inputFile)
	if err != nil {
		log.Fatalf("Error opening arc-list network: %v", err)
	}
	defer in.Close()

	out := os.Stdout
	if outputFile != "-" {
		out, err = os.Create(outputFile)
		if err != nil {
			log.Fatalf("Error creating output network: %v", err)
		}
	}

	res, err := graph.ConvertArclist(in, out)
	if err != nil {
		log.Fatalf("Error converting network: %v", err)
	}
	if outputFile != "-" {
		if err := out.Close(); err != nil {
			log.Fatalf("Error closing output network: %v", err)
		}
	}

	if res.OutOfRange > 0 {
		fmt.Fprintf(os.Stderr, "warning: %d arc endpoints outside 1..%d\n", res.OutOfRange, res.Vertices)
	}
	fmt.Fprintf(os.Stderr, "converted %d vertices, %d arcs\n", res.Vertices, res.Arcs)
}
