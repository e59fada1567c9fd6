// Command hpo serves and queries the Human Phenotype Ontology.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hpo:", err)
		os.Exit(1)
	}
}
