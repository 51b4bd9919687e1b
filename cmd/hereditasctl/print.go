package main

import (
	"fmt"
	"io"

	herapi "hereditas/pkg/hereditas"
)

// printSummary writes per-person distributions at four decimals, gene
// counts ascending, trait false before true.
func printSummary(w io.Writer, summary herapi.InferSummary) {
	for _, person := range summary.People {
		fmt.Fprintf(w, "%s:\n", person.Name)
		fmt.Fprintf(w, "  Gene:\n")
		for count, p := range person.Marginals.Gene {
			fmt.Fprintf(w, "    %d: %.4f\n", count, p)
		}
		fmt.Fprintf(w, "  Trait:\n")
		fmt.Fprintf(w, "    false: %.4f\n", person.Marginals.Trait.False)
		fmt.Fprintf(w, "    true: %.4f\n", person.Marginals.Trait.True)
	}
}
