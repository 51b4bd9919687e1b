package main

import (
	"strings"
	"testing"

	"hereditas/internal/model"
	herapi "hereditas/pkg/hereditas"
)

func TestPrintSummaryFormat(t *testing.T) {
	summary := herapi.InferSummary{
		RunID:   "run-1",
		Dataset: "family0",
		People: []herapi.PersonResult{
			{
				Name: "Ada",
				Marginals: model.PersonMarginals{
					Gene:  model.GeneDistribution{0.96, 0.03, 0.01},
					Trait: model.TraitDistribution{True: 0.0329, False: 0.9671},
				},
			},
		},
	}

	var out strings.Builder
	printSummary(&out, summary)

	want := `Ada:
  Gene:
    0: 0.9600
    1: 0.0300
    2: 0.0100
  Trait:
    false: 0.9671
    true: 0.0329
`
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
