// Package inference computes exact per-person marginal distributions over
// gene count and trait expression by exhaustively enumerating every
// hypothesis consistent with observed evidence and weighing each by its
// joint probability under a fixed generative model.
package inference

import (
	"fmt"
	"math"
)

// Model holds the fixed probability constants of the generative model. It
// is threaded explicitly through the evaluator and the aggregator so that
// alternate constants can be substituted without global state.
type Model struct {
	// GenePrior is the population distribution over gene count for a
	// founder, indexed by copy count.
	GenePrior [3]float64
	// Mutation is the chance a copy flips state when passed to a child.
	Mutation float64
	// TraitProb is P(trait expressed | gene count), indexed by copy count.
	TraitProb [3]float64
}

// Default returns the reference model constants.
func Default() Model {
	return Model{
		GenePrior: [3]float64{0.96, 0.03, 0.01},
		Mutation:  0.01,
		TraitProb: [3]float64{0.01, 0.56, 0.65},
	}
}

const priorSumTolerance = 1e-9

// Validate checks that every constant is a probability and that the gene
// prior sums to one.
func (m Model) Validate() error {
	sum := 0.0
	for count, p := range m.GenePrior {
		if p < 0 || p > 1 {
			return fmt.Errorf("gene prior for count %d out of range: %v", count, p)
		}
		sum += p
	}
	if math.Abs(sum-1) > priorSumTolerance {
		return fmt.Errorf("gene prior sums to %v, want 1", sum)
	}
	if m.Mutation < 0 || m.Mutation > 1 {
		return fmt.Errorf("mutation probability out of range: %v", m.Mutation)
	}
	for count, p := range m.TraitProb {
		if p < 0 || p > 1 {
			return fmt.Errorf("trait probability for count %d out of range: %v", count, p)
		}
	}
	return nil
}

// transmit returns the probability that a parent carrying count copies
// passes a mutated copy to a child. The one-copy case is a flat one half;
// the reference model ignores mutation there by symmetry.
func (m Model) transmit(count int) float64 {
	switch count {
	case 0:
		return m.Mutation
	case 1:
		return 0.5
	default:
		return 1 - m.Mutation
	}
}

// traitFactor returns P(trait status | gene count).
func (m Model) traitFactor(count int, expressed bool) float64 {
	if expressed {
		return m.TraitProb[count]
	}
	return 1 - m.TraitProb[count]
}

// childFactor returns the probability that a child ends up with exactly
// count copies given each parent's probability of contributing one.
func childFactor(count int, fromMother, fromFather float64) float64 {
	switch count {
	case 0:
		return (1 - fromMother) * (1 - fromFather)
	case 1:
		return fromMother*(1-fromFather) + (1-fromMother)*fromFather
	default:
		return fromMother * fromFather
	}
}
