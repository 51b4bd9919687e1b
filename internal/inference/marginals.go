package inference

import (
	"errors"
	"fmt"
	"sync"

	"gonum.org/v1/gonum/floats"

	"hereditas/internal/model"
	"hereditas/internal/pedigree"
)

// ErrDegenerateModel marks evidence to which the model assigns zero
// probability under every hypothesis, so no normalized marginal exists.
var ErrDegenerateModel = errors.New("degenerate model")

// Options tunes the aggregation. Workers above one splits the gene
// partition index space into contiguous ranges evaluated concurrently;
// each worker owns private accumulators that are combined before
// normalization, so the result is identical up to floating-point
// summation order.
type Options struct {
	Workers int
}

// accumulator carries the unnormalized per-person totals for one worker.
type accumulator struct {
	gene  [][3]float64
	trait [][2]float64 // index 0 = expressed, 1 = not expressed
}

func newAccumulator(n int) *accumulator {
	return &accumulator{
		gene:  make([][3]float64, n),
		trait: make([][2]float64, n),
	}
}

func (a *accumulator) add(p float64, genes []int, traits []bool) {
	for i := range a.gene {
		a.gene[i][genes[i]] += p
		if traits[i] {
			a.trait[i][0] += p
		} else {
			a.trait[i][1] += p
		}
	}
}

func (a *accumulator) merge(other *accumulator) {
	for i := range a.gene {
		for count := range a.gene[i] {
			a.gene[i][count] += other.gene[i][count]
		}
		a.trait[i][0] += other.trait[i][0]
		a.trait[i][1] += other.trait[i][1]
	}
}

// ComputeMarginals enumerates every gene partition and every
// evidence-consistent trait assignment, weighs each complete hypothesis by
// its joint probability, and returns per-person normalized distributions
// over gene count and trait expression. evidence maps person names to
// observed trait values; people absent from it are unconstrained.
func ComputeMarginals(ped *pedigree.Pedigree, m Model, evidence map[string]bool, opts Options) (map[string]model.PersonMarginals, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	names := ped.Names()
	for name := range evidence {
		if _, ok := ped.Person(name); !ok {
			return nil, fmt.Errorf("evidence references unknown person %s", name)
		}
	}

	compiled := compile(ped)
	n := len(compiled.people)
	fixed := make(map[int]bool, len(evidence))
	for i, person := range compiled.people {
		if observed, ok := evidence[person.name]; ok {
			fixed[i] = observed
		}
	}

	partitions := pow3(n)
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	if uint64(workers) > partitions {
		workers = int(partitions)
	}

	partials := make([]*accumulator, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo := partitions * uint64(w) / uint64(workers)
		hi := partitions * uint64(w+1) / uint64(workers)
		acc := newAccumulator(n)
		partials[w] = acc
		go func(lo, hi uint64) {
			defer wg.Done()
			genes := make([]int, n)
			subsets := newTraitSubsets(n, fixed)
			for index := lo; index < hi; index++ {
				decodeGenePartition(index, genes)
				subsets.reset()
				for traits, ok := subsets.nextAssignment(); ok; traits, ok = subsets.nextAssignment() {
					acc.add(compiled.joint(m, genes, traits), genes, traits)
				}
			}
		}(lo, hi)
	}
	wg.Wait()

	combined := partials[0]
	for _, partial := range partials[1:] {
		combined.merge(partial)
	}

	marginals := make(map[string]model.PersonMarginals, n)
	for i, name := range names {
		geneTotal := floats.Sum(combined.gene[i][:])
		traitTotal := floats.Sum(combined.trait[i][:])
		if geneTotal == 0 || traitTotal == 0 {
			return nil, fmt.Errorf("%w: every hypothesis for %s has zero probability", ErrDegenerateModel, name)
		}
		floats.Scale(1/geneTotal, combined.gene[i][:])
		floats.Scale(1/traitTotal, combined.trait[i][:])
		marginals[name] = model.PersonMarginals{
			Gene: model.GeneDistribution(combined.gene[i]),
			Trait: model.TraitDistribution{
				True:  combined.trait[i][0],
				False: combined.trait[i][1],
			},
		}
	}
	return marginals, nil
}
