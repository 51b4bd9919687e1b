package inference

import (
	"errors"
	"fmt"

	"hereditas/internal/pedigree"
)

// ErrInvalidHypothesis marks a malformed hypothesis handed to the
// evaluator: overlapping gene sets or a set member that is not part of the
// pedigree. It always indicates a caller bug, never a data condition.
var ErrInvalidHypothesis = errors.New("invalid hypothesis")

// JointProbability computes the probability of the single joint event in
// which every person in the pedigree carries exactly the hypothesized gene
// count (two copies for members of twoGene, one for members of oneGene,
// zero otherwise) and expresses the trait exactly when present in
// hasTrait. Inputs are not mutated.
func JointProbability(ped *pedigree.Pedigree, m Model, twoGene, oneGene, hasTrait map[string]bool) (float64, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	for name := range oneGene {
		if twoGene[name] {
			return 0, fmt.Errorf("%w: %s is in both the one-gene and two-gene sets", ErrInvalidHypothesis, name)
		}
	}
	for _, set := range []map[string]bool{twoGene, oneGene, hasTrait} {
		for name := range set {
			if _, ok := ped.Person(name); !ok {
				return 0, fmt.Errorf("%w: %s is not in the pedigree", ErrInvalidHypothesis, name)
			}
		}
	}

	compiled := compile(ped)
	genes := make([]int, len(compiled.people))
	traits := make([]bool, len(compiled.people))
	for i, person := range compiled.people {
		switch {
		case twoGene[person.name]:
			genes[i] = 2
		case oneGene[person.name]:
			genes[i] = 1
		}
		traits[i] = hasTrait[person.name]
	}
	return compiled.joint(m, genes, traits), nil
}

// compiledPedigree is a positional view of a pedigree: people in sorted
// name order with parent references resolved to indexes, so the hot
// enumeration loop never touches maps.
type compiledPedigree struct {
	people []compiledPerson
}

type compiledPerson struct {
	name   string
	mother int // index into people, -1 for founders
	father int
}

func compile(ped *pedigree.Pedigree) *compiledPedigree {
	names := ped.Names()
	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	people := make([]compiledPerson, len(names))
	for i, name := range names {
		person, _ := ped.Person(name)
		compiled := compiledPerson{name: name, mother: -1, father: -1}
		if !person.Founder() {
			compiled.mother = index[person.Mother]
			compiled.father = index[person.Father]
		}
		people[i] = compiled
	}
	return &compiledPedigree{people: people}
}

// joint evaluates the joint probability of one fully specified assignment,
// as a product of per-person gene and trait factors. genes and traits are
// indexed positionally, matching people.
func (c *compiledPedigree) joint(m Model, genes []int, traits []bool) float64 {
	p := 1.0
	for i, person := range c.people {
		count := genes[i]

		var geneFactor float64
		if person.mother < 0 {
			geneFactor = m.GenePrior[count]
		} else {
			fromMother := m.transmit(genes[person.mother])
			fromFather := m.transmit(genes[person.father])
			geneFactor = childFactor(count, fromMother, fromFather)
		}

		p *= geneFactor * m.traitFactor(count, traits[i])
	}
	return p
}
