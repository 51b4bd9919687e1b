// Package pedigree models a family as an immutable, validated set of
// parent-child relationships. A Pedigree can only be built through New,
// which rejects half-parented people, dangling parent references, and
// ancestry cycles, so downstream code may rely on those invariants.
package pedigree

import (
	"fmt"
	"sort"

	"hereditas/internal/model"
)

// Person is one member of a pedigree. Mother and Father are either both set
// or both empty; New enforces this, so after construction Founder is the
// only case with missing parents.
type Person struct {
	Name   string
	Mother string
	Father string
}

// Founder reports whether the person has no recorded parents.
func (p Person) Founder() bool {
	return p.Mother == ""
}

// Pedigree is an immutable mapping from person name to Person with a
// deterministic iteration order.
type Pedigree struct {
	people map[string]Person
	names  []string
}

// New validates the given people and builds a Pedigree. It fails when a
// name is empty or duplicated, when exactly one parent is set, when a
// parent reference does not resolve, or when the parent graph contains a
// cycle.
func New(people []Person) (*Pedigree, error) {
	byName := make(map[string]Person, len(people))
	for _, person := range people {
		if person.Name == "" {
			return nil, fmt.Errorf("person with empty name")
		}
		if _, ok := byName[person.Name]; ok {
			return nil, fmt.Errorf("duplicate person: %s", person.Name)
		}
		if (person.Mother == "") != (person.Father == "") {
			return nil, fmt.Errorf("person %s has exactly one parent", person.Name)
		}
		byName[person.Name] = person
	}

	for _, person := range byName {
		if person.Founder() {
			continue
		}
		if _, ok := byName[person.Mother]; !ok {
			return nil, fmt.Errorf("person %s references unknown mother %s", person.Name, person.Mother)
		}
		if _, ok := byName[person.Father]; !ok {
			return nil, fmt.Errorf("person %s references unknown father %s", person.Name, person.Father)
		}
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	ped := &Pedigree{people: byName, names: names}
	if cyclic := ped.findCycle(); cyclic != "" {
		return nil, fmt.Errorf("person %s is their own ancestor", cyclic)
	}
	return ped, nil
}

// FromRecord rebuilds a Pedigree and its evidence map from a persisted
// record.
func FromRecord(record model.PedigreeRecord) (*Pedigree, map[string]bool, error) {
	people := make([]Person, 0, len(record.People))
	evidence := make(map[string]bool)
	for _, row := range record.People {
		people = append(people, Person{Name: row.Name, Mother: row.Mother, Father: row.Father})
		if row.Trait != nil {
			evidence[row.Name] = *row.Trait
		}
	}
	ped, err := New(people)
	if err != nil {
		return nil, nil, err
	}
	return ped, evidence, nil
}

// Record converts the pedigree plus evidence back into a persistable
// record, people sorted by name.
func (p *Pedigree) Record(id string, evidence map[string]bool) model.PedigreeRecord {
	rows := make([]model.PersonRecord, 0, len(p.names))
	for _, name := range p.names {
		person := p.people[name]
		row := model.PersonRecord{Name: person.Name, Mother: person.Mother, Father: person.Father}
		if observed, ok := evidence[name]; ok {
			value := observed
			row.Trait = &value
		}
		rows = append(rows, row)
	}
	return model.PedigreeRecord{ID: id, People: rows}
}

// Names returns all person names in sorted order. Callers must not mutate
// the returned slice.
func (p *Pedigree) Names() []string {
	return p.names
}

// Person looks up a member by name.
func (p *Pedigree) Person(name string) (Person, bool) {
	person, ok := p.people[name]
	return person, ok
}

// Len returns the number of people in the pedigree.
func (p *Pedigree) Len() int {
	return len(p.names)
}

// findCycle returns the name of a person who appears among their own
// ancestors, or "" when the parent graph is acyclic.
func (p *Pedigree) findCycle() string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(p.people))

	var visit func(name string) string
	visit = func(name string) string {
		switch state[name] {
		case inProgress:
			return name
		case done:
			return ""
		}
		state[name] = inProgress
		person := p.people[name]
		if !person.Founder() {
			if cyclic := visit(person.Mother); cyclic != "" {
				return cyclic
			}
			if cyclic := visit(person.Father); cyclic != "" {
				return cyclic
			}
		}
		state[name] = done
		return ""
	}

	for _, name := range p.names {
		if cyclic := visit(name); cyclic != "" {
			return cyclic
		}
	}
	return ""
}
