// Package dataload reads family data files into validated pedigrees.
package dataload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"hereditas/internal/pedigree"
)

// Family is the parsed content of one data file: the validated pedigree
// plus the observed trait evidence keyed by person name.
type Family struct {
	Pedigree *pedigree.Pedigree
	Evidence map[string]bool
}

// LoadCSV reads the family data file at path.
func LoadCSV(path string) (Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return Family{}, err
	}
	defer f.Close()

	family, err := Read(f)
	if err != nil {
		return Family{}, fmt.Errorf("load %s: %w", path, err)
	}
	return family, nil
}

// Read parses CSV family data with a name,mother,father,trait header.
// Empty mother and father fields mark a founder. The trait column is "1"
// for an observed expressed trait, "0" for observed absent, and unknown
// otherwise.
func Read(in io.Reader) (Family, error) {
	reader := csv.NewReader(in)

	header, err := reader.Read()
	if err == io.EOF {
		return Family{}, fmt.Errorf("missing header row")
	}
	if err != nil {
		return Family{}, fmt.Errorf("read header: %w", err)
	}
	columns, err := resolveColumns(header)
	if err != nil {
		return Family{}, err
	}

	var people []pedigree.Person
	evidence := make(map[string]bool)
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Family{}, fmt.Errorf("read row %d: %w", row, err)
		}
		row++

		name := strings.TrimSpace(record[columns.name])
		people = append(people, pedigree.Person{
			Name:   name,
			Mother: strings.TrimSpace(record[columns.mother]),
			Father: strings.TrimSpace(record[columns.father]),
		})
		switch strings.TrimSpace(record[columns.trait]) {
		case "1":
			evidence[name] = true
		case "0":
			evidence[name] = false
		}
	}

	ped, err := pedigree.New(people)
	if err != nil {
		return Family{}, err
	}
	return Family{Pedigree: ped, Evidence: evidence}, nil
}

type columnLayout struct {
	name   int
	mother int
	father int
	trait  int
}

func resolveColumns(header []string) (columnLayout, error) {
	layout := columnLayout{name: -1, mother: -1, father: -1, trait: -1}
	for i, column := range header {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "name":
			layout.name = i
		case "mother":
			layout.mother = i
		case "father":
			layout.father = i
		case "trait":
			layout.trait = i
		}
	}
	if layout.name < 0 || layout.mother < 0 || layout.father < 0 || layout.trait < 0 {
		return columnLayout{}, fmt.Errorf("header must contain name, mother, father and trait columns, got %v", header)
	}
	return layout, nil
}
