package main

import (
	"encoding/json"
	"fmt"
	"os"

	"hereditas/internal/inference"
)

// loadModelFromConfig reads model constants from a JSON file. Keys not
// present keep the reference values, so a config may override only the
// mutation rate, only the prior, or any combination. Expected shape:
//
//	{
//	  "gene_prior": [0.96, 0.03, 0.01],
//	  "mutation": 0.01,
//	  "trait_prob": [0.01, 0.56, 0.65]
//	}
func loadModelFromConfig(path string) (inference.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return inference.Model{}, err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return inference.Model{}, err
	}

	m := inference.Default()
	if values, ok, err := asTriple(raw["gene_prior"]); err != nil {
		return inference.Model{}, fmt.Errorf("gene_prior: %w", err)
	} else if ok {
		m.GenePrior = values
	}
	if v, ok := asFloat64(raw["mutation"]); ok {
		m.Mutation = v
	}
	if values, ok, err := asTriple(raw["trait_prob"]); err != nil {
		return inference.Model{}, fmt.Errorf("trait_prob: %w", err)
	} else if ok {
		m.TraitProb = values
	}

	if err := m.Validate(); err != nil {
		return inference.Model{}, err
	}
	return m, nil
}

func asTriple(v any) ([3]float64, bool, error) {
	if v == nil {
		return [3]float64{}, false, nil
	}
	items, ok := v.([]any)
	if !ok {
		return [3]float64{}, false, fmt.Errorf("expected an array, got %T", v)
	}
	if len(items) != 3 {
		return [3]float64{}, false, fmt.Errorf("expected 3 values, got %d", len(items))
	}
	var values [3]float64
	for i, item := range items {
		f, ok := asFloat64(item)
		if !ok {
			return [3]float64{}, false, fmt.Errorf("value %d is not a number: %v", i, item)
		}
		values[i] = f
	}
	return values, true, nil
}

// asFloat64 unwraps a JSON number; encoding/json decodes every number in
// an `any` as float64.
func asFloat64(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
