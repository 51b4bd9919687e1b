package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadModelFromConfigOverridesAll(t *testing.T) {
	path := writeConfig(t, `{
		"gene_prior": [0.9, 0.08, 0.02],
		"mutation": 0.02,
		"trait_prob": [0.05, 0.5, 0.8]
	}`)

	m, err := loadModelFromConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.GenePrior != [3]float64{0.9, 0.08, 0.02} {
		t.Fatalf("unexpected prior: %v", m.GenePrior)
	}
	if m.Mutation != 0.02 {
		t.Fatalf("unexpected mutation: %v", m.Mutation)
	}
	if m.TraitProb != [3]float64{0.05, 0.5, 0.8} {
		t.Fatalf("unexpected trait table: %v", m.TraitProb)
	}
}

func TestLoadModelFromConfigPartialOverride(t *testing.T) {
	path := writeConfig(t, `{"mutation": 0.02}`)

	m, err := loadModelFromConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if m.Mutation != 0.02 {
		t.Fatalf("unexpected mutation: %v", m.Mutation)
	}
	if m.GenePrior != [3]float64{0.96, 0.03, 0.01} {
		t.Fatalf("prior should keep reference values: %v", m.GenePrior)
	}
}

func TestLoadModelFromConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", "nope"},
		{"wrong arity", `{"gene_prior": [0.9, 0.1]}`},
		{"non-numeric entry", `{"trait_prob": [0.1, "x", 0.3]}`},
		{"fails validation", `{"gene_prior": [0.9, 0.5, 0.5]}`},
		{"mutation out of range", `{"mutation": 3}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := loadModelFromConfig(writeConfig(t, tc.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadModelFromConfigMissingFile(t *testing.T) {
	if _, err := loadModelFromConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected missing file error")
	}
}
