package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// PersonRecord is one row of a pedigree. Mother and Father are either both
// set or both empty; an empty pair marks a founder. Trait is observed
// evidence when non-nil and unknown otherwise.
type PersonRecord struct {
	Name   string `json:"name"`
	Mother string `json:"mother,omitempty"`
	Father string `json:"father,omitempty"`
	Trait  *bool  `json:"trait,omitempty"`
}

type PedigreeRecord struct {
	VersionedRecord
	ID     string         `json:"id"`
	People []PersonRecord `json:"people"`
}

// GeneDistribution holds P(gene count = i) indexed by copy count 0..2.
type GeneDistribution [3]float64

// TraitDistribution is the two-point distribution over trait expression.
type TraitDistribution struct {
	True  float64 `json:"true"`
	False float64 `json:"false"`
}

type PersonMarginals struct {
	Gene  GeneDistribution  `json:"gene"`
	Trait TraitDistribution `json:"trait"`
}

// RunRecord is one completed inference run: the model constants it used and
// the final normalized marginals per person.
type RunRecord struct {
	VersionedRecord
	ID           string                     `json:"id"`
	CreatedAtUTC string                     `json:"created_at_utc"`
	Dataset      string                     `json:"dataset"`
	PedigreeID   string                     `json:"pedigree_id"`
	GenePrior    [3]float64                 `json:"gene_prior"`
	Mutation     float64                    `json:"mutation"`
	TraitProb    [3]float64                 `json:"trait_prob"`
	Marginals    map[string]PersonMarginals `json:"marginals"`
}
