// Package hereditas is the public client for pedigree gene/trait
// inference. It wires data loading, the inference core, and the run store
// behind a small request/summary API.
package hereditas

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"hereditas/internal/dataload"
	"hereditas/internal/inference"
	"hereditas/internal/model"
	"hereditas/internal/storage"
)

const defaultDBPath = "hereditas.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store
}

type InferRequest struct {
	// RunID overrides the generated run identifier.
	RunID string
	// DataPath points at a CSV family data file.
	DataPath string
	// Workers splits the enumeration across goroutines when above one.
	Workers int
	// Model overrides the reference constants when non-nil.
	Model *inference.Model
}

// PersonResult pairs a person with their normalized marginals, for callers
// that want a stable presentation order.
type PersonResult struct {
	Name      string
	Marginals model.PersonMarginals
}

type InferSummary struct {
	RunID   string
	Dataset string
	People  []PersonResult
}

type RunsRequest struct {
	Limit int
}

type RunItem struct {
	RunID        string
	CreatedAtUTC string
	Dataset      string
	People       int
}

type ShowRequest struct {
	RunID  string
	Latest bool
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

// Reset re-initializes the store and removes every persisted run.
func (c *Client) Reset(ctx context.Context) error {
	if err := c.store.Init(ctx); err != nil {
		return err
	}
	records, err := c.store.ListRuns(ctx, 0)
	if err != nil {
		return err
	}
	for _, record := range records {
		if err := c.store.DeleteRun(ctx, record.ID); err != nil {
			return fmt.Errorf("delete run %s: %w", record.ID, err)
		}
	}
	return nil
}

// Infer loads the family data file, computes marginals for every person,
// persists the pedigree and the run, and returns the results sorted by
// person name.
func (c *Client) Infer(ctx context.Context, req InferRequest) (InferSummary, error) {
	if req.DataPath == "" {
		return InferSummary{}, fmt.Errorf("data path is required")
	}

	family, err := dataload.LoadCSV(req.DataPath)
	if err != nil {
		return InferSummary{}, err
	}

	m := inference.Default()
	if req.Model != nil {
		m = *req.Model
	}

	marginals, err := inference.ComputeMarginals(family.Pedigree, m, family.Evidence, inference.Options{Workers: req.Workers})
	if err != nil {
		return InferSummary{}, err
	}

	dataset := datasetName(req.DataPath)
	runID := req.RunID
	if runID == "" {
		runID = fmt.Sprintf("%s-%s", dataset, uuid.NewString()[:8])
	}
	pedigreeID := "pedigree-" + runID

	pedRecord := family.Pedigree.Record(pedigreeID, family.Evidence)
	pedRecord.VersionedRecord = currentVersion()
	if err := c.store.SavePedigree(ctx, pedRecord); err != nil {
		return InferSummary{}, fmt.Errorf("save pedigree: %w", err)
	}

	runRecord := model.RunRecord{
		VersionedRecord: currentVersion(),
		ID:              runID,
		CreatedAtUTC:    time.Now().UTC().Format(time.RFC3339),
		Dataset:         dataset,
		PedigreeID:      pedigreeID,
		GenePrior:       m.GenePrior,
		Mutation:        m.Mutation,
		TraitProb:       m.TraitProb,
		Marginals:       marginals,
	}
	if err := c.store.SaveRun(ctx, runRecord); err != nil {
		return InferSummary{}, fmt.Errorf("save run: %w", err)
	}

	return summarize(runRecord), nil
}

// Runs lists persisted runs, newest first.
func (c *Client) Runs(ctx context.Context, req RunsRequest) ([]RunItem, error) {
	records, err := c.store.ListRuns(ctx, req.Limit)
	if err != nil {
		return nil, err
	}
	items := make([]RunItem, 0, len(records))
	for _, record := range records {
		items = append(items, RunItem{
			RunID:        record.ID,
			CreatedAtUTC: record.CreatedAtUTC,
			Dataset:      record.Dataset,
			People:       len(record.Marginals),
		})
	}
	return items, nil
}

// Show fetches one persisted run, either by id or the most recent one.
func (c *Client) Show(ctx context.Context, req ShowRequest) (InferSummary, error) {
	runID := req.RunID
	if req.Latest {
		records, err := c.store.ListRuns(ctx, 1)
		if err != nil {
			return InferSummary{}, err
		}
		if len(records) == 0 {
			return InferSummary{}, fmt.Errorf("no runs recorded")
		}
		runID = records[0].ID
	}
	if runID == "" {
		return InferSummary{}, fmt.Errorf("run id is required")
	}

	record, ok, err := c.store.GetRun(ctx, runID)
	if err != nil {
		return InferSummary{}, err
	}
	if !ok {
		return InferSummary{}, fmt.Errorf("run not found: %s", runID)
	}
	return summarize(record), nil
}

func summarize(record model.RunRecord) InferSummary {
	people := make([]PersonResult, 0, len(record.Marginals))
	for name, marginals := range record.Marginals {
		people = append(people, PersonResult{Name: name, Marginals: marginals})
	}
	sort.Slice(people, func(i, j int) bool { return people[i].Name < people[j].Name })
	return InferSummary{RunID: record.ID, Dataset: record.Dataset, People: people}
}

func datasetName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func currentVersion() model.VersionedRecord {
	return model.VersionedRecord{
		SchemaVersion: storage.CurrentSchemaVersion,
		CodecVersion:  storage.CurrentCodecVersion,
	}
}
