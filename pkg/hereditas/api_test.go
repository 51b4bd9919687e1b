package hereditas

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"hereditas/internal/inference"
)

const familyCSV = `name,mother,father,trait
Harry,Lily,James,
James,,,1
Lily,,,0
`

func writeFamily(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family0.csv")
	if err := os.WriteFile(path, []byte(familyCSV), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	if err := client.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	return client
}

func TestInferEndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Infer(ctx, InferRequest{RunID: "run-1", DataPath: writeFamily(t)})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}

	if summary.RunID != "run-1" {
		t.Fatalf("unexpected run id: %s", summary.RunID)
	}
	if summary.Dataset != "family0" {
		t.Fatalf("unexpected dataset: %s", summary.Dataset)
	}
	if len(summary.People) != 3 {
		t.Fatalf("expected 3 people, got %d", len(summary.People))
	}
	for i, name := range []string{"Harry", "James", "Lily"} {
		if summary.People[i].Name != name {
			t.Fatalf("people not sorted by name: %+v", summary.People)
		}
	}

	for _, person := range summary.People {
		geneSum := person.Marginals.Gene[0] + person.Marginals.Gene[1] + person.Marginals.Gene[2]
		if math.Abs(geneSum-1) > 1e-9 {
			t.Fatalf("%s gene distribution sums to %v", person.Name, geneSum)
		}
	}
	james := summary.People[1]
	if james.Marginals.Trait.True != 1 {
		t.Fatalf("James trait observed true, got %+v", james.Marginals.Trait)
	}
}

func TestInferGeneratesRunID(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Infer(ctx, InferRequest{DataPath: writeFamily(t)})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if summary.RunID == "" {
		t.Fatal("expected generated run id")
	}
	if summary.RunID[:8] != "family0-" {
		t.Fatalf("run id should start with the dataset name: %s", summary.RunID)
	}
}

func TestInferWithModelOverride(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	m := inference.Default()
	m.Mutation = 0.05
	summary, err := client.Infer(ctx, InferRequest{RunID: "run-m", DataPath: writeFamily(t), Model: &m})
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	if len(summary.People) != 3 {
		t.Fatalf("expected 3 people, got %d", len(summary.People))
	}
}

func TestInferRejectsMissingDataPath(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.Infer(context.Background(), InferRequest{}); err == nil {
		t.Fatal("expected missing data path error")
	}
}

func TestRunsAndShow(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	path := writeFamily(t)

	if _, err := client.Infer(ctx, InferRequest{RunID: "run-a", DataPath: path}); err != nil {
		t.Fatalf("infer run-a: %v", err)
	}
	if _, err := client.Infer(ctx, InferRequest{RunID: "run-b", DataPath: path}); err != nil {
		t.Fatalf("infer run-b: %v", err)
	}

	items, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(items))
	}
	for _, item := range items {
		if item.People != 3 || item.Dataset != "family0" {
			t.Fatalf("unexpected run item: %+v", item)
		}
	}

	shown, err := client.Show(ctx, ShowRequest{RunID: "run-a"})
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if shown.RunID != "run-a" || len(shown.People) != 3 {
		t.Fatalf("unexpected summary: %+v", shown)
	}

	latest, err := client.Show(ctx, ShowRequest{Latest: true})
	if err != nil {
		t.Fatalf("show latest: %v", err)
	}
	if len(latest.People) != 3 {
		t.Fatalf("unexpected latest summary: %+v", latest)
	}
}

func TestResetRemovesRuns(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	path := writeFamily(t)

	if _, err := client.Infer(ctx, InferRequest{RunID: "run-a", DataPath: path}); err != nil {
		t.Fatalf("infer run-a: %v", err)
	}
	if _, err := client.Infer(ctx, InferRequest{RunID: "run-b", DataPath: path}); err != nil {
		t.Fatalf("infer run-b: %v", err)
	}

	if err := client.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	items, err := client.Runs(ctx, RunsRequest{})
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no runs after reset, got %d", len(items))
	}

	// The store stays usable after a reset.
	if _, err := client.Infer(ctx, InferRequest{RunID: "run-c", DataPath: path}); err != nil {
		t.Fatalf("infer after reset: %v", err)
	}
}

func TestShowUnknownRun(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.Show(context.Background(), ShowRequest{RunID: "absent"}); err == nil {
		t.Fatal("expected unknown run error")
	}
}

func TestShowLatestWithNoRuns(t *testing.T) {
	client := newTestClient(t)
	if _, err := client.Show(context.Background(), ShowRequest{Latest: true}); err == nil {
		t.Fatal("expected no runs error")
	}
}

func TestNewRejectsUnknownStore(t *testing.T) {
	if _, err := New(Options{StoreKind: "bogus"}); err == nil {
		t.Fatal("expected unsupported store error")
	}
}
