package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"hereditas/internal/storage"
	herapi "hereditas/pkg/hereditas"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "reset":
		return runReset(ctx, args[1:])
	case "infer":
		return runInfer(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "show":
		return runShow(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func usageError(reason string) error {
	return fmt.Errorf("%s\nusage: hereditasctl <init|reset|infer|runs|show> [flags]", reason)
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hereditas.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := herapi.New(herapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runReset(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hereditas.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := herapi.New(herapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Reset(ctx); err != nil {
		return err
	}

	fmt.Printf("reset store=%s\n", *storeKind)
	return nil
}

func runInfer(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("infer", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hereditas.db", "sqlite database path")
	dataPath := fs.String("data", "", "family data CSV file")
	modelPath := fs.String("model", "", "JSON file overriding the model constants")
	runID := fs.String("run-id", "", "run identifier (generated when empty)")
	workers := fs.Int("workers", 1, "enumeration worker goroutines")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dataPath == "" {
		return usageError("infer requires -data")
	}

	req := herapi.InferRequest{
		RunID:    *runID,
		DataPath: *dataPath,
		Workers:  *workers,
	}
	if *modelPath != "" {
		m, err := loadModelFromConfig(*modelPath)
		if err != nil {
			return fmt.Errorf("load model config: %w", err)
		}
		req.Model = &m
	}

	client, err := herapi.New(herapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Infer(ctx, req)
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(summary)
	}
	fmt.Printf("run %s (%s)\n", summary.RunID, summary.Dataset)
	printSummary(os.Stdout, summary)
	return nil
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hereditas.db", "sqlite database path")
	limit := fs.Int("limit", 20, "maximum runs to list")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := herapi.New(herapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	items, err := client.Runs(ctx, herapi.RunsRequest{Limit: *limit})
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(items)
	}
	if len(items) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}
	for _, item := range items {
		fmt.Printf("%s\t%s\t%s\tpeople=%d\n", item.RunID, item.CreatedAtUTC, item.Dataset, item.People)
	}
	return nil
}

func runShow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "hereditas.db", "sqlite database path")
	runID := fs.String("run-id", "", "run identifier")
	latest := fs.Bool("latest", false, "show the most recent run")
	asJSON := fs.Bool("json", false, "emit JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" && !*latest {
		return usageError("show requires -run-id or -latest")
	}

	client, err := herapi.New(herapi.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	summary, err := client.Show(ctx, herapi.ShowRequest{RunID: *runID, Latest: *latest})
	if err != nil {
		return err
	}

	if *asJSON {
		return printJSON(summary)
	}
	fmt.Printf("run %s (%s)\n", summary.RunID, summary.Dataset)
	printSummary(os.Stdout, summary)
	return nil
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
