// Package discovery enriches student project records with thematic tags.
//
// It ties together the pieces of an enrichment run: records read by the
// source package are classified by an ai.TagClassifier in resumable batches
// (package ingestion) and merged into a JSON catalog of projects,
// supervisors and tags (package storage/jsonfile).
//
// # Usage
//
//	cfg := ai.NewConfig(ai.WithAPIKey(os.Getenv("DEEPINFRA_API_KEY")))
//	enricher, err := discovery.NewEnricher("projects.json",
//	    discovery.WithAIConfig(cfg),
//	    discovery.WithCacheDir(".tagcache"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer enricher.Close()
//
//	records, err := source.ReadCSV("projects.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := enricher.Enrich(ctx, records)
//
// Interrupting a run loses at most the batch in flight; running it again
// with the same input continues where it stopped.
package discovery
