// Package ingestion implements the resumable enrichment pipeline.
//
// A run loads the checkpoint through a storage.CatalogStore, selects the
// records that are not yet processed, and classifies them in sequential
// batches. Records within a batch are classified concurrently on an ants
// worker pool; every record yields exactly one Outcome, and a failed or
// panicking classification becomes an empty tag list instead of failing
// the batch. Each batch is merged into the catalog in input order and the
// catalog is saved before the next batch starts.
//
// # Resuming
//
// Record IDs are the only resume key. Re-running with the same input skips
// every record already in the checkpoint, so an interrupted run loses at
// most the batch that was in flight. Records whose classification failed
// are merged with no tags and are not retried.
//
// # Usage
//
//	pipeline, err := ingestion.NewPipeline(store, classifier,
//	    ingestion.WithBatchSize(200),
//	    ingestion.WithProgress(os.Stderr),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pipeline.Release()
//
//	result, err := pipeline.Run(ctx, records)
package ingestion
