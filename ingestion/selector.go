package ingestion

import (
	"strings"

	"github.com/nggurbanov/course-project-discovery/core"
)

// SelectPending returns the records that still need classification, in
// input order. Records whose ID is already processed are skipped, as are
// records without an ID or a title. A repeated ID is selected only once.
func SelectPending(records []core.Record, processed func(id string) bool) []core.Record {
	pending := make([]core.Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" || strings.TrimSpace(r.TitleRU) == "" {
			continue
		}
		if processed != nil && processed(r.ID) {
			continue
		}
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		pending = append(pending, r)
	}
	return pending
}

// splitBatches cuts records into consecutive batches of at most size.
func splitBatches(records []core.Record, size int) [][]core.Record {
	if len(records) == 0 {
		return nil
	}
	batches := make([][]core.Record, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := min(start+size, len(records))
		batches = append(batches, records[start:end])
	}
	return batches
}
