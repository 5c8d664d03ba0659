package validator

import (
	"context"
	"sort"
	"sync"

	"github.com/contentvet/contentvet/internal/types"
)

// BatchSummary aggregates a batch validation run.
type BatchSummary struct {
	TotalFiles   int `json:"total_files"`
	ValidFiles   int `json:"valid_files"`
	InvalidFiles int `json:"invalid_files"`

	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// BatchResult holds per-file results plus the aggregate summary. Results are
// ordered by file path regardless of worker completion order.
type BatchResult struct {
	Summary BatchSummary    `json:"summary"`
	Results []*types.Result `json:"results"`
}

// Passed reports whether every file in the batch passed.
func (b *BatchResult) Passed() bool {
	return b.Summary.InvalidFiles == 0
}

// ValidateAll validates files concurrently over a bounded worker pool. Each
// file is validated in isolation: one file's failure never aborts the rest,
// and the only shared mutable state is the scanner's line cache. workers <= 0
// falls back to serial validation.
func (v *Validator) ValidateAll(ctx context.Context, files []string, workers int) *BatchResult {
	results := make([]*types.Result, len(files))

	if workers <= 1 || len(files) <= 1 {
		for i, file := range files {
			results[i] = v.ValidateFile(ctx, file)
		}
		return collectBatch(results)
	}

	if workers > len(files) {
		workers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = v.ValidateFile(ctx, files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return collectBatch(results)
}

func collectBatch(results []*types.Result) *BatchResult {
	sort.Slice(results, func(i, j int) bool {
		return results[i].File < results[j].File
	})

	batch := &BatchResult{Results: results}
	batch.Summary.TotalFiles = len(results)
	for _, r := range results {
		if r.Passed {
			batch.Summary.ValidFiles++
		} else {
			batch.Summary.InvalidFiles++
		}
		batch.Summary.Critical += r.Summary.Critical
		batch.Summary.High += r.Summary.High
		batch.Summary.Medium += r.Summary.Medium
		batch.Summary.Low += r.Summary.Low
	}
	return batch
}
