// Package worker runs table extractions over a bounded pool of goroutines.
// Twenty-odd table regions per filing is small work, but each extraction
// walks page geometry and benefits from running alongside the others.
package worker

import (
	"context"
	"sync"

	"github.com/regulint/trueup/internal/locate"
	"github.com/regulint/trueup/internal/model"
)

// ExtractFunc extracts one located region into a table grid.
type ExtractFunc func(ctx context.Context, region locate.Region) (*model.RawTable, error)

// TableResult is the outcome of extracting one region.
type TableResult struct {
	ID    model.TableID
	Table *model.RawTable
	Err   error
}

// Pool fans region extraction out over a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool with the specified number of workers.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// ExtractAll runs fn over every region and returns results in input order.
// A failed extraction is carried as a per-table error; cancellation marks
// unprocessed regions with the context error.
func (p *Pool) ExtractAll(ctx context.Context, regions []locate.Region, fn ExtractFunc) []TableResult {
	results := make([]TableResult, len(regions))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				region := regions[i]
				if err := ctx.Err(); err != nil {
					results[i] = TableResult{ID: region.ID, Err: err}
					continue
				}
				table, err := fn(ctx, region)
				results[i] = TableResult{ID: region.ID, Table: table, Err: err}
			}
		}()
	}

	for i := range regions {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}
