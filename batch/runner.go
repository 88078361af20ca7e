// Package batch sequences item operations across a bounded worker pool.
// The transformation core is idempotent per item, so items parallelize
// freely as long as no two concurrent operations target the same local
// entity id.
package batch

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/lakeshore-digital/contentsync/mapping"
	"github.com/lakeshore-digital/contentsync/remote"
	"github.com/lakeshore-digital/contentsync/transform"
)

// Operation is one unit of work at item granularity.
type Operation struct {
	ItemID string
	Run    func(ctx context.Context) error
}

// Result records the outcome of one operation for the operator log.
type Result struct {
	ItemID string
	Err    error
}

// Runner executes operations with bounded concurrency. Per-item failures are
// recorded, not propagated: one bad item never aborts the batch.
type Runner struct {
	workers int
}

// NewRunner creates a runner with the given worker count (minimum 1).
func NewRunner(workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{workers: workers}
}

// Run executes all operations and returns per-item results in input order.
// Cancelling ctx stops scheduling further items; in-flight items run to
// completion.
func (r *Runner) Run(ctx context.Context, ops []Operation) []Result {
	results := make([]Result, len(ops))

	g := &errgroup.Group{}
	g.SetLimit(r.workers)

	for i, op := range ops {
		if ctx.Err() != nil {
			results[i] = Result{ItemID: op.ItemID, Err: ctx.Err()}
			continue
		}
		i, op := i, op
		g.Go(func() error {
			err := op.Run(ctx)
			results[i] = Result{ItemID: op.ItemID, Err: err}
			if err != nil {
				slog.Error("item operation failed", "item", op.ItemID, "error", err)
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// ImportItems imports a set of remote items through one mapping.
func (r *Runner) ImportItems(ctx context.Context, importer *transform.Importer, m *mapping.Mapping, items []*remote.Item) []Result {
	ops := make([]Operation, len(items))
	for i, item := range items {
		item := item
		ops[i] = Operation{
			ItemID: item.ID,
			Run: func(ctx context.Context) error {
				_, err := importer.ImportItem(ctx, m, item)
				return err
			},
		}
	}
	return r.Run(ctx, ops)
}

// Failed returns the subset of results that carry an error.
func Failed(results []Result) []Result {
	var failed []Result
	for _, res := range results {
		if res.Err != nil {
			failed = append(failed, res)
		}
	}
	return failed
}
