package isoabbrev

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AbbreviateAll abbreviates a batch of titles on up to workers goroutines
// sharing e. Results are returned in input order. workers < 1 means one
// worker per CPU.
//
// The only error AbbreviateAll returns is the one of a cancelled ctx; no
// partial results are returned in that case.
func (e *Engine) AbbreviateAll(ctx context.Context, titles []string, workers int) ([]string, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	results := make([]string, len(titles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, title := range titles {
		if gctx.Err() != nil {
			break
		}
		i, title := i, title
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.MakeAbbreviation(title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
