package pixelio

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// forEachRow runs fn for every row in [0, height) on at most workers
// goroutines. Rows are handed out one at a time, so uneven rows balance
// across workers. The first error cancels the remaining rows and is
// returned; cancellation of ctx is observed between rows.
func forEachRow(ctx context.Context, workers, height int, fn func(y int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	workers = max(1, min(workers, height))
	g, gctx := errgroup.WithContext(ctx)
	var next atomic.Int64
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for {
				y := int(next.Add(1)) - 1
				if y >= height {
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := fn(y); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}

// accumulator merges per-row channel sums. Rows finish in any order; the
// sums are float64 so the order does not matter in practice.
type accumulator struct {
	mu    sync.Mutex
	sum   [4]float64
	count int64
}

func (acc *accumulator) add(sum *[4]float64, count int64) {
	acc.mu.Lock()
	floats.Add(acc.sum[:], sum[:])
	acc.count += count
	acc.mu.Unlock()
}
