package engine

import (
	"context"
	"fmt"
	"sync"

	"KeyForge/internal/entropy"
	"KeyForge/internal/keys"
	"KeyForge/internal/partition"
)

// DefaultWorkers matches the batch endpoint default of the service.
const DefaultWorkers = 4

// Engine generates batches of hex-encoded private keys across a fixed
// worker pool. The zero value is not usable; construct via New or fill
// both fields.
type Engine struct {
	Workers   int
	NewSource entropy.Factory
}

// New returns an engine on the accelerated entropy path.
func New(workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{Workers: workers, NewSource: entropy.Fast}
}

// cancelCheckStride bounds how many keys a worker emits between
// context checks.
const cancelCheckStride = 1024

// Generate produces exactly count keys in index order. The output
// buffer is pre-sized and partitioned; every worker owns a private
// entropy source and writes only into its own disjoint index range, so
// no lock guards the buffer. The call returns after all workers join.
//
// Failure is all-or-nothing: the first worker error cancels the
// remaining workers and the whole batch fails. count == 0 yields an
// empty batch, not an error.
func (e *Engine) Generate(ctx context.Context, count int) ([]string, error) {
	ranges, err := partition.Split(count, e.Workers)
	if err != nil {
		return nil, err
	}

	out := make([]string, count)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failure  error
	)
	fail := func(err error) {
		failOnce.Do(func() {
			failure = err
			cancel()
		})
	}

	for w, r := range ranges {
		if r.Empty() {
			continue
		}
		wg.Add(1)
		go func(worker int, r partition.Range) {
			defer wg.Done()
			src := e.NewSource(worker)
			for i := r.Start; i < r.End; i++ {
				if (i-r.Start)%cancelCheckStride == 0 && ctx.Err() != nil {
					return
				}
				b, err := src.NextKeyBytes()
				if err != nil {
					fail(fmt.Errorf("worker %d at index %d: %w", worker, i, err))
					return
				}
				out[i] = keys.PrivateKey(b).Hex()
			}
		}(w, r)
	}
	wg.Wait()

	if failure != nil {
		return nil, failure
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
