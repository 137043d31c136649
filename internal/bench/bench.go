package bench

import (
	"context"
	"fmt"
	"time"

	"KeyForge/internal/engine"
	"KeyForge/internal/entropy"
	"KeyForge/internal/partition"
)

// Result is one throughput measurement. KeysPerSec is always
// Count / Elapsed over the generation phase alone.
type Result struct {
	Count      int           `json:"count"`
	Elapsed    time.Duration `json:"elapsed_ns"`
	KeysPerSec float64       `json:"keys_per_second"`
}

// Comparison pits the sequential secure baseline against the parallel
// accelerated engine over the same workload.
type Comparison struct {
	Baseline    Result  `json:"baseline"`
	Accelerated Result  `json:"accelerated"`
	Speedup     float64 `json:"speedup"`
}

// Measure times a single Generate call. The produced keys are
// discarded; setup and result handling outside the call are not
// counted. A measured duration that rounds to zero is floored to 1ns
// so sub-millisecond batches never divide by zero.
func Measure(ctx context.Context, eng *engine.Engine, count int) (Result, error) {
	if count <= 0 {
		return Result{}, fmt.Errorf("benchmark count %d: %w", count, partition.ErrInvalidConfiguration)
	}

	start := time.Now()
	if _, err := eng.Generate(ctx, count); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	if elapsed <= 0 {
		elapsed = time.Nanosecond
	}
	return Result{
		Count:      count,
		Elapsed:    elapsed,
		KeysPerSec: float64(count) / elapsed.Seconds(),
	}, nil
}

// Compare measures a one-worker CSPRNG baseline and then the parallel
// PRNG engine over the same count.
func Compare(ctx context.Context, workers, count int) (Comparison, error) {
	baseline, err := Measure(ctx, &engine.Engine{Workers: 1, NewSource: entropy.Secure}, count)
	if err != nil {
		return Comparison{}, fmt.Errorf("baseline: %w", err)
	}

	if workers <= 0 {
		workers = engine.DefaultWorkers
	}
	accelerated, err := Measure(ctx, &engine.Engine{Workers: workers, NewSource: entropy.Fast}, count)
	if err != nil {
		return Comparison{}, fmt.Errorf("accelerated: %w", err)
	}

	return Comparison{
		Baseline:    baseline,
		Accelerated: accelerated,
		Speedup:     accelerated.KeysPerSec / baseline.KeysPerSec,
	}, nil
}
