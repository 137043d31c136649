package bench

import (
	"context"
	"errors"
	"testing"

	"KeyForge/internal/engine"
	"KeyForge/internal/partition"
)

func TestMeasureRejectsNonPositiveCount(t *testing.T) {
	eng := engine.New(4)
	for _, count := range []int{0, -1} {
		if _, err := Measure(context.Background(), eng, count); !errors.Is(err, partition.ErrInvalidConfiguration) {
			t.Fatalf("count=%d: got %v, want ErrInvalidConfiguration", count, err)
		}
	}
}

func TestMeasureThroughput(t *testing.T) {
	const count = 100_000
	res, err := Measure(context.Background(), engine.New(4), count)
	if err != nil {
		t.Fatalf("Measure failed: %v", err)
	}
	if res.Count != count {
		t.Fatalf("count: got %d, want %d", res.Count, count)
	}
	if res.Elapsed <= 0 {
		t.Fatalf("elapsed must be positive, got %v", res.Elapsed)
	}
	if res.KeysPerSec <= 0 {
		t.Fatalf("throughput must be positive, got %f", res.KeysPerSec)
	}
}

func TestCompare(t *testing.T) {
	const count = 2_000
	cmp, err := Compare(context.Background(), 4, count)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if cmp.Baseline.Count != count || cmp.Accelerated.Count != count {
		t.Fatalf("counts: baseline %d accelerated %d, want %d", cmp.Baseline.Count, cmp.Accelerated.Count, count)
	}
	if cmp.Baseline.KeysPerSec <= 0 || cmp.Accelerated.KeysPerSec <= 0 {
		t.Fatal("both rates must be positive")
	}
	if cmp.Speedup <= 0 {
		t.Fatalf("speedup must be positive, got %f", cmp.Speedup)
	}
}
