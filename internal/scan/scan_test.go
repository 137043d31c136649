package scan

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"KeyForge/internal/entropy"
	"KeyForge/internal/watchlist"
)

// vectorSource always emits the key 0x...01, whose derived addresses
// are fixed, so tests can pre-load the watchlist with a guaranteed hit.
type vectorSource struct{}

func (vectorSource) NextKeyBytes() ([32]byte, error) {
	var b [32]byte
	b[31] = 0x01
	return b, nil
}

const (
	vectorETH = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"
	vectorBTC = "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
)

func vectorFactory(int) entropy.Source { return vectorSource{} }

func testLogger() *zap.SugaredLogger { return zap.NewNop().Sugar() }

func TestRunRecordsHits(t *testing.T) {
	w := watchlist.New()
	w.Load([]string{vectorETH}, 100, 0.01)

	hitPath := filepath.Join(t.TempDir(), "hits.jsonl")
	stats, err := Run(context.Background(), w, testLogger(), Options{
		BatchSize:  3,
		Workers:    1,
		NewSource:  vectorFactory,
		MaxBatches: 2,
		HitPath:    hitPath,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.KeysGenerated != 6 {
		t.Fatalf("keys generated: got %d, want 6", stats.KeysGenerated)
	}
	// only the ETH address is loaded, one hit per key
	if stats.Hits != 6 {
		t.Fatalf("hits: got %d, want 6", stats.Hits)
	}

	f, err := os.Open(hitPath)
	if err != nil {
		t.Fatalf("open hit log: %v", err)
	}
	defer f.Close()
	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines++
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	if lines != 6 {
		t.Fatalf("hit log lines: got %d, want 6", lines)
	}
}

func TestRunBothChainsHit(t *testing.T) {
	w := watchlist.New()
	w.Load([]string{vectorBTC, vectorETH}, 100, 0.01)

	stats, err := Run(context.Background(), w, testLogger(), Options{
		BatchSize:  2,
		Workers:    1,
		NewSource:  vectorFactory,
		MaxBatches: 1,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Hits != 4 {
		t.Fatalf("hits: got %d, want 4 (both chains per key)", stats.Hits)
	}
}

func TestRunNoHitsForUnknownAddresses(t *testing.T) {
	w := watchlist.New()
	w.Load([]string{"1BoatSLRHtKNngkdXEeobR76b53LETtpyT"}, 100, 0.01)

	stats, err := Run(context.Background(), w, testLogger(), Options{
		BatchSize:  2,
		Workers:    1,
		NewSource:  vectorFactory,
		MaxBatches: 1,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Hits != 0 {
		t.Fatalf("hits: got %d, want 0", stats.Hits)
	}
}

type failingSource struct{}

func (failingSource) NextKeyBytes() ([32]byte, error) {
	return [32]byte{}, entropy.ErrEntropyFailure
}

func TestRunSurfacesEngineFailure(t *testing.T) {
	w := watchlist.New()
	w.Load([]string{vectorETH}, 100, 0.01)

	_, err := Run(context.Background(), w, testLogger(), Options{
		BatchSize:  10,
		Workers:    1,
		NewSource:  func(int) entropy.Source { return failingSource{} },
		MaxBatches: 1,
	})
	if err == nil {
		t.Fatal("expected engine failure to surface")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	w := watchlist.New()
	w.Load([]string{"unrelated"}, 100, 0.01)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	stats, err := Run(ctx, w, testLogger(), Options{
		BatchSize: 10,
		Workers:   1,
		NewSource: vectorFactory,
		Interval:  5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("cancelled scan must stop cleanly, got %v", err)
	}
	if stats.KeysGenerated == 0 {
		t.Fatal("expected at least one batch before cancellation")
	}
}
