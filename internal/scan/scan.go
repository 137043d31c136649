// Package scan drives continuous generation against the address
// watchlist: generate a batch, derive both addresses for every key,
// record any key whose address is already known.
package scan

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"KeyForge/internal/derive"
	"KeyForge/internal/engine"
	"KeyForge/internal/entropy"
	"KeyForge/internal/sink"
	"KeyForge/internal/watchlist"
)

type Options struct {
	BatchSize  int
	Workers    int
	NewSource  entropy.Factory // nil = accelerated path
	Interval   time.Duration   // pause between batches
	MaxBatches int             // 0 = run until the context is cancelled
	HitPath    string          // hits.jsonl destination, "" = log only
}

// Stats summarizes a finished scan.
type Stats struct {
	KeysGenerated uint64
	Hits          uint64
	Elapsed       time.Duration
}

type hitRecord struct {
	Timestamp  string `json:"ts"`
	Chain      string `json:"chain"`
	Address    string `json:"address"`
	PrivateKey string `json:"private_key"`
	BTCAddress string `json:"btc_address"`
	ETHAddress string `json:"eth_address"`
}

// Run generates batches until the context is cancelled (or MaxBatches
// is reached), checking every derived address against the watchlist.
// Hits are appended to HitPath as JSONL and logged; a progress line
// with the running rate is emitted every 10 seconds. Cancellation is a
// normal stop, not an error.
func Run(ctx context.Context, watch *watchlist.Watchlist, app *zap.SugaredLogger, opt Options) (Stats, error) {
	if opt.BatchSize <= 0 {
		opt.BatchSize = 10_000
	}
	if opt.Workers <= 0 {
		opt.Workers = engine.DefaultWorkers
	}
	factory := opt.NewSource
	if factory == nil {
		factory = entropy.Fast
	}
	eng := &engine.Engine{Workers: opt.Workers, NewSource: factory}

	start := time.Now()
	var keysGenerated, hits uint64

	events := make(chan hitRecord, opt.Workers*4)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for ev := range events {
			if opt.HitPath != "" {
				b, _ := json.Marshal(ev)
				if err := sink.AppendJSONL(opt.HitPath, b); err != nil {
					app.Errorw("hit append failed", "chain", ev.Chain, "address", ev.Address, "err", err)
				}
			}
			app.Infow("HIT",
				"chain", ev.Chain,
				"address", ev.Address,
				"private_key", ev.PrivateKey,
				"elapsed", time.Since(start),
			)
		}
	}()

	statusDone := make(chan struct{})
	go func() {
		defer close(statusDone)
		ticker := time.NewTicker(10 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				elapsed := now.Sub(start)
				rate := 0.0
				n := atomic.LoadUint64(&keysGenerated)
				if elapsed > 0 {
					rate = float64(n) / elapsed.Seconds()
				}
				app.Infow("progress",
					"keys", n,
					"hits", atomic.LoadUint64(&hits),
					"rate_keys_per_sec", rate,
					"elapsed", elapsed,
				)
			}
		}
	}()

	var runErr error
	batches := 0

loop:
	for {
		if ctx.Err() != nil {
			break
		}
		batch, err := eng.Generate(ctx, opt.BatchSize)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			runErr = err
			break
		}
		atomic.AddUint64(&keysGenerated, uint64(len(batch)))

		for _, hexKey := range batch {
			if ctx.Err() != nil {
				break loop
			}
			addrs, derr := derive.FromHex(hexKey)
			if derr != nil {
				app.Errorw("derive failed", "err", derr)
				continue
			}
			for _, m := range []struct{ chain, addr string }{
				{"BTC", addrs.BTC},
				{"ETH", addrs.ETH},
			} {
				if !watch.Contains(m.addr) {
					continue
				}
				atomic.AddUint64(&hits, 1)
				ev := hitRecord{
					Timestamp:  time.Now().Format(time.RFC3339),
					Chain:      m.chain,
					Address:    m.addr,
					PrivateKey: hexKey,
					BTCAddress: addrs.BTC,
					ETHAddress: addrs.ETH,
				}
				select {
				case <-ctx.Done():
					break loop
				case events <- ev:
				}
			}
		}

		batches++
		if opt.MaxBatches > 0 && batches >= opt.MaxBatches {
			break
		}
		if opt.Interval > 0 {
			select {
			case <-ctx.Done():
				break loop
			case <-time.After(opt.Interval):
			}
		}
	}

	cancel()
	close(events)
	<-writerDone
	<-statusDone

	stats := Stats{
		KeysGenerated: atomic.LoadUint64(&keysGenerated),
		Hits:          atomic.LoadUint64(&hits),
		Elapsed:       time.Since(start),
	}
	app.Infow("scan stopped",
		"keys", stats.KeysGenerated,
		"hits", stats.Hits,
		"elapsed", stats.Elapsed,
	)
	return stats, runErr
}
