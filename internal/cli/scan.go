package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"KeyForge/internal/entropy"
	"KeyForge/internal/scan"
	"KeyForge/internal/sink"
	"KeyForge/internal/watchlist"
	"KeyForge/pkg/appcfg"
	"KeyForge/pkg/logx"
)

func newScanCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		addressFile string
		batchSize   int
		workers     int
		interval    time.Duration
		maxBatches  int
		secure      bool
		logsBase    string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Continuously generate keys and check them against an address list",
		Long: `Loads an address file into the watchlist, then generates batches of
keys, derives their BTC and ETH addresses and records every key whose
address is already on the list. Runs until interrupted unless
--batches bounds the run. Hits are appended as JSONL under the logs
directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := logx.S()

			f, err := os.Open(addressFile)
			if err != nil {
				return fmt.Errorf("open address file: %w", err)
			}
			w := watchlist.New()
			n, err := w.LoadReader(f, cfg.Watchlist.Capacity, cfg.Watchlist.ErrorRate)
			f.Close()
			if err != nil {
				return fmt.Errorf("load watchlist: %w", err)
			}
			app.Infow("watchlist loaded", "path", addressFile, "addresses", n)

			dir, err := sink.RunDir(logsBase, "scan")
			if err != nil {
				return err
			}

			factory := entropy.Fast
			if secure {
				factory = entropy.Secure
			}
			if workers <= 0 {
				workers = cfg.Workers
			}

			if _, err := scan.Run(cmd.Context(), w, app, scan.Options{
				BatchSize:  batchSize,
				Workers:    workers,
				NewSource:  factory,
				Interval:   interval,
				MaxBatches: maxBatches,
				HitPath:    filepath.Join(dir, "hits.jsonl"),
			}); err != nil {
				return fmt.Errorf("scan: %w", err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&addressFile, "addresses", "addresses.txt", "File with one known address per line")
	flags.IntVar(&batchSize, "batch", 10_000, "Keys per batch")
	flags.IntVar(&workers, "workers", 0, "Parallel workers (0 = config default)")
	flags.DurationVar(&interval, "interval", 100*time.Millisecond, "Pause between batches")
	flags.IntVar(&maxBatches, "batches", 0, "Stop after this many batches (0 = run until interrupted)")
	flags.BoolVar(&secure, "secure", false, "Use the platform CSPRNG instead of the accelerated path")
	flags.StringVar(&logsBase, "logs", "logs", "Base directory for scan output")

	return cmd
}
