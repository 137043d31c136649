package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"KeyForge/internal/bench"
	"KeyForge/pkg/appcfg"
	"KeyForge/pkg/logx"
)

func newBenchCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		count   int
		workers int
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure key generation throughput",
		Long: `Times a sequential CSPRNG baseline and the parallel accelerated
engine over the same workload and reports both rates plus speedup.
The generated keys are discarded; only the generation phase is timed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if workers <= 0 {
				workers = cfg.Workers
			}

			cmp, err := bench.Compare(cmd.Context(), workers, count)
			if err != nil {
				return fmt.Errorf("benchmark: %w", err)
			}

			logx.S().Infow("benchmark finished",
				"key_count", count,
				"workers", workers,
				"baseline_elapsed", cmp.Baseline.Elapsed,
				"baseline_keys_per_sec", fmt.Sprintf("%.0f", cmp.Baseline.KeysPerSec),
				"accelerated_elapsed", cmp.Accelerated.Elapsed,
				"accelerated_keys_per_sec", fmt.Sprintf("%.0f", cmp.Accelerated.KeysPerSec),
				"speedup", fmt.Sprintf("%.1fx", cmp.Speedup),
			)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&count, "count", 100_000, "Number of keys per run")
	flags.IntVar(&workers, "workers", 0, "Parallel workers (0 = config default)")

	return cmd
}
