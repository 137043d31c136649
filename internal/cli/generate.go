package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"KeyForge/internal/derive"
	"KeyForge/internal/engine"
	"KeyForge/internal/entropy"
	"KeyForge/internal/keys"
	"KeyForge/internal/sink"
	"KeyForge/pkg/appcfg"
	"KeyForge/pkg/logx"
)

type keyRecord struct {
	PrivateKey string `json:"private_key"`
	BTCAddress string `json:"btc_address"`
	ETHAddress string `json:"eth_address"`
}

func newGenerateCmd(cfg *appcfg.Config) *cobra.Command {
	var (
		count      int
		workers    int
		secure     bool
		save       bool
		toKeystore bool
		logsBase   string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a batch of private keys",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := logx.S()

			// --keystore implies --save
			if toKeystore {
				save = true
			}

			factory := entropy.Fast
			method := "accelerated-prng"
			if secure {
				factory = entropy.Secure
				method = "system-csprng"
			}
			if workers <= 0 {
				workers = cfg.Workers
			}

			eng := &engine.Engine{Workers: workers, NewSource: factory}

			start := time.Now()
			batch, err := eng.Generate(cmd.Context(), count)
			elapsed := time.Since(start)
			if err != nil {
				return fmt.Errorf("generate: %w", err)
			}
			if elapsed <= 0 {
				elapsed = time.Nanosecond
			}

			app.Infow("batch generated",
				"count", len(batch),
				"workers", workers,
				"method", method,
				"elapsed", elapsed,
				"keys_per_second", float64(len(batch))/elapsed.Seconds(),
			)

			if !save {
				for i, hexKey := range batch {
					if i == 5 {
						app.Infow("remaining keys suppressed, use --save to persist the full batch")
						break
					}
					app.Infow("generated", "index", i, "private_key", hexKey)
				}
				return nil
			}

			dir, err := sink.RunDir(logsBase, "generate")
			if err != nil {
				return err
			}

			if toKeystore {
				return saveKeystore(dir, batch)
			}
			return saveRecords(dir, batch)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&count, "count", 10, "Number of keys to generate")
	flags.IntVar(&workers, "workers", 0, "Parallel workers (0 = config default)")
	flags.BoolVar(&secure, "secure", false, "Use the platform CSPRNG instead of the accelerated path")
	flags.BoolVar(&save, "save", false, "Persist the batch under the logs directory")
	flags.BoolVar(&toKeystore, "keystore", false, "Encrypt saved keys as keystore JSON (implies --save)")
	flags.StringVar(&logsBase, "logs", "logs", "Base directory for saved batches")

	return cmd
}

func saveRecords(dir string, batch []string) error {
	app := logx.S()
	path := filepath.Join(dir, "keys.jsonl")
	for _, hexKey := range batch {
		addrs, err := derive.FromHex(hexKey)
		if err != nil {
			return fmt.Errorf("derive addresses: %w", err)
		}
		b, err := json.Marshal(keyRecord{
			PrivateKey: hexKey,
			BTCAddress: addrs.BTC,
			ETHAddress: addrs.ETH,
		})
		if err != nil {
			return err
		}
		if err := sink.AppendJSONL(path, b); err != nil {
			return fmt.Errorf("append record: %w", err)
		}
	}
	app.Infow("batch saved", "path", path, "count", len(batch))
	return nil
}

func saveKeystore(dir string, batch []string) error {
	app := logx.S()

	pwd, err := readPassword("Keystore password: ")
	if err != nil {
		return err
	}
	if pwd == "" {
		return fmt.Errorf("empty keystore password")
	}
	hint, err := readPassword("Optional password hint (stored as hint.txt): ")
	if err != nil {
		return err
	}
	_ = sink.WriteHint(dir, hint)

	path := filepath.Join(dir, "keystore.jsonl")
	for _, hexKey := range batch {
		k, err := keys.ParseHex(hexKey)
		if err != nil {
			return err
		}
		blob, err := derive.KeystoreJSON(k, pwd)
		if err != nil {
			return fmt.Errorf("keystore encrypt: %w", err)
		}
		if err := sink.AppendJSONL(path, blob); err != nil {
			return fmt.Errorf("append keystore: %w", err)
		}
	}
	app.Infow("keystore batch saved", "path", path, "count", len(batch))
	return nil
}
