// Package cli wires the cobra command surface over the generation
// engine, benchmark harness and HTTP API.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"KeyForge/pkg/appcfg"
)

func NewRootCmd(cfg *appcfg.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "keyforge",
		Short:         "Bulk private-key generation and throughput benchmarking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd(cfg))
	root.AddCommand(newScanCmd(cfg))
	root.AddCommand(newBenchCmd(cfg))
	root.AddCommand(newServeCmd(cfg))

	return root
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}
