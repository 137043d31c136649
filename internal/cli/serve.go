package cli

import (
	"github.com/spf13/cobra"

	"KeyForge/internal/api"
	"KeyForge/pkg/appcfg"
	"KeyForge/pkg/logx"
)

func newServeCmd(cfg *appcfg.Config) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the generation engine over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen != "" {
				cfg.Listen = listen
			}
			srv := api.NewServer(cfg, logx.S())
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Bind address (overrides config)")

	return cmd
}
