package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"KeyForge/internal/cli"
	"KeyForge/pkg/appcfg"
	"KeyForge/pkg/logx"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getwd: %v\n", err)
		os.Exit(2)
	}

	cfg, err := appcfg.Load(filepath.Join(cwd, "configs", "app.yaml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load app config: %v (using defaults)\n", err)
		cfg = appcfg.Default()
	}

	if err := logx.Init(logx.Config{
		Level:                cfg.LogLevel,
		ConsoleOnly:          true,
		HideSecretsInConsole: cfg.HideSecretsInConsole,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "log init: %v\n", err)
		os.Exit(1)
	}
	defer logx.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logx.S().Infow("keyforge started",
		"cwd", cwd,
		"log_level", cfg.LogLevel,
		"workers", cfg.Workers,
		"accelerated", cfg.Accelerated,
	)

	root := cli.NewRootCmd(cfg)
	if err := root.ExecuteContext(ctx); err != nil {
		logx.S().Errorw("command failed", "err", err)
		logx.Close()
		os.Exit(1)
	}
}
