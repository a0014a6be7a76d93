package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/chatwidget/internal/devserver"
	"github.com/tgifai/chatwidget/internal/pkg/logs"
	"github.com/tgifai/chatwidget/internal/pkg/prometheus"
)

const shutdownTimeout = 10 * time.Second

var serveHwd = &ServeRunner{}

type ServeRunner struct{}

func (r *ServeRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run an in-memory chat and attachment backend for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "bind",
				Usage: "Listen address, overrides server.bind",
			},
		},
		Action: r.run,
	}
}

func (r *ServeRunner) run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if bind := cmd.String("bind"); bind != "" {
		cfg.Server.Bind = bind
		cfg.Server.PublicURL = ""
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	srv, err := devserver.New(cfg.Server, prometheus.GetRegistry())
	if err != nil {
		return fmt.Errorf("create dev server: %w", err)
	}
	if err = srv.Start(ctx); err != nil {
		return fmt.Errorf("start dev server: %w", err)
	}

	logs.CtxInfo(ctx, "dev backend ready. Press Ctrl+C to stop.")

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	select {
	case sig := <-signalCh:
		logs.CtxInfo(ctx, "Received shutdown signal (%s). Stopping...", sig.String())
	case <-ctx.Done():
		logs.CtxInfo(ctx, "Context canceled. Stopping...")
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()
	if err = srv.Stop(stopCtx); err != nil {
		logs.CtxError(ctx, "stop dev server error: %v", err)
	}
	logs.Flush()
	return nil
}
