package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/chatwidget/internal/consts"
	"github.com/tgifai/chatwidget/internal/pkg/logs"
)

func main() {
	cmd := &cli.Command{
		Name:  "chatwidget",
		Usage: "Talk to an anonymous chatbot backend from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the config file",
				Value:   consts.DefaultConfigPath(),
			},
		},
		Commands: []*cli.Command{
			sendHwd.cmd(),
			uploadHwd.cmd(),
			listHwd.cmd(),
			deleteHwd.cmd(),
			serveHwd.cmd(),
			initHwd.cmd(),
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		logs.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}
