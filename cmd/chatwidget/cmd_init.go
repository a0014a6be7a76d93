package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/chatwidget/internal/config"
)

var initHwd = &InitRunner{}

type InitRunner struct{}

func (r *InitRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default config file",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing config file",
			},
		},
		Action: r.run,
	}
}

func (r *InitRunner) run(_ context.Context, cmd *cli.Command) error {
	cfgPath := cmd.String("config")
	if _, err := os.Stat(cfgPath); err == nil && !cmd.Bool("force") {
		cError.Printf("Config already exists at %s (use --force to overwrite)\n", cfgPath)
		return nil
	}

	if err := config.Save(cfgPath, config.Default()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	cSuccess.Printf("✓ Config written to %s\n", cfgPath)
	cDim.Println("  Edit client.chatbot_id and client.api_base_url, then run \"chatwidget send -m hello\".")
	return nil
}
