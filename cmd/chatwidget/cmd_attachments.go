package main

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"
)

var (
	listHwd   = &ListRunner{}
	deleteHwd = &DeleteRunner{}
)

type ListRunner struct{}

func (r *ListRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List the attachments stored for the configured chatbot",
		Action: r.run,
	}
}

func (r *ListRunner) run(ctx context.Context, cmd *cli.Command) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	return report("list", client.ListAttachments(ctx))
}

type DeleteRunner struct{}

func (r *DeleteRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete one attachment by its vector id",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Vector id of the attachment",
			},
		},
		Action: r.run,
	}
}

func (r *DeleteRunner) run(ctx context.Context, cmd *cli.Command) error {
	id := strings.TrimSpace(cmd.String("id"))
	if id == "" {
		return errors.New("--id is required")
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	return report("delete", client.DeleteAttachment(ctx, id))
}
