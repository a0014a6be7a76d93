package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tgifai/chatwidget/pkg/widget"
)

var sendHwd = &SendRunner{}

type SendRunner struct{}

func (r *SendRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "send",
		Usage: "Send a chat message, optionally with inline file attachments",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "message",
				Aliases: []string{"m"},
				Usage:   "Message body",
			},
			&cli.StringSliceFlag{
				Name:    "attach",
				Aliases: []string{"a"},
				Usage:   "File to attach inline (repeatable)",
			},
		},
		Action: r.run,
	}
}

func (r *SendRunner) run(ctx context.Context, cmd *cli.Command) error {
	message := strings.TrimSpace(cmd.String("message"))
	paths := cmd.StringSlice("attach")
	if message == "" && len(paths) == 0 {
		return errors.New("--message or --attach is required")
	}

	attachments := make([]widget.Attachment, 0, len(paths))
	for _, p := range paths {
		att, err := widget.AttachmentFromFile(p)
		if err != nil {
			return fmt.Errorf("attach %s: %w", p, err)
		}
		attachments = append(attachments, att)
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	cDim.Printf("session %s\n", client.SessionID())

	resp := client.SendMessage(ctx, widget.ChatMessage{Message: message, Attachments: attachments})
	return report("send", resp)
}
