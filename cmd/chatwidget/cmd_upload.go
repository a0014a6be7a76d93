package main

import (
	"context"
	"errors"
	"strings"

	"github.com/urfave/cli/v3"
)

var uploadHwd = &UploadRunner{}

type UploadRunner struct{}

func (r *UploadRunner) cmd() *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a file to the attachment store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Path of the file to upload",
			},
		},
		Action: r.run,
	}
}

func (r *UploadRunner) run(ctx context.Context, cmd *cli.Command) error {
	path := strings.TrimSpace(cmd.String("file"))
	if path == "" {
		return errors.New("--file is required")
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	return report("upload", client.UploadFilePath(ctx, path))
}
