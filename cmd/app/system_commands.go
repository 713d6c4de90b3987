package main

import (
	"context"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aikey/vault/cmd/app/commands"
	"github.com/aikey/vault/internal/app"
	"github.com/aikey/vault/internal/config"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Apply the embedded database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container)
			},
		},
		{
			Name:  "init",
			Usage: "Migrate, seed the built-in profiles and initialize encryption",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunInit(ctx, container)
			},
		},
		{
			Name:  "purge-logs",
			Usage: "Delete usage log entries older than the retention window",
			Flags: []cli.Flag{
				&cli.DurationFlag{
					Name:    "older-than",
					Aliases: []string{"o"},
					Usage:   "Retention window (defaults to USAGE_LOG_RETENTION_DAYS)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				olderThan := cmd.Duration("older-than")
				if olderThan == time.Duration(0) {
					olderThan = cfg.UsageLogRetention
				}

				keys, err := container.KeyUseCase()
				if err != nil {
					return err
				}
				return commands.RunPurgeLogs(ctx, keys, container.Logger(), olderThan)
			},
		},
	}
}
