package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/aikey/vault/cmd/app/commands"
	"github.com/aikey/vault/internal/app"
	"github.com/aikey/vault/internal/config"
)

// withKeyUseCase builds the container, resolves the key use case and makes
// sure encryption is initialized before the command body runs.
func withKeyUseCase(
	ctx context.Context,
	fn func(container *app.Container) error,
) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()

	encryptor, err := container.EncryptionService()
	if err != nil {
		return err
	}
	if err := encryptor.Initialize(ctx); err != nil {
		return err
	}
	return fn(container)
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "add-key",
			Usage: "Encrypt and store an API key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "value",
					Aliases:  []string{"v"},
					Required: true,
					Usage:    "The API key plaintext",
				},
				&cli.StringFlag{
					Name:     "service",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Service type (OpenAI, Anthropic, Azure OpenAI, Groq, Custom)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "Display name (defaults to \"<service> - <profile name>\")",
				},
				&cli.StringFlag{
					Name:    "tag",
					Aliases: []string{"t"},
					Usage:   "Optional tag",
				},
				&cli.StringFlag{
					Name:    "profile",
					Aliases: []string{"p"},
					Usage:   "Target profile ID (defaults to the current profile)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keys, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunAddKey(
						ctx,
						keys,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("value"),
						cmd.String("service"),
						cmd.String("name"),
						cmd.String("tag"),
						cmd.String("profile"),
					)
				})
			},
		},
		{
			Name:  "list-keys",
			Usage: "List stored keys without decrypting them",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "profile",
					Aliases: []string{"p"},
					Usage:   "Filter to one profile ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				keys, err := container.KeyUseCase()
				if err != nil {
					return err
				}
				return commands.RunListKeys(ctx, keys, commands.DefaultIO().Writer, cmd.String("profile"))
			},
		},
		{
			Name:  "reveal-key",
			Usage: "Decrypt and print a stored key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Key ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withKeyUseCase(ctx, func(container *app.Container) error {
					keys, err := container.KeyUseCase()
					if err != nil {
						return err
					}
					return commands.RunRevealKey(ctx, keys, commands.DefaultIO().Writer, cmd.String("id"))
				})
			},
		},
		{
			Name:  "delete-key",
			Usage: "Delete a stored key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Key ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				keys, err := container.KeyUseCase()
				if err != nil {
					return err
				}
				return commands.RunDeleteKey(ctx, keys, container.Logger(), cmd.String("id"))
			},
		},
	}
}
