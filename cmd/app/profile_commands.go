package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/aikey/vault/cmd/app/commands"
	"github.com/aikey/vault/internal/app"
	"github.com/aikey/vault/internal/config"
)

func getProfileCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-profile",
			Usage: "Create a new profile",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "name",
					Aliases:  []string{"n"},
					Required: true,
					Usage:    "Profile name (2-50 characters)",
				},
				&cli.StringFlag{
					Name:    "color",
					Aliases: []string{"c"},
					Value:   "#1976d2",
					Usage:   "Profile color as a hex value (e.g., #1976d2)",
				},
				&cli.StringFlag{
					Name:    "icon",
					Aliases: []string{"i"},
					Value:   "🔑",
					Usage:   "Profile icon (short string or emoji)",
				},
				&cli.StringFlag{
					Name:    "description",
					Aliases: []string{"d"},
					Usage:   "Optional profile description",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				profiles, err := container.ProfileUseCase()
				if err != nil {
					return err
				}
				return commands.RunCreateProfile(
					ctx,
					profiles,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("name"),
					cmd.String("color"),
					cmd.String("icon"),
					cmd.String("description"),
				)
			},
		},
		{
			Name:  "list-profiles",
			Usage: "List every profile",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				profiles, err := container.ProfileUseCase()
				if err != nil {
					return err
				}
				return commands.RunListProfiles(ctx, profiles, commands.DefaultIO().Writer)
			},
		},
		{
			Name:  "delete-profile",
			Usage: "Delete a profile and cascade over its keys and bindings",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Profile ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				profiles, err := container.ProfileUseCase()
				if err != nil {
					return err
				}
				return commands.RunDeleteProfile(ctx, profiles, container.Logger(), cmd.String("id"))
			},
		},
		{
			Name:  "set-default-profile",
			Usage: "Mark a profile as the default",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Profile ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				profiles, err := container.ProfileUseCase()
				if err != nil {
					return err
				}
				return commands.RunSetDefaultProfile(ctx, profiles, container.Logger(), cmd.String("id"))
			},
		},
		{
			Name:  "switch-profile",
			Usage: "Set the active profile for new keys",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "id",
					Aliases:  []string{"i"},
					Required: true,
					Usage:    "Profile ID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				container := app.NewContainer(config.Load())
				defer func() { _ = container.Shutdown(ctx) }()

				keys, err := container.KeyUseCase()
				if err != nil {
					return err
				}
				return commands.RunSwitchProfile(ctx, keys, container.Logger(), cmd.String("id"))
			},
		},
	}
}
