// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "aikey-vault",
		Usage:   "Local encrypted vault for AI provider API keys",
		Version: "1.0.0",
	}
	cmd.Commands = append(cmd.Commands, getSystemCommands()...)
	cmd.Commands = append(cmd.Commands, getProfileCommands()...)
	cmd.Commands = append(cmd.Commands, getKeyCommands()...)

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
