// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/taibuivan/libra/internal/app"
	"github.com/taibuivan/libra/internal/platform/config"
)

// runtime carries what PersistentPreRunE loaded to the subcommands.
type runtime struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	state := &runtime{}
	var verbose bool

	cmd := &cobra.Command{
		Use:   "libractl",
		Short: "Maintenance tool for a Libra library",
		Long: `libractl runs the jobs that do not belong behind an HTTP request:
bulk imports, draining pending cover downloads and schema migrations.

Settings come from the environment; a .env file in the working directory is
loaded first when present.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			state.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	cmd.AddCommand(newImportCmd(state))
	cmd.AddCommand(newCoversCmd(state))
	cmd.AddCommand(newMigrateCmd(state))
	cmd.AddCommand(newHashPasswordCmd())

	return cmd
}

// config loads the environment once per invocation.
func (state *runtime) config() (*config.Config, error) {
	if state.cfg != nil {
		return state.cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	state.cfg = cfg
	return cfg, nil
}

// withApp builds the services for the duration of run.
func (state *runtime) withApp(cmd *cobra.Command, run func(application *app.App) error) error {
	cfg, err := state.config()
	if err != nil {
		return err
	}

	application, err := app.Build(cmd.Context(), cfg, state.logger)
	if err != nil {
		return err
	}
	defer application.Close()

	return run(application)
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func printJSON(writer io.Writer, value any) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
