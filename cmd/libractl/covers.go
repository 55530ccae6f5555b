// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/libra/internal/app"
)

func newCoversCmd(state *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Manage cover images",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "drain",
		Short: "Download every pending remote cover now",
		Long: `Runs the cover downloader until no pending cover is left. Covers that
fail to download stay pending and are retried by the server's worker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.withApp(cmd, func(application *app.App) error {
				handled, err := application.Covers.Drain(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "processed %d pending covers\n", handled)
				return err
			})
		},
	})

	return cmd
}
