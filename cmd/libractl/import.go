// Copyright (c) 2026 Libra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/libra/internal/app"
	"github.com/taibuivan/libra/internal/core/importer"
)

func newImportCmd(state *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk-load books",
	}
	cmd.AddCommand(newImportCSVCmd(state))
	cmd.AddCommand(newImportCorpusCmd(state))
	return cmd
}

func newImportCSVCmd(state *runtime) *cobra.Command {
	var apply, merge bool

	cmd := &cobra.Command{
		Use:   "csv <file|->",
		Short: "Import a library export (Goodreads or Libra CSV)",
		Long: `Parses the export and prints the candidates with their duplicate flags.

With --apply new books are added. Books that already exist are skipped
unless --merge is given, in which case the export fills their fields.`,
		Example: `  # Preview
  libractl import csv goodreads_library_export.csv

  # Add new books and merge the rest
  libractl import csv export.csv --apply --merge`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer input.Close()

			return state.withApp(cmd, func(application *app.App) error {
				parsed, err := application.Importer.ParseCSV(cmd.Context(), input)
				if err != nil {
					return err
				}
				if !apply {
					return printJSON(cmd.OutOrStdout(), parsed)
				}

				results := application.Importer.Confirm(cmd.Context(), confirmItems(parsed.Items, merge))
				failed := 0
				for _, result := range results {
					if result.Failed() {
						failed++
					}
				}
				if err := printJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
				if failed > 0 {
					return fmt.Errorf("%d of %d items failed", failed, len(results))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "write the candidates to the library")
	cmd.Flags().BoolVar(&merge, "merge", false, "merge rows into books that already exist")
	return cmd
}

func newImportCorpusCmd(state *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "corpus <file|->",
		Short: "Load reference books into the recommendation corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := openInput(args[0])
			if err != nil {
				return err
			}
			defer input.Close()

			return state.withApp(cmd, func(application *app.App) error {
				report, err := application.Importer.ImportCorpus(cmd.Context(), input)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), report)
			})
		},
	}
}

// confirmItems turns parsed candidates into confirmation actions. Existing
// books are merged when merge is set and left out otherwise.
func confirmItems(items []importer.BookImport, merge bool) []importer.ConfirmItem {
	confirmed := make([]importer.ConfirmItem, 0, len(items))
	for _, item := range items {
		switch {
		case !item.ExistingBook:
			confirmed = append(confirmed, importer.ConfirmItem{Action: importer.ActionAdd, BookImport: item})
		case merge:
			confirmed = append(confirmed, importer.ConfirmItem{Action: importer.ActionMerge, BookImport: item})
		}
	}
	return confirmed
}
