package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vlogman/internal/config"
	"vlogman/internal/faults"
	"vlogman/internal/ledger"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previously scaffolded episodes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := ctx.ensureSettings()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !settings.Ledger.Enabled {
				fmt.Fprintln(out, "History ledger is disabled in settings")
				return nil
			}

			path, err := config.ExpandPath(settings.Ledger.Path)
			if err != nil {
				return faults.Wrap(faults.ErrConfig, "resolve ledger path", "", err)
			}
			store, err := ledger.Open(cmd.Context(), path)
			if err != nil {
				return faults.Wrap(faults.ErrFileSystem, "open history ledger", path, err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return faults.Wrap(faults.ErrFileSystem, "read history ledger", "", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No episodes recorded yet")
				return nil
			}
			schema, err := store.SchemaVersion(cmd.Context())
			if err != nil {
				return faults.Wrap(faults.ErrFileSystem, "read history ledger", "", err)
			}
			writeHistoryTable(out, entries, path, schema)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", ledger.DefaultLimit, "Maximum number of entries to show")
	return cmd
}
