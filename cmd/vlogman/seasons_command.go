package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vlogman/internal/config"
	"vlogman/internal/season"
)

func newSeasonsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seasons",
		Short: "List season directories in the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := ctx.workingDir()
			if err != nil {
				return err
			}
			series, err := config.LoadSeries(workDir)
			if err != nil {
				return err
			}

			dirs, err := season.Resolver{Root: workDir, Prefix: series.SeasonPrefix}.List()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(dirs) == 0 {
				fmt.Fprintf(out, "No season directories found; the next episode will create %q\n", series.SeasonDirName("1"))
				return nil
			}

			rows := make([]seasonRow, 0, len(dirs))
			for _, dir := range dirs {
				count, err := dir.EpisodeCount()
				if err != nil {
					return err
				}
				rows = append(rows, seasonRow{dir: dir, episodes: count})
			}
			writeSeasonTable(out, rows)
			return nil
		},
	}
}
