package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vlogman/internal/config"
	"vlogman/internal/faults"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool
	var withSettings bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample vlog-manager.json in the working directory",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := ctx.workingDir()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			target := filepath.Join(workDir, config.SeriesFileName)
			if err := refuseExisting(target, overwrite); err != nil {
				return err
			}
			if err := config.CreateSampleSeries(target); err != nil {
				return faults.Wrap(faults.ErrFileSystem, "create sample series config", "", err)
			}
			fmt.Fprintf(out, "Wrote sample series configuration to %s\n", target)

			if withSettings {
				settingsPath, err := config.SettingsPath()
				if err != nil {
					return faults.Wrap(faults.ErrConfig, "determine settings path", "", err)
				}
				if err := refuseExisting(settingsPath, overwrite); err != nil {
					return err
				}
				if err := config.CreateSampleSettings(settingsPath); err != nil {
					return faults.Wrap(faults.ErrFileSystem, "create sample settings", "", err)
				}
				fmt.Fprintf(out, "Wrote sample settings to %s\n", settingsPath)
			}

			fmt.Fprintln(out, "Edit the series title, author handles, and template paths before scaffolding an episode.")
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files if present")
	cmd.Flags().BoolVar(&withSettings, "settings", false, "Also write a sample user settings file")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate vlog-manager.json, its templates, and user settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workDir, err := ctx.workingDir()
			if err != nil {
				return err
			}
			if _, err := ctx.ensureSettings(); err != nil {
				return err
			}
			series, err := config.LoadSeries(workDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Series config: %s\n", filepath.Join(workDir, config.SeriesFileName))
			fmt.Fprintf(out, "Settings path: %s\n", ctx.settingsPath)
			if !ctx.settingsExists {
				fmt.Fprintln(out, "Settings file did not exist; defaults were used")
			}

			missing, rows, err := checkTemplates(series, workDir)
			if err != nil {
				return err
			}
			writeTemplateTable(out, rows)
			if len(missing) > 0 {
				return faults.Wrap(faults.ErrConfig, "validate templates", "missing "+strings.Join(missing, ", "), nil)
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func checkTemplates(series *config.Series, workDir string) ([]string, [][]string, error) {
	type check struct {
		name  string
		path  func(string) (string, error)
		isDir bool
	}
	checks := []check{
		{name: "skeleton", path: series.SkeletonDir, isDir: true},
		{name: "description", path: series.DescriptionTemplate},
		{name: "project", path: series.ProjectTemplate},
	}

	var missing []string
	rows := make([][]string, 0, len(checks))
	for _, c := range checks {
		path, err := c.path(workDir)
		if err != nil {
			return nil, nil, faults.Wrap(faults.ErrConfig, "resolve template path", c.name, err)
		}
		info, err := os.Stat(path)
		present := err == nil && info.IsDir() == c.isDir
		if !present {
			missing = append(missing, c.name)
		}
		rows = append(rows, []string{c.name, path, yesNo(present)})
	}
	return missing, rows, nil
}

func refuseExisting(path string, overwrite bool) error {
	if overwrite {
		return nil
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return faults.Wrap(faults.ErrConfig, "create sample", path+" already exists (use --overwrite to replace it)", nil)
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return faults.Wrap(faults.ErrFileSystem, "check existing file", path, err)
	}
}
