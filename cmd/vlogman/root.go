package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vlogman/internal/cliargs"
	"vlogman/internal/pipeline"
)

const programName = "vlogman"

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand(ctx *commandContext) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   programName + " -d <date> [-t <title>] [-s <season>] [-e <episode>]",
		Short: "Scaffold a new vlog episode",
		// Episode flags keep their historical single-dash semantics, so
		// cobra hands the raw tokens to cliargs untouched.
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions:  cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureSettings()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(cmd, ctx, args)
		},
	}
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if cmd == cmd.Root() {
			fmt.Fprint(cmd.OutOrStdout(), cliargs.Help(programName, version))
			return
		}
		fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
	})

	rootCmd.AddCommand(newSeasonsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func runScaffold(cmd *cobra.Command, ctx *commandContext, args []string) error {
	settings, err := ctx.ensureSettings()
	if err != nil {
		return err
	}
	workDir, err := ctx.workingDir()
	if err != nil {
		return err
	}
	logger, err := ctx.logger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context(), pipeline.Options{
		WorkDir:  workDir,
		Args:     args,
		Settings: settings,
		Logger:   logger,
		Now:      ctx.now,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Help {
		fmt.Fprint(out, cliargs.Help(programName, version))
		return nil
	}
	renderResult(out, workDir, result)
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the vlogman version",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", programName, version)
			return nil
		},
	}
}
