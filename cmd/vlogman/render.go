package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"vlogman/internal/cliargs"
	"vlogman/internal/faults"
	"vlogman/internal/pipeline"
)

// reportError prints err in red on stderr. Usage errors are followed by the
// help screen on stdout.
func reportError(stdout, stderr io.Writer, err error) {
	if errors.Is(err, context.Canceled) {
		return
	}
	style := lipgloss.NewRenderer(stderr).NewStyle().Foreground(lipgloss.Color("1"))
	fmt.Fprintln(stderr, style.Render(err.Error()))
	if faults.ShowsHelp(err) {
		fmt.Fprintln(stdout)
		fmt.Fprint(stdout, cliargs.Help(programName, version))
	}
}

func renderResult(out io.Writer, workDir string, result pipeline.Result) {
	r := lipgloss.NewRenderer(out)
	label := r.NewStyle().Bold(true)
	success := r.NewStyle().Foreground(lipgloss.Color("2"))

	season := filepath.Base(result.Season.Dir)
	if result.Season.Created {
		season += " (created)"
	}
	fmt.Fprintf(out, "%s %s\n", label.Render("Season:     "), season)
	fmt.Fprintf(out, "%s %s\n", label.Render("Episode:    "), relativeTo(workDir, result.EpisodeDir))
	fmt.Fprintf(out, "%s %d\n", label.Render("Copied:     "), len(result.Copied))
	fmt.Fprintf(out, "%s %s\n", label.Render("Description:"), relativeTo(workDir, result.Description))
	fmt.Fprintf(out, "%s %s\n", label.Render("Project:    "), success.Render(relativeTo(workDir, result.ProjectFile)))
}

func relativeTo(base, target string) string {
	if target == "" {
		return ""
	}
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
