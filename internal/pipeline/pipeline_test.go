package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"vlogman/internal/cliargs"
	"vlogman/internal/config"
	"vlogman/internal/faults"
	"vlogman/internal/ledger"
	"vlogman/internal/logging"
	"vlogman/internal/pipeline"
	"vlogman/internal/placeholder"
	"vlogman/internal/testsupport"
	"vlogman/internal/workspace"
)

func runPipeline(t *testing.T, ws testsupport.Workspace, settings *config.Settings, args ...string) (pipeline.Result, error) {
	t.Helper()
	return pipeline.Run(context.Background(), pipeline.Options{
		WorkDir:  ws.Dir,
		Args:     args,
		Settings: settings,
	})
}

func TestRunEndToEnd(t *testing.T) {
	ws := testsupport.NewSeries(t)
	settings := testsupport.Settings(t)

	result, err := runPipeline(t, ws, settings, "-d", "2019-01-01", "-t", "Test", "-s", "3", "-e", "5")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	episodeDir := filepath.Join(ws.Dir, "Season 3", "2019-01-01 - Tue - Test")
	if result.EpisodeDir != episodeDir {
		t.Fatalf("unexpected episode dir: got %q want %q", result.EpisodeDir, episodeDir)
	}
	if _, err := os.Stat(filepath.Join(episodeDir, "Footage", "README.txt")); err != nil {
		t.Fatalf("expected skeleton copied: %v", err)
	}
	if _, err := os.Stat(filepath.Join(episodeDir, ".DS_Store")); !os.IsNotExist(err) {
		t.Fatalf("expected junk skipped, stat err=%v", err)
	}

	want := "My Vlog S03E05 - Test\nTue 2019-01-01\ntwitter @me instagram @me snapchat me\n[unknown]\n"
	description := testsupport.ReadFile(t, filepath.Join(episodeDir, "Description", "description.md"))
	if description != want {
		t.Fatalf("unexpected description:\n got %q\nwant %q", description, want)
	}

	projectPath := filepath.Join(episodeDir, "Project", "2019-01-01.xml.gz")
	if result.ProjectFile != projectPath {
		t.Fatalf("unexpected project path: got %q want %q", result.ProjectFile, projectPath)
	}
	if got := testsupport.ReadGzip(t, projectPath); got != "<project>"+want+"</project>" {
		t.Fatalf("unexpected project payload %q", got)
	}

	store := testsupport.MustOpenLedger(t, settings)
	entries, err := store.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one ledger entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ID != result.RunID || entry.Season != "3" || entry.Episode != "5" || entry.ProjectFile != projectPath {
		t.Fatalf("unexpected ledger entry %#v", entry)
	}
	if _, err := os.Stat(filepath.Join(ws.Dir, workspace.LockFileName)); err != nil {
		t.Fatalf("expected lock file in working directory: %v", err)
	}
}

func TestRunWithEmptyConfigValues(t *testing.T) {
	raw := strings.NewReplacer(
		`"title": "My Vlog"`, `"title": ""`,
		`"descriptionTargetDirectory": "Description"`, `"descriptionTargetDirectory": ""`,
	).Replace(testsupport.SeriesJSON)
	ws := testsupport.NewSeries(t, testsupport.WithSeriesJSON(raw))

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01", "-t", "Test", "-s", "1")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if want := filepath.Join(result.EpisodeDir, "description.md"); result.Description != want {
		t.Fatalf("expected description at episode root, got %q", result.Description)
	}
	description := testsupport.ReadFile(t, result.Description)
	if !strings.HasPrefix(description, " S01[episodeId] - Test\n") {
		t.Fatalf("expected empty vlog title, got %q", description)
	}
}

func TestRunHelpSkipsEverythingElse(t *testing.T) {
	ws := testsupport.NewSeries(t)

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-h", "-d", "bogus-date")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Help {
		t.Fatal("expected help result")
	}
	if _, err := os.Stat(filepath.Join(ws.Dir, "Season 1")); !os.IsNotExist(err) {
		t.Fatalf("help must not create seasons, stat err=%v", err)
	}
}

func TestRunLoadsConfigBeforeArguments(t *testing.T) {
	_, err := pipeline.Run(context.Background(), pipeline.Options{
		WorkDir:  t.TempDir(),
		Args:     []string{"--help"},
		Settings: testsupport.Settings(t),
	})
	if !errors.Is(err, faults.ErrConfig) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRunArgumentErrors(t *testing.T) {
	cases := []struct {
		name   string
		args   []string
		marker error
		text   string
	}{
		{name: "no arguments", marker: faults.ErrUsage, text: "Expected at least one argument."},
		{name: "title only", args: []string{"-t", "X"}, marker: faults.ErrMissingArgument, text: cliargs.DateFlag.String()},
		{name: "bad date", args: []string{"--date", "2019-02-30"}, marker: faults.ErrInvalidArgument, text: "--date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ws := testsupport.NewSeries(t)
			_, err := runPipeline(t, ws, testsupport.Settings(t), tc.args...)
			if !errors.Is(err, tc.marker) {
				t.Fatalf("expected %v, got %v", tc.marker, err)
			}
			if !strings.Contains(err.Error(), tc.text) {
				t.Fatalf("expected %q in %q", tc.text, err.Error())
			}
		})
	}
}

func TestRunCreatesFirstSeasonAndKeepsEpisodeToken(t *testing.T) {
	ws := testsupport.NewSeries(t)

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01", "-t", "First")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !result.Season.Created || result.Season.Number != "1" {
		t.Fatalf("expected season 1 to be created, got %#v", result.Season)
	}
	description := testsupport.ReadFile(t, result.Description)
	if !strings.HasPrefix(description, "My Vlog S01[episodeId] - First\n") {
		t.Fatalf("expected unresolved episode token to remain, got %q", description)
	}
}

func TestRunPicksLastSeasonInListingOrder(t *testing.T) {
	ws := testsupport.NewSeries(t, testsupport.WithSeasons("Season 1", "Season 2", "Season 10", "Season x"))

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01", "-t", "Quirk", "-e", "1")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Season.Number != "2" {
		t.Fatalf("expected lexically last season 2, got %q", result.Season.Number)
	}
	if want := filepath.Join(ws.Dir, "Season 2", "2019-01-01 - Tue - Quirk"); result.EpisodeDir != want {
		t.Fatalf("unexpected episode dir %q", result.EpisodeDir)
	}
}

func TestRunRelativeDates(t *testing.T) {
	now := func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.Local) }
	cases := map[string]string{
		"today":     "2024-03-05 - Tue - ",
		"yesterday": "2024-03-04 - Mon - ",
	}
	for keyword, dirName := range cases {
		t.Run(keyword, func(t *testing.T) {
			ws := testsupport.NewSeries(t)
			result, err := pipeline.Run(context.Background(), pipeline.Options{
				WorkDir:  ws.Dir,
				Args:     []string{"-d", keyword, "-s", "1"},
				Settings: testsupport.Settings(t),
				Now:      now,
			})
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			if filepath.Base(result.EpisodeDir) != dirName {
				t.Fatalf("unexpected episode dir name %q, want %q", filepath.Base(result.EpisodeDir), dirName)
			}
		})
	}
}

func TestRunFailsFastWhenLocked(t *testing.T) {
	ws := testsupport.NewSeries(t)
	lock, err := workspace.Acquire(ws.Dir)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer lock.Release()

	_, err = runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01")
	if !errors.Is(err, workspace.ErrBusy) || !errors.Is(err, faults.ErrFileSystem) {
		t.Fatalf("expected busy file system error, got %v", err)
	}

	settings := testsupport.Settings(t)
	settings.Scaffold.Lock = false
	if _, err := runPipeline(t, ws, settings, "-d", "2019-01-01"); err != nil {
		t.Fatalf("expected run without lock to succeed, got %v", err)
	}
}

func TestRunLeavesPartialOutputOnFailure(t *testing.T) {
	ws := testsupport.NewSeries(t, testsupport.WithoutProjectTemplate())

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01", "-t", "Broken", "-s", "2")
	if !errors.Is(err, faults.ErrFileSystem) {
		t.Fatalf("expected file system error, got %v", err)
	}
	if result.Description == "" {
		t.Fatal("expected description path to be reported")
	}
	if _, err := os.Stat(result.Description); err != nil {
		t.Fatalf("expected description to remain on disk: %v", err)
	}
}

func TestRunRepeatRefusesToOverwriteSkeleton(t *testing.T) {
	ws := testsupport.NewSeries(t)
	settings := testsupport.Settings(t)
	args := []string{"-d", "2019-01-01", "-t", "Twice", "-s", "1"}

	if _, err := runPipeline(t, ws, settings, args...); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := runPipeline(t, ws, settings, args...); !errors.Is(err, faults.ErrTemplateCopy) {
		t.Fatalf("expected template copy error on repeat, got %v", err)
	}

	settings.Scaffold.OverwriteExisting = true
	if _, err := runPipeline(t, ws, settings, args...); err != nil {
		t.Fatalf("overwrite run failed: %v", err)
	}
}

func TestRunLogsStageFailureKind(t *testing.T) {
	ws := testsupport.NewSeries(t, testsupport.WithoutProjectTemplate())
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	_, err = pipeline.Run(context.Background(), pipeline.Options{
		WorkDir:  ws.Dir,
		Args:     []string{"-d", "2019-01-01", "-s", "1"},
		Settings: testsupport.Settings(t),
		Logger:   logger,
	})
	if !errors.Is(err, faults.ErrFileSystem) {
		t.Fatalf("expected file system error, got %v", err)
	}
	out := logs.String()
	if !strings.Contains(out, `"event_type":"stage_failure"`) || !strings.Contains(out, `"error_kind":"file system error"`) {
		t.Fatalf("expected failure event with error kind, got %s", out)
	}
	if !strings.Contains(out, `"stage":"project"`) {
		t.Fatalf("expected failing stage to be named, got %s", out)
	}
}

func TestRunUsesOneNormalizedTitle(t *testing.T) {
	ws := testsupport.NewSeries(t)

	result, err := runPipeline(t, ws, testsupport.Settings(t), "-d", "2019-01-01", "-t", "Cafe\u0301", "-s", "1")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if got := filepath.Base(result.EpisodeDir); got != "2019-01-01 - Tue - Caf\u00e9" {
		t.Fatalf("unexpected episode dir name %q", got)
	}
	description := testsupport.ReadFile(t, result.Description)
	if !strings.Contains(description, " - Caf\u00e9\n") {
		t.Fatalf("expected composed title in description, got %q", description)
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, ledger.Entry) (ledger.Entry, error) {
	return ledger.Entry{}, errors.New("disk full")
}

func TestRunLedgerFailureOnlyWarns(t *testing.T) {
	ws := testsupport.NewSeries(t)
	var logs bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &logs})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}

	result, err := pipeline.Run(context.Background(), pipeline.Options{
		WorkDir:  ws.Dir,
		Args:     []string{"-d", "2019-01-01"},
		Settings: testsupport.Settings(t),
		Logger:   logger,
		Ledger:   failingRecorder{},
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.ProjectFile == "" {
		t.Fatal("expected project file despite ledger failure")
	}
	out := logs.String()
	if !strings.Contains(out, "history entry not recorded") || !strings.Contains(out, "run_id="+result.RunID) {
		t.Fatalf("expected ledger warning with run id, got %q", out)
	}
}

func TestVars(t *testing.T) {
	series := &config.Series{Title: "My Vlog", Author: &config.Author{Twitter: "@t", Instagram: "@i", Snapchat: "s"}}
	inv := cliargs.Invocation{Date: time.Date(2019, 1, 1, 12, 0, 0, 0, time.UTC), Title: "Test"}

	vars := pipeline.Vars(series, "12", inv)
	if vars[placeholder.SeasonID] != "S12" || vars[placeholder.DayOfWeek] != "Tue" || vars[placeholder.Twitter] != "@t" {
		t.Fatalf("unexpected vars %#v", vars)
	}
	if _, ok := vars[placeholder.EpisodeID]; ok {
		t.Fatal("expected episode id to be omitted when no episode given")
	}

	inv.Episode = "7"
	if got := pipeline.Vars(series, "1", inv)[placeholder.EpisodeID]; got != "E07" {
		t.Fatalf("unexpected episode id %q", got)
	}
}
