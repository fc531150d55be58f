package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"vlogman/internal/cliargs"
	"vlogman/internal/config"
	"vlogman/internal/episode"
	"vlogman/internal/faults"
	"vlogman/internal/ledger"
	"vlogman/internal/logging"
	"vlogman/internal/materialize"
	"vlogman/internal/placeholder"
	"vlogman/internal/projectfile"
	"vlogman/internal/season"
	"vlogman/internal/workspace"
)

// Recorder stores a history entry for a finished run.
type Recorder interface {
	Record(ctx context.Context, entry ledger.Entry) (ledger.Entry, error)
}

// Options controls one scaffolding run.
type Options struct {
	// WorkDir holds vlog-manager.json and the season directories.
	WorkDir string
	// Args are the raw command-line tokens without the program name.
	Args     []string
	Settings *config.Settings
	Logger   *slog.Logger
	// Now supplies the local time for relative dates; nil means time.Now.
	Now func() time.Time
	// Ledger overrides the database named in Settings.
	Ledger Recorder
}

// Result describes what a run produced.
type Result struct {
	// Help is set when the help flag was given; nothing else ran.
	Help bool

	RunID       string
	Series      *config.Series
	Invocation  cliargs.Invocation
	Season      season.Resolution
	EpisodeDir  string
	Copied      []string
	Description string
	ProjectFile string
}

type run struct {
	opts     Options
	settings config.Settings
	base     *slog.Logger
	logger   *slog.Logger
	result   Result
	vars     placeholder.Set
}

type stage struct {
	name    string
	execute func(*run, context.Context) error
}

var stages = []stage{
	{name: "season", execute: (*run).resolveSeason},
	{name: "episode", execute: (*run).scaffoldEpisode},
	{name: "materialize", execute: (*run).materialize},
	{name: "project", execute: (*run).generateProject},
}

// Run loads the series config, parses Args, and scaffolds one episode. Each
// stage runs to completion before the next; the first failure ends the run
// and leaves earlier output on disk.
func Run(ctx context.Context, opts Options) (Result, error) {
	r := &run{opts: opts, settings: config.DefaultSettings()}
	if opts.Settings != nil {
		r.settings = *opts.Settings
	}
	if r.opts.WorkDir == "" {
		r.opts.WorkDir = "."
	}

	series, err := config.LoadSeries(r.opts.WorkDir)
	if err != nil {
		return Result{}, err
	}

	inv, err := cliargs.Parser{Now: opts.Now}.Parse(opts.Args)
	if err != nil {
		return Result{}, err
	}
	if inv.Help {
		return Result{Help: true}, nil
	}

	r.result = Result{RunID: uuid.NewString(), Series: series, Invocation: inv}
	ctx = logging.WithRunID(ctx, r.result.RunID)
	r.base = logging.WithContext(ctx, opts.Logger)
	r.logger = logging.NewComponentLogger(r.base, "pipeline")

	if r.settings.Scaffold.Lock {
		lock, err := workspace.Acquire(r.opts.WorkDir)
		if err != nil {
			return r.result, err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logging.WarnWithImpact(r.logger, "lock release failed", logging.Error(err), logging.String("lock", lock.Path()))
			}
		}()
	}

	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return r.result, err
		}
		stageLogger := r.logger.With(logging.String(logging.FieldStage, st.name))
		stageLogger.Debug("stage started", logging.String(logging.FieldEventType, "stage_start"))
		if err := st.execute(r, ctx); err != nil {
			stageLogger.Debug("stage failed",
				logging.String(logging.FieldEventType, "stage_failure"),
				logging.String(logging.FieldErrorKind, errorKind(err)),
				logging.Error(err),
			)
			return r.result, err
		}
		stageLogger.Debug("stage completed", logging.String(logging.FieldEventType, "stage_complete"))
	}

	r.record(ctx)
	return r.result, nil
}

func (r *run) resolveSeason(_ context.Context) error {
	resolver := season.Resolver{Root: r.opts.WorkDir, Prefix: r.result.Series.SeasonPrefix}
	if r.result.Invocation.HasSeason() {
		r.result.Season = resolver.Explicit(r.result.Invocation.Season)
	} else {
		res, err := resolver.Latest()
		if err != nil {
			return err
		}
		r.result.Season = res
	}
	r.logger.Info("season resolved",
		logging.String("season", r.result.Season.Number),
		logging.String("dir", r.result.Season.Dir),
		logging.Bool("created", r.result.Season.Created),
	)
	return nil
}

func (r *run) scaffoldEpisode(_ context.Context) error {
	inv := r.result.Invocation
	dir, err := episode.Scaffold(r.result.Season.Dir, inv.Date, inv.Title)
	if err != nil {
		return err
	}
	r.result.EpisodeDir = dir
	r.vars = Vars(r.result.Series, r.result.Season.Number, inv)
	r.logger.Info("episode directory ready", logging.String("dir", dir))
	return nil
}

func (r *run) materialize(ctx context.Context) error {
	series := r.result.Series
	skeleton, err := series.SkeletonDir(r.opts.WorkDir)
	if err != nil {
		return err
	}
	description, err := series.DescriptionTemplate(r.opts.WorkDir)
	if err != nil {
		return err
	}

	m := &materialize.Materializer{Logger: r.base, Overwrite: r.settings.Scaffold.OverwriteExisting}
	res, err := m.Materialize(ctx, materialize.Request{
		SkeletonDir:         skeleton,
		DescriptionTemplate: description,
		EpisodeDir:          r.result.EpisodeDir,
		DescriptionSubdir:   series.DescriptionTargetDirectory,
		Vars:                r.vars,
	})
	r.result.Copied = res.Copied
	r.result.Description = res.Description
	return err
}

func (r *run) generateProject(ctx context.Context) error {
	series := r.result.Series
	template, err := series.ProjectTemplate(r.opts.WorkDir)
	if err != nil {
		return err
	}

	g := &projectfile.Generator{Logger: r.base, Overwrite: r.settings.Scaffold.OverwriteExisting}
	path, err := g.Generate(ctx, projectfile.Request{
		Template:  template,
		TargetDir: filepath.Join(r.result.EpisodeDir, series.VideoEditingTargetDirectory),
		Date:      episode.ISODate(r.result.Invocation.Date),
		Vars:      r.vars,
	})
	if err != nil {
		return err
	}
	r.result.ProjectFile = path
	return nil
}

// record appends the run to the history ledger. Failures only warn; the
// episode already exists on disk.
func (r *run) record(ctx context.Context) {
	recorder := r.opts.Ledger
	if recorder == nil {
		if !r.settings.Ledger.Enabled {
			return
		}
		path, err := config.ExpandPath(r.settings.Ledger.Path)
		if err != nil {
			logging.WarnWithImpact(r.logger, "history ledger path invalid", logging.Error(err))
			return
		}
		store, err := ledger.Open(ctx, path)
		if err != nil {
			logging.WarnWithImpact(r.logger, "history ledger unavailable", logging.Error(err), logging.String("path", path))
			return
		}
		defer store.Close()
		recorder = store
	}

	workDir, err := filepath.Abs(r.opts.WorkDir)
	if err != nil {
		workDir = r.opts.WorkDir
	}
	inv := r.result.Invocation
	if _, err := recorder.Record(ctx, ledger.Entry{
		ID:          r.result.RunID,
		WorkDir:     workDir,
		SeriesTitle: r.result.Series.Title,
		Season:      r.result.Season.Number,
		Episode:     inv.Episode,
		Title:       inv.Title,
		RecordedOn:  episode.ISODate(inv.Date),
		EpisodeDir:  r.result.EpisodeDir,
		ProjectFile: r.result.ProjectFile,
	}); err != nil {
		logging.WarnWithImpact(r.logger, "history entry not recorded", logging.Error(err))
		return
	}
	r.logger.Debug("history entry recorded")
}

func errorKind(err error) string {
	if marker := faults.Marker(err); marker != nil {
		return marker.Error()
	}
	return "unclassified"
}

// Vars computes the placeholder values for one episode. An episode number
// that was not supplied leaves [episodeId] in the output untouched.
func Vars(series *config.Series, seasonNumber string, inv cliargs.Invocation) placeholder.Set {
	vars := placeholder.Set{
		placeholder.EpisodeTitle: inv.Title,
		placeholder.VlogTitle:    series.Title,
		placeholder.SeasonID:     episode.SeasonID(seasonNumber),
		placeholder.Date:         episode.ISODate(inv.Date),
		placeholder.DayOfWeek:    episode.Weekday(inv.Date),
	}
	if series.Author != nil {
		vars[placeholder.Twitter] = series.Author.Twitter
		vars[placeholder.Instagram] = series.Author.Instagram
		vars[placeholder.Snapchat] = series.Author.Snapchat
	}
	if inv.HasEpisode() {
		vars[placeholder.EpisodeID] = episode.EpisodeID(inv.Episode)
	}
	return vars
}
