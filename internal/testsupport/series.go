package testsupport

import (
	"path/filepath"
	"testing"

	"vlogman/internal/config"
)

// SeriesJSON matches the reference series used across tests.
const SeriesJSON = `{
  "seasonPrefix": "Season ",
  "templateDirectory": "./templates/",
  "defaultTemplate": "proj.xml.gz",
  "descriptionTargetDirectory": "Description",
  "videoEditingTargetDirectory": "Project/",
  "title": "My Vlog",
  "author": {"twitter": "@me", "instagram": "@me", "snapchat": "me"}
}`

// TemplateText uses every recognized placeholder plus one unknown token.
const TemplateText = "[vlogTitle] [seasonId][episodeId] - [episodeTitle]\n" +
	"[dayOfWeek] [date]\n" +
	"twitter [twitter] instagram [instagram] snapchat [snapchat]\n" +
	"[unknown]\n"

// SeriesOption customizes the workspace built by NewSeries.
type SeriesOption func(*seriesBuilder)

type seriesBuilder struct {
	seriesJSON string
	seasons    []string
	noProject  bool
}

// Workspace is a series working directory laid out on disk.
type Workspace struct {
	Dir       string
	Templates string
}

// NewSeries creates a working directory with vlog-manager.json, a skeleton
// tree, a description template, and a gzip project template.
func NewSeries(t testing.TB, opts ...SeriesOption) Workspace {
	t.Helper()

	b := &seriesBuilder{seriesJSON: SeriesJSON}
	for _, opt := range opts {
		opt(b)
	}

	dir := t.TempDir()
	ws := Workspace{Dir: dir, Templates: filepath.Join(dir, "templates")}
	WriteFile(t, filepath.Join(dir, config.SeriesFileName), b.seriesJSON)
	WriteFile(t, filepath.Join(ws.Templates, "_skeleton", "Footage", "README.txt"), "drop clips here\n")
	WriteFile(t, filepath.Join(ws.Templates, "_skeleton", ".DS_Store"), "junk")
	WriteFile(t, filepath.Join(ws.Templates, "description.md"), TemplateText)
	if !b.noProject {
		WriteGzip(t, filepath.Join(ws.Templates, "proj.xml.gz"), "proj.xml", "<project>"+TemplateText+"</project>")
	}
	for _, name := range b.seasons {
		MkdirAll(t, filepath.Join(dir, name))
	}
	return ws
}

// WithSeriesJSON replaces the vlog-manager.json contents.
func WithSeriesJSON(raw string) SeriesOption {
	return func(b *seriesBuilder) {
		b.seriesJSON = raw
	}
}

// WithSeasons pre-creates season directories by name.
func WithSeasons(names ...string) SeriesOption {
	return func(b *seriesBuilder) {
		b.seasons = append(b.seasons, names...)
	}
}

// WithoutProjectTemplate leaves the project archive out of the templates.
func WithoutProjectTemplate() SeriesOption {
	return func(b *seriesBuilder) {
		b.noProject = true
	}
}
