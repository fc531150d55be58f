package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"vlogman/internal/config"
	"vlogman/internal/faults"
)

const validSeries = `{
  "seasonPrefix": "Season ",
  "templateDirectory": "./templates/",
  "defaultTemplate": "proj.xml.gz",
  "descriptionTargetDirectory": "Description",
  "videoEditingTargetDirectory": "Project/",
  "title": "My Vlog",
  "author": {"twitter": "@me", "instagram": "@me", "snapchat": "me"}
}`

func writeSeries(t *testing.T, dir, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, config.SeriesFileName), []byte(contents), 0o644); err != nil {
		t.Fatalf("write series config: %v", err)
	}
}

func useTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	return home
}

func TestLoadSeries(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, validSeries)

	series, err := config.LoadSeries(dir)
	if err != nil {
		t.Fatalf("LoadSeries returned error: %v", err)
	}
	if series.SeasonPrefix != "Season " {
		t.Fatalf("expected prefix to keep trailing space, got %q", series.SeasonPrefix)
	}
	if series.Title != "My Vlog" {
		t.Fatalf("unexpected title %q", series.Title)
	}
	if series.Author == nil || series.Author.Snapchat != "me" {
		t.Fatalf("unexpected author %#v", series.Author)
	}
	if got := series.SeasonDirName("3"); got != "Season 3" {
		t.Fatalf("unexpected season dir name %q", got)
	}

	skeleton, err := series.SkeletonDir(dir)
	if err != nil {
		t.Fatalf("SkeletonDir: %v", err)
	}
	if want := filepath.Join(dir, "templates", "_skeleton"); skeleton != want {
		t.Fatalf("unexpected skeleton dir: got %q want %q", skeleton, want)
	}
	project, err := series.ProjectTemplate(dir)
	if err != nil {
		t.Fatalf("ProjectTemplate: %v", err)
	}
	if want := filepath.Join(dir, "templates", "proj.xml.gz"); project != want {
		t.Fatalf("unexpected project template: got %q want %q", project, want)
	}
}

func TestLoadSeriesAcceptsEmptyValues(t *testing.T) {
	dir := t.TempDir()
	contents := strings.NewReplacer(
		`"title": "My Vlog"`, `"title": ""`,
		`"descriptionTargetDirectory": "Description"`, `"descriptionTargetDirectory": ""`,
	).Replace(validSeries)
	writeSeries(t, dir, contents)

	series, err := config.LoadSeries(dir)
	if err != nil {
		t.Fatalf("LoadSeries returned error: %v", err)
	}
	if series.Title != "" || series.DescriptionTargetDirectory != "" {
		t.Fatalf("expected empty values to be kept, got %#v", series)
	}
}

func TestLoadSeriesTemplateDirectoryFromEnv(t *testing.T) {
	dir := t.TempDir()
	writeSeries(t, dir, validSeries)
	override := filepath.Join(t.TempDir(), "shared-templates")
	t.Setenv("VLOG_MANAGER_TEMPLATE_DIRECTORY", override)

	series, err := config.LoadSeries(dir)
	if err != nil {
		t.Fatalf("LoadSeries returned error: %v", err)
	}
	got, err := series.TemplateDir(dir)
	if err != nil {
		t.Fatalf("TemplateDir: %v", err)
	}
	if got != override {
		t.Fatalf("expected env override %q, got %q", override, got)
	}
}

func TestLoadSeriesFailures(t *testing.T) {
	cases := []struct {
		name     string
		contents string
		fragment string
	}{
		{name: "missing file", fragment: "file not found"},
		{name: "invalid json", contents: "{not json", fragment: "Error reading vlog-manager.json"},
		{name: "missing keys", contents: `{"seasonPrefix": "Season ", "title": "x"}`, fragment: "templateDirectory"},
		{name: "null title", contents: strings.Replace(validSeries, `"My Vlog"`, "null", 1), fragment: "missing required keys: title"},
		{name: "missing author", contents: strings.Replace(validSeries, `"author"`, `"authors"`, 1), fragment: "author"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.contents != "" {
				writeSeries(t, dir, tc.contents)
			}
			_, err := config.LoadSeries(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, faults.ErrConfig) {
				t.Fatalf("expected configuration error, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.fragment) {
				t.Fatalf("expected %q in %q", tc.fragment, err.Error())
			}
		})
	}
}

func TestLoadSettingsDefaults(t *testing.T) {
	home := useTempHome(t)
	t.Setenv(config.SettingsEnvVar, "")

	settings, resolved, exists, err := config.LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if exists {
		t.Fatal("expected settings file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "vlog-manager", "settings.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if settings.Logging.Format != "console" || settings.Logging.Level != "warn" {
		t.Fatalf("unexpected logging defaults: %#v", settings.Logging)
	}
	if !settings.Ledger.Enabled {
		t.Fatal("expected ledger enabled by default")
	}
	if want := filepath.Join(home, ".local", "share", "vlog-manager", "history.db"); settings.Ledger.Path != want {
		t.Fatalf("unexpected ledger path: got %q want %q", settings.Ledger.Path, want)
	}
	if settings.Scaffold.OverwriteExisting {
		t.Fatal("expected overwrite disabled by default")
	}
	if !settings.Scaffold.Lock {
		t.Fatal("expected lock enabled by default")
	}
}

func TestLoadSettingsCustomPath(t *testing.T) {
	useTempHome(t)
	path := filepath.Join(t.TempDir(), "settings.toml")

	type payload struct {
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
		Ledger struct {
			Enabled bool   `toml:"enabled"`
			Path    string `toml:"path"`
		} `toml:"ledger"`
	}
	custom := payload{}
	custom.Logging.Format = " JSON "
	custom.Logging.Level = "Debug"
	custom.Ledger.Enabled = false
	custom.Ledger.Path = "~/ledger.db"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal settings: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, resolved, exists, err := config.LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("unexpected resolution: exists=%v resolved=%q", exists, resolved)
	}
	if settings.Logging.Format != "json" || settings.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %#v", settings.Logging)
	}
	if settings.Ledger.Enabled {
		t.Fatal("expected ledger disabled")
	}
	if !filepath.IsAbs(settings.Ledger.Path) || filepath.Base(settings.Ledger.Path) != "ledger.db" {
		t.Fatalf("expected expanded ledger path, got %q", settings.Ledger.Path)
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	useTempHome(t)
	path := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(path, []byte("[scaffold]\noverwrite_existing = true\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv(config.SettingsEnvVar, path)

	settings, resolved, _, err := config.LoadSettings("")
	if err != nil {
		t.Fatalf("LoadSettings returned error: %v", err)
	}
	if resolved != path {
		t.Fatalf("expected env path %q, got %q", path, resolved)
	}
	if !settings.Scaffold.OverwriteExisting {
		t.Fatal("expected overwrite from file")
	}
	if !settings.Scaffold.Lock {
		t.Fatal("expected unspecified keys to keep defaults")
	}
}

func TestLoadSettingsRejectsUnknownFormat(t *testing.T) {
	useTempHome(t)
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, _, _, err := config.LoadSettings(path); err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestCreateSamples(t *testing.T) {
	dir := t.TempDir()
	if err := config.CreateSampleSeries(filepath.Join(dir, config.SeriesFileName)); err != nil {
		t.Fatalf("CreateSampleSeries failed: %v", err)
	}
	if _, err := config.LoadSeries(dir); err != nil {
		t.Fatalf("sample series does not load: %v", err)
	}

	useTempHome(t)
	settingsPath := filepath.Join(dir, "nested", "settings.toml")
	if err := config.CreateSampleSettings(settingsPath); err != nil {
		t.Fatalf("CreateSampleSettings failed: %v", err)
	}
	if _, _, exists, err := config.LoadSettings(settingsPath); err != nil || !exists {
		t.Fatalf("sample settings do not load: exists=%v err=%v", exists, err)
	}
}
