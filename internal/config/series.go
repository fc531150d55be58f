package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/mitchellh/go-homedir"

	"vlogman/internal/faults"
)

// SeriesFileName is the series configuration file looked up in the working directory.
const SeriesFileName = "vlog-manager.json"

//go:embed sample_series.json
var sampleSeries string

// Author holds the creator handles substituted into templates.
type Author struct {
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	Snapchat  string `json:"snapchat"`
}

// Series describes the naming conventions and metadata of one video series.
// It is loaded once per run and never mutated afterwards. Every key must be
// present in the file; string values may be empty.
type Series struct {
	SeasonPrefix string `json:"seasonPrefix"`
	// TemplateDirectory may be overridden with VLOG_MANAGER_TEMPLATE_DIRECTORY.
	TemplateDirectory           string  `json:"templateDirectory" env:"VLOG_MANAGER_TEMPLATE_DIRECTORY"`
	DefaultTemplate             string  `json:"defaultTemplate"`
	DescriptionTargetDirectory  string  `json:"descriptionTargetDirectory"`
	VideoEditingTargetDirectory string  `json:"videoEditingTargetDirectory"`
	Title                       string  `json:"title"`
	Author                      *Author `json:"author" validate:"required"`
}

// seriesKeys mirrors Series with pointer fields so a key holding "" counts as
// present while an absent or null key does not.
type seriesKeys struct {
	SeasonPrefix                *string          `json:"seasonPrefix" validate:"required"`
	TemplateDirectory           *string          `json:"templateDirectory" validate:"required"`
	DefaultTemplate             *string          `json:"defaultTemplate" validate:"required"`
	DescriptionTargetDirectory  *string          `json:"descriptionTargetDirectory" validate:"required"`
	VideoEditingTargetDirectory *string          `json:"videoEditingTargetDirectory" validate:"required"`
	Title                       *string          `json:"title" validate:"required"`
	Author                      *json.RawMessage `json:"author" validate:"required"`
}

// LoadSeries reads vlog-manager.json from dir. Missing, unparsable, or
// incomplete files are reported as configuration errors.
func LoadSeries(dir string) (*Series, error) {
	path := filepath.Join(dir, SeriesFileName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "file not found in "+displayDir(dir), nil)
		}
		return nil, faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "", err)
	}
	if info.IsDir() {
		return nil, faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "path is a directory", nil)
	}

	var series Series
	if err := cleanenv.ReadConfig(path, &series); err != nil {
		return nil, faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "", err)
	}
	if err := checkKeys(path); err != nil {
		return nil, err
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}
	return &series, nil
}

func checkKeys(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "", err)
	}
	var keys seriesKeys
	if err := json.Unmarshal(data, &keys); err != nil {
		return faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "", err)
	}
	return validateSeries(&keys)
}

// Validate checks the decoded values; key presence is checked at load time.
func (s *Series) Validate() error {
	return validateSeries(s)
}

func validateSeries(v any) error {
	if err := seriesValidator().Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			missing := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				missing = append(missing, fe.Field())
			}
			return faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "missing required keys: "+strings.Join(missing, ", "), nil)
		}
		return faults.Wrap(faults.ErrConfig, "Error reading "+SeriesFileName, "", err)
	}
	return nil
}

// TemplateDir resolves the template directory against the working directory.
func (s *Series) TemplateDir(workDir string) (string, error) {
	return resolveAgainst(workDir, s.TemplateDirectory)
}

// SkeletonDir is the directory tree copied into every new episode.
func (s *Series) SkeletonDir(workDir string) (string, error) {
	dir, err := s.TemplateDir(workDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "_skeleton"), nil
}

// DescriptionTemplate is the plain-text template rendered into description.md.
func (s *Series) DescriptionTemplate(workDir string) (string, error) {
	dir, err := s.TemplateDir(workDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "description.md"), nil
}

// ProjectTemplate is the compressed editing project archive.
func (s *Series) ProjectTemplate(workDir string) (string, error) {
	dir, err := s.TemplateDir(workDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, s.DefaultTemplate), nil
}

// SeasonDirName joins the prefix and the season number verbatim.
func (s *Series) SeasonDirName(season string) string {
	return s.SeasonPrefix + season
}

// CreateSampleSeries writes a starter vlog-manager.json to path.
func CreateSampleSeries(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleSeries), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func seriesValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func resolveAgainst(base, target string) (string, error) {
	expanded, err := homedir.Expand(target)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", target, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(base, expanded), nil
}

func displayDir(dir string) string {
	if dir == "" || dir == "." {
		return "the current directory"
	}
	return dir
}
