package materialize

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"vlogman/internal/faults"
	"vlogman/internal/fileutil"
	"vlogman/internal/logging"
	"vlogman/internal/placeholder"
)

// DescriptionFileName is the name of the rendered description.
const DescriptionFileName = "description.md"

// Materializer fills a new episode directory from the template directory.
type Materializer struct {
	Logger    *slog.Logger
	Overwrite bool
}

// Result reports what Materialize wrote.
type Result struct {
	Copied      []string
	Description string
}

// Request describes one materialization.
type Request struct {
	SkeletonDir         string
	DescriptionTemplate string
	EpisodeDir          string
	DescriptionSubdir   string
	Vars                placeholder.Set
}

// Materialize copies the skeleton tree and renders the description. Nothing
// is rolled back on failure.
func (m *Materializer) Materialize(ctx context.Context, req Request) (Result, error) {
	logger := logging.NewComponentLogger(m.logger(), "materialize")

	copied, err := m.CopySkeleton(req.SkeletonDir, req.EpisodeDir)
	if err != nil {
		return Result{}, err
	}
	logger.Info("skeleton copied",
		logging.String("source", req.SkeletonDir),
		logging.Int("files", len(copied)),
	)

	if err := ctx.Err(); err != nil {
		return Result{Copied: copied}, err
	}

	target := filepath.Join(req.EpisodeDir, req.DescriptionSubdir, DescriptionFileName)
	if err := WriteDescription(req.DescriptionTemplate, target, req.Vars); err != nil {
		return Result{Copied: copied}, err
	}
	logger.Info("description written", logging.String("path", target))

	return Result{Copied: copied, Description: target}, nil
}

// CopySkeleton recursively copies skeletonDir into episodeDir.
func (m *Materializer) CopySkeleton(skeletonDir, episodeDir string) ([]string, error) {
	copied, err := fileutil.CopyTree(skeletonDir, episodeDir, fileutil.TreeOptions{Overwrite: m.Overwrite})
	if err != nil {
		return copied, faults.Wrap(faults.ErrTemplateCopy, "copy skeleton", skeletonDir, err)
	}
	return copied, nil
}

// WriteDescription renders the template at src with vars and writes it to dst,
// creating dst's directory when needed.
func WriteDescription(src, dst string, vars placeholder.Set) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return faults.Wrap(faults.ErrFileSystem, "read description template", "", err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return faults.Wrap(faults.ErrFileSystem, "write description", "", err)
	}
	if err := os.WriteFile(dst, []byte(vars.Apply(string(data))), 0o644); err != nil {
		return faults.Wrap(faults.ErrFileSystem, "write description", "", err)
	}
	return nil
}

func (m *Materializer) logger() *slog.Logger {
	if m == nil || m.Logger == nil {
		return logging.NewNop()
	}
	return m.Logger
}
