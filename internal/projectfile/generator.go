package projectfile

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"vlogman/internal/faults"
	"vlogman/internal/fileutil"
	"vlogman/internal/logging"
	"vlogman/internal/placeholder"
)

// Generator turns the series project archive into a per-episode project file.
type Generator struct {
	Logger *slog.Logger
	// Overwrite replaces an existing project file for the same date.
	Overwrite bool
	// TempDir hosts the extraction directory; empty means os.TempDir.
	TempDir string
}

// Request describes one project file to produce.
type Request struct {
	Template  string
	TargetDir string
	// Date is the ISO date used as the output base name.
	Date string
	Vars placeholder.Set
}

// OutputName keeps everything from the first dot of the template name, so
// "proj.xml.gz" becomes "<date>.xml.gz".
func OutputName(templateName, date string) string {
	base := filepath.Base(templateName)
	if idx := strings.Index(base, "."); idx >= 0 {
		return date + base[idx:]
	}
	return date
}

// Generate extracts the template payload, substitutes placeholders, and
// writes the recompressed result. It returns the written path.
func (g *Generator) Generate(ctx context.Context, req Request) (string, error) {
	logger := logging.NewComponentLogger(g.logger(), "projectfile")

	codec, err := CodecFor(req.Template)
	if err != nil {
		return "", faults.Wrap(faults.ErrDecompression, "decompress "+req.Template, "", err)
	}

	extractDir, err := os.MkdirTemp(g.TempDir, "vlogman-extract-")
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "create extraction directory", "", err)
	}
	defer os.RemoveAll(extractDir)

	payloadPath, err := extract(codec, req.Template, extractDir)
	if err != nil {
		return "", err
	}
	logger.Debug("payload extracted",
		logging.String("template", req.Template),
		logging.String("codec", codec.Name),
		logging.String("payload", filepath.Base(payloadPath)),
	)

	if err := ctx.Err(); err != nil {
		return "", err
	}

	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "read extracted payload", "", err)
	}
	rendered := req.Vars.Apply(string(payload))

	var compressed bytes.Buffer
	zw, err := codec.Compress(&compressed, filepath.Base(payloadPath))
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "compress project file", "", err)
	}
	if _, err := io.WriteString(zw, rendered); err != nil {
		zw.Close()
		return "", faults.Wrap(faults.ErrFileSystem, "compress project file", "", err)
	}
	if err := zw.Close(); err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "compress project file", "", err)
	}

	if err := os.MkdirAll(req.TargetDir, 0o755); err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "create project directory", "", err)
	}
	target := filepath.Join(req.TargetDir, OutputName(req.Template, req.Date))
	if !g.Overwrite {
		if _, err := os.Stat(target); err == nil {
			return "", faults.Wrap(faults.ErrFileSystem, "write project file", target, fileutil.ErrExists)
		}
	}
	if err := fileutil.WriteFileAtomic(target, compressed.Bytes(), 0o644); err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "write project file", "", err)
	}
	logger.Info("project file written", logging.String("path", target), logging.Int("bytes", compressed.Len()))
	return target, nil
}

// extract decompresses src into dir and returns the single payload path.
func extract(codec Codec, src, dir string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "open project template", "", err)
	}
	defer in.Close()

	zr, headerName, err := codec.Decompress(in)
	if err != nil {
		return "", faults.Wrap(faults.ErrDecompression, "decompress "+src, "", err)
	}
	defer zr.Close()

	name := payloadName(headerName, src, codec)
	out, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "create extracted payload", "", err)
	}
	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		return "", faults.Wrap(faults.ErrDecompression, "decompress "+src, "", err)
	}
	if err := out.Close(); err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "close extracted payload", "", err)
	}

	return singleFile(dir, src)
}

func singleFile(dir, src string) (string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "scan extraction directory", "", err)
	}
	switch len(files) {
	case 0:
		return "", faults.Wrap(faults.ErrDecompression, "decompress "+src, "no files extracted", nil)
	case 1:
		return files[0], nil
	default:
		return "", faults.Wrap(faults.ErrDecompression, "decompress "+src, "expected a single payload file", errors.New(strings.Join(files, ", ")))
	}
}

// payloadName prefers the header name, falling back to the template name
// without its compression extension.
func payloadName(header, src string, codec Codec) string {
	switch name := filepath.Base(strings.TrimSpace(header)); name {
	case ".", "..", string(filepath.Separator):
	default:
		return name
	}
	base := filepath.Base(src)
	if trimmed := strings.TrimSuffix(base, codec.Ext); trimmed != "" && trimmed != base {
		return trimmed
	}
	return "payload"
}

func (g *Generator) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return logging.NewNop()
	}
	return g.Logger
}
