package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrExists is returned when a copy would replace an existing file.
var ErrExists = errors.New("destination already exists")

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644, true)
}

// CopyFileMode streams src to dst, setting the given file mode on dst. When
// overwrite is false an existing dst fails with ErrExists.
func CopyFileMode(src, dst string, mode os.FileMode, overwrite bool) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	out, err := os.OpenFile(dst, flags, mode)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, dst)
		}
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// TreeOptions controls CopyTree.
type TreeOptions struct {
	// Overwrite replaces existing destination files instead of failing.
	Overwrite bool
	// IncludeDotfiles copies entries whose name starts with ".".
	IncludeDotfiles bool
	// IncludeJunk copies OS metadata files such as .DS_Store and Thumbs.db.
	IncludeJunk bool
}

var junkNames = map[string]struct{}{
	".DS_Store":       {},
	"._.DS_Store":     {},
	"Thumbs.db":       {},
	"ehthumbs.db":     {},
	"Desktop.ini":     {},
	"desktop.ini":     {},
	".Spotlight-V100": {},
	".Trashes":        {},
}

// IsJunk reports whether name is an OS metadata file.
func IsJunk(name string) bool {
	if _, ok := junkNames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "._")
}

// CopyTree recursively copies the contents of src into dst, creating dst if
// needed. It returns the destination paths of copied files. A failure part
// way through leaves already copied files in place.
func CopyTree(src, dst string, opts TreeOptions) ([]string, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", src)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return nil, err
	}

	var copied []string
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == src {
			return nil
		}
		name := d.Name()
		if !opts.IncludeDotfiles && strings.HasPrefix(name, ".") {
			return skip(d)
		}
		if !opts.IncludeJunk && IsJunk(name) {
			return skip(d)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		entryInfo, err := d.Info()
		if err != nil {
			return err
		}
		if err := CopyFileMode(path, target, entryInfo.Mode().Perm(), opts.Overwrite); err != nil {
			return err
		}
		copied = append(copied, target)
		return nil
	})
	return copied, err
}

func skip(d fs.DirEntry) error {
	if d.IsDir() {
		return filepath.SkipDir
	}
	return nil
}

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".vlogman-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
