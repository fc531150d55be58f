package season

import (
	"os"
	"path/filepath"
	"regexp"

	"vlogman/internal/faults"
)

// Directory is one season folder found in the working directory.
type Directory struct {
	Name   string
	Number string
	Path   string
}

// Resolution is the season a run targets.
type Resolution struct {
	Number  string
	Dir     string
	Created bool
}

// Resolver finds season directories named <Prefix><digits> under Root.
type Resolver struct {
	Root   string
	Prefix string
}

func (r Resolver) pattern() *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(r.Prefix) + `(\d+)$`)
}

// List returns season directories in directory-listing order. The order is
// lexical, so "Season 10" sorts before "Season 2".
func (r Resolver) List() ([]Directory, error) {
	entries, err := os.ReadDir(r.root())
	if err != nil {
		return nil, faults.Wrap(faults.ErrFileSystem, "list seasons", "", err)
	}
	re := r.pattern()
	var dirs []Directory
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		match := re.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		dirs = append(dirs, Directory{
			Name:   entry.Name(),
			Number: match[1],
			Path:   filepath.Join(r.root(), entry.Name()),
		})
	}
	return dirs, nil
}

// Latest resolves the season used when none is given. With no season
// directories present, season 1 is created. Otherwise the last directory in
// listing order wins, so "Season 10" sorts before "Season 2".
func (r Resolver) Latest() (Resolution, error) {
	dirs, err := r.List()
	if err != nil {
		return Resolution{}, err
	}
	if len(dirs) == 0 {
		path := r.Path("1")
		if err := os.MkdirAll(path, 0o755); err != nil {
			return Resolution{}, faults.Wrap(faults.ErrFileSystem, "create season directory", "", err)
		}
		return Resolution{Number: "1", Dir: path, Created: true}, nil
	}
	latest := dirs[len(dirs)-1]
	return Resolution{Number: trimLeadingZeros(latest.Number), Dir: latest.Path}, nil
}

// Explicit resolves a season given on the command line. The token is used
// verbatim and the directory is not checked.
func (r Resolver) Explicit(number string) Resolution {
	return Resolution{Number: number, Dir: r.Path(number)}
}

// Path joins Root with the season directory name for number.
func (r Resolver) Path(number string) string {
	return filepath.Join(r.root(), r.Prefix+number)
}

func (r Resolver) root() string {
	if r.Root == "" {
		return "."
	}
	return r.Root
}

// trimLeadingZeros mirrors integer parsing of the directory suffix.
func trimLeadingZeros(digits string) string {
	for len(digits) > 1 && digits[0] == '0' {
		digits = digits[1:]
	}
	return digits
}

// EpisodeCount counts the episode directories inside the season.
func (d Directory) EpisodeCount() (int, error) {
	entries, err := os.ReadDir(d.Path)
	if err != nil {
		return 0, faults.Wrap(faults.ErrFileSystem, "count episodes", d.Name, err)
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			count++
		}
	}
	return count, nil
}
