package episode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vlogman/internal/faults"
)

const isoDateLayout = "2006-01-02"

// ISODate formats the calendar day of t as YYYY-MM-DD in UTC.
func ISODate(t time.Time) string {
	return t.UTC().Format(isoDateLayout)
}

// Weekday returns the en-US short weekday name ("Mon".."Sun") of t in UTC.
func Weekday(t time.Time) string {
	return t.UTC().Weekday().String()[:3]
}

// Pad left-pads a number token with zeros to at least two characters.
// Longer tokens are returned unchanged.
func Pad(value string) string {
	for len(value) < 2 {
		value = "0" + value
	}
	return value
}

// SeasonID renders a season token as "S03".
func SeasonID(season string) string {
	return "S" + Pad(season)
}

// EpisodeID renders an episode token as "E05".
func EpisodeID(episode string) string {
	return "E" + Pad(episode)
}

// DirName builds "<date> - <weekday> - <title>". An empty title leaves the
// trailing separator in place.
func DirName(date time.Time, title string) string {
	return fmt.Sprintf("%s - %s - %s", ISODate(date), Weekday(date), title)
}

// Scaffold creates the episode directory (and any missing parents) under
// seasonDir and returns its path. An existing directory is reused silently.
func Scaffold(seasonDir string, date time.Time, title string) (string, error) {
	if strings.TrimSpace(seasonDir) == "" {
		return "", faults.Wrap(faults.ErrFileSystem, "create episode directory", "season directory is empty", nil)
	}
	path := filepath.Join(seasonDir, DirName(date, title))
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "create episode directory", "", err)
	}
	return path, nil
}
