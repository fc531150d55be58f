package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultLimit bounds List when the caller passes a non-positive limit.
const DefaultLimit = 20

// Fixed width so created_at sorts lexically in time order.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry records one scaffolded episode.
type Entry struct {
	ID          string
	CreatedAt   time.Time
	WorkDir     string
	SeriesTitle string
	Season      string
	// Episode is empty when the episode number was not supplied.
	Episode     string
	Title       string
	RecordedOn  string
	EpisodeDir  string
	ProjectFile string
}

// Store manages episode history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts entry, filling ID and CreatedAt when unset, and returns the
// stored form.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	entry.CreatedAt = entry.CreatedAt.UTC()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO episodes (
            id, created_at, work_dir, series_title, season, episode,
            title, recorded_on, episode_dir, project_file
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.CreatedAt.Format(timestampLayout),
		entry.WorkDir,
		entry.SeriesTitle,
		entry.Season,
		nullableString(entry.Episode),
		entry.Title,
		entry.RecordedOn,
		entry.EpisodeDir,
		nullableString(entry.ProjectFile),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert episode: %w", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+entryColumns+` FROM episodes ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query episodes: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return entries, nil
}

const entryColumns = "id, created_at, work_dir, series_title, season, episode, title, recorded_on, episode_dir, project_file"

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		entry       Entry
		createdRaw  string
		episode     sql.NullString
		projectFile sql.NullString
	)
	if err := scanner.Scan(
		&entry.ID,
		&createdRaw,
		&entry.WorkDir,
		&entry.SeriesTitle,
		&entry.Season,
		&episode,
		&entry.Title,
		&entry.RecordedOn,
		&entry.EpisodeDir,
		&projectFile,
	); err != nil {
		return Entry{}, fmt.Errorf("scan episode: %w", err)
	}
	created, err := time.Parse(timestampLayout, createdRaw)
	if err != nil {
		return Entry{}, fmt.Errorf("parse created_at %q: %w", createdRaw, err)
	}
	entry.CreatedAt = created
	entry.Episode = episode.String
	entry.ProjectFile = projectFile.String
	return entry, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
