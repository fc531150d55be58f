package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"vlogman/internal/config"
	"vlogman/internal/ledger"
)

// Settings returns default settings with the ledger pointed into a temp dir.
func Settings(t testing.TB) *config.Settings {
	t.Helper()

	settings := config.DefaultSettings()
	settings.Ledger.Path = filepath.Join(t.TempDir(), "history.db")
	return &settings
}

// MustOpenLedger opens the ledger named in settings and registers cleanup.
func MustOpenLedger(t testing.TB, settings *config.Settings) *ledger.Store {
	t.Helper()

	store, err := ledger.Open(context.Background(), settings.Ledger.Path)
	if err != nil {
		t.Fatalf("ledger.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
