package config

const (
	defaultSettingsPath      = "~/.config/vlog-manager/settings.toml"
	defaultLedgerPath        = "~/.local/share/vlog-manager/history.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
	defaultLedgerEnabled     = true
	defaultOverwriteExisting = false
	defaultScaffoldLock      = true
)

// DefaultSettings returns Settings populated with repository defaults.
func DefaultSettings() Settings {
	return Settings{
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Ledger: Ledger{
			Enabled: defaultLedgerEnabled,
			Path:    defaultLedgerPath,
		},
		Scaffold: Scaffold{
			OverwriteExisting: defaultOverwriteExisting,
			Lock:              defaultScaffoldLock,
		},
	}
}
