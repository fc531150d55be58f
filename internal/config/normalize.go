package config

import (
	"fmt"
	"strings"
)

func (s *Settings) normalize() error {
	s.normalizeLogging()
	return s.normalizeLedger()
}

func (s *Settings) normalizeLogging() {
	s.Logging.Format = strings.ToLower(strings.TrimSpace(s.Logging.Format))
	if s.Logging.Format == "" {
		s.Logging.Format = defaultLogFormat
	}
	s.Logging.Level = strings.ToLower(strings.TrimSpace(s.Logging.Level))
	if s.Logging.Level == "" {
		s.Logging.Level = defaultLogLevel
	}
}

func (s *Settings) normalizeLedger() error {
	if strings.TrimSpace(s.Ledger.Path) == "" {
		s.Ledger.Path = defaultLedgerPath
	}
	var err error
	if s.Ledger.Path, err = expandPath(strings.TrimSpace(s.Ledger.Path)); err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	return nil
}
