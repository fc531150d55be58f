package config

import "fmt"

// Validate ensures the settings are usable.
func (s *Settings) Validate() error {
	if err := s.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (s *Settings) validateLogging() error {
	switch s.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", s.Logging.Format)
	}
	switch s.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", s.Logging.Level)
	}
	return nil
}
