package main

import (
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"vlogman/internal/config"
	"vlogman/internal/faults"
	"vlogman/internal/logging"
)

type commandContext struct {
	// dir replaces the process working directory when set.
	dir string
	now func() time.Time

	settingsOnce   sync.Once
	settings       *config.Settings
	settingsPath   string
	settingsExists bool
	settingsErr    error
}

func newCommandContext() *commandContext {
	return &commandContext{now: time.Now}
}

func (c *commandContext) ensureSettings() (*config.Settings, error) {
	c.settingsOnce.Do(func() {
		settings, path, exists, err := config.LoadSettings("")
		if err != nil {
			c.settingsErr = faults.Wrap(faults.ErrConfig, "Error reading settings", path, err)
			return
		}
		c.settings = settings
		c.settingsPath = path
		c.settingsExists = exists
	})
	return c.settings, c.settingsErr
}

func (c *commandContext) workingDir() (string, error) {
	if c.dir != "" {
		return c.dir, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", faults.Wrap(faults.ErrFileSystem, "resolve working directory", "", err)
	}
	return dir, nil
}

func (c *commandContext) logger(w io.Writer) (*slog.Logger, error) {
	settings, err := c.ensureSettings()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromSettings(settings, w)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfig, "configure logging", "", err)
	}
	return logger, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
