package main

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"filesort/internal/config"
)

// noConfigAnnotation marks commands that run without loading a config file.
const noConfigAnnotation = "filesort.no-config"

// commandContext loads the configuration once per process, on first use, from
// the --config flag or the default location.
type commandContext struct {
	configFlag string

	load        sync.Once
	cfg         *config.Config
	cfgPath     string
	cfgFromFile bool
	cfgErr      error
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.load.Do(func() {
		cfg, path, exists, err := config.Load(strings.TrimSpace(c.configFlag))
		if err == nil {
			err = cfg.EnsureDirectories()
		}
		if err != nil {
			c.cfgErr = err
			return
		}
		c.cfg, c.cfgPath, c.cfgFromFile = cfg, path, exists
	})
	return c.cfg, c.cfgErr
}

func withoutConfig() map[string]string {
	return map[string]string{noConfigAnnotation: "true"}
}

// needsConfig reports whether cmd or any parent requires a loaded config.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noConfigAnnotation] == "true" {
			return false
		}
	}
	return true
}
