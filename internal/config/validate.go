package config

import (
	"fmt"
	"net"
	"sort"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganizer(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOrganizer() error {
	if err := ensurePositiveMap(map[string]int{
		"organizer.lock_timeout_seconds": c.Organizer.LockTimeoutSeconds,
		"organizer.hash_chunk_kib":       c.Organizer.HashChunkKiB,
		"organizer.workers":              c.Organizer.Workers,
	}); err != nil {
		return err
	}
	if c.Organizer.HashChunkKiB < minHashChunkKiB || c.Organizer.HashChunkKiB > maxHashChunkKiB {
		return fmt.Errorf("organizer.hash_chunk_kib must be between %d and %d", minHashChunkKiB, maxHashChunkKiB)
	}
	if c.Organizer.Workers > maxWorkers {
		return fmt.Errorf("organizer.workers must be at most %d", maxWorkers)
	}
	if c.Organizer.LockRegistryMaxIdle < 0 {
		return fmt.Errorf("organizer.lock_registry_max_idle must be >= 0 (0 disables the cap)")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if _, _, err := net.SplitHostPort(c.API.Bind); err != nil {
		return fmt.Errorf("api.bind %q is not a host:port address: %w", c.API.Bind, err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
