package testsupport

import (
	"path/filepath"
	"testing"

	"filesort/internal/config"
)

// ConfigOption adjusts a test configuration before it is validated.
type ConfigOption func(*config.Config)

// NewConfig returns a valid config whose log directory lives under a fresh
// temp dir. The API binds an ephemeral loopback port and log pruning is off
// unless an option turns it on.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.API.Bind = "127.0.0.1:0"
	cfg.Logging.RetentionDays = 0
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}

// WithWorkers sets the organizer parallelism.
func WithWorkers(n int) ConfigOption {
	return func(c *config.Config) { c.Organizer.Workers = n }
}

// WithLockTimeoutSeconds overrides the per-file lock timeout.
func WithLockTimeoutSeconds(seconds int) ConfigOption {
	return func(c *config.Config) { c.Organizer.LockTimeoutSeconds = seconds }
}

// WithAPIToken requires the given bearer token on daemon requests.
func WithAPIToken(token string) ConfigOption {
	return func(c *config.Config) { c.API.Token = token }
}

// WithRetentionDays enables pruning of daemon run logs older than days.
func WithRetentionDays(days int) ConfigOption {
	return func(c *config.Config) { c.Logging.RetentionDays = days }
}
