package config

const (
	defaultConfigPath          = "~/.config/filesort/config.toml"
	projectConfigName          = "filesort.toml"
	defaultLogDir              = "~/.local/share/filesort/logs"
	defaultLogRetentionDays    = 30
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultAPIBind             = "127.0.0.1:7487"
	defaultLockTimeoutSeconds  = 5
	defaultHashChunkKiB        = 64
	defaultWorkers             = 1
	defaultLockRegistryMaxIdle = 4096

	minHashChunkKiB = 32
	maxHashChunkKiB = 1024
	maxWorkers      = 64
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Organizer: Organizer{
			LockTimeoutSeconds:  defaultLockTimeoutSeconds,
			HashChunkKiB:        defaultHashChunkKiB,
			Workers:             defaultWorkers,
			LockRegistryMaxIdle: defaultLockRegistryMaxIdle,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
