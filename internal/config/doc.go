// Package config loads, normalizes, and validates filesort configuration data.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the FILESORT_API_TOKEN environment fallback. Both the
// CLI and the daemon obtain organizer tuning (lock timeout, hash chunk size,
// worker count) and logging settings from the Config type defined here.
package config
