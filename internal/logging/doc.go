// Package logging builds the slog loggers filesort writes through.
//
// Console output is one human-readable line per record with the component as
// a prefix; daemon run logs are JSON. Both are fed by a sink handler that
// stamps records with the daemon run ID and with the correlation ID and
// directory found on the logging context. The package also names, links, and
// prunes the per-run log files in the log directory.
package logging
