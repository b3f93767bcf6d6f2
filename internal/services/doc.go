// Package services defines shared helpers consumed by the organizer engine and
// its transports.
//
// Key responsibilities:
//   - Context helpers that stamp request correlation identifiers and the
//     directory being organized for logging.
//   - Structured error markers plus the Wrap helper that let callers classify
//     per-file failures (lock timeout, I/O, vanished) without string matching.
//
// Use these helpers when wiring new callers so error handling and
// observability stay uniform between the CLI and the HTTP daemon.
package services
