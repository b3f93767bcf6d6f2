// Package daemon coordinates the long-running filesort process.
//
// It wires configuration, the shared lock registry, and the organizer into a
// single lifecycle with flock-based locking to prevent multiple instances, and
// serves the HTTP API used by remote callers and directory pickers.
//
// Keep orchestration here: organizing logic lives in the organizer package
// while the daemon focuses on startup, shutdown, and request handling.
package daemon
