// Package api defines wire-format types and converters shared by the HTTP
// daemon and the CLI. It translates organizer results into transport-friendly
// DTOs so consumers never couple to internal types.
//
// # Key Types
//
// OrganizeRequest/OrganizeResponse: the request body and the five-field
// response every transport serializes (success, message, filesMoved,
// errorCount, timestamp).
//
// OrganizeReport: OrganizeResponse plus per-file outcomes, used by the CLI's
// --json output and the daemon's detailed mode.
//
// DirectoryValidation: the verdict returned to directory pickers.
//
// # Design Notes
//
// DTOs use camelCase JSON tags. Timestamps use RFC3339 with milliseconds.
// Service wraps an organizer so the daemon and CLI validate requests the same
// way before any file is touched.
package api
