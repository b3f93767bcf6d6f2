// Package organizer sorts the direct children of a directory into category
// subfolders.
//
// Organize validates the directory, enumerates regular files, classifies each
// by extension, and moves it to <dir>/<category>/<sanitized name>. A name
// collision is resolved by content: a byte-identical file already at a
// candidate path makes the source a duplicate that is left in place, while a
// different file pushes the source to the next "_N" suffix. Moves happen under
// a per-source-path lock from an injected pathlock.Registry and use a rename
// that never replaces an existing file, so concurrent calls on the same or
// different directories cannot clobber each other.
//
// Per-file failures are collected into the Result and never abort the batch.
// Only an unusable directory or a failed enumeration fails the whole call.
package organizer
