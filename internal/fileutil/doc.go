// Package fileutil holds the filesystem primitives the organizer builds on:
// streaming content digests, collision-free destination names, and renames
// that refuse to replace an existing file.
package fileutil
