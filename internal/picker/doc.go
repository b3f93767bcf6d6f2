// Package picker implements the interactive terminal directory chooser used
// by `filesort pick`.
//
// The model lists subdirectories of the current path together with the number
// and total size of files that an organize run would touch. Every selection
// goes through the same preflight directory check as the organizer itself, so
// a path the picker accepts is a path the engine will accept.
package picker
