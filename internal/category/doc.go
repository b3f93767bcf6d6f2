// Package category maps file names to the destination folders used by the
// organizer.
//
// Categories form a closed set. Each one owns a fixed group of lowercase
// extensions (leading dot included) and the folder name it is sorted into.
// The extension index is built once at init and never mutated, so Classify is
// safe for concurrent use without locking. Files whose extension is unknown or
// missing land in Others.
package category
