// Package textutil provides file name helpers shared by the classifier and the
// organizer.
//
// SanitizeFileName swaps characters that are unsafe on common filesystems for
// underscores without changing the length of the name, so the result stays
// recognisable and sanitizing twice is a no-op. SplitExt defines what counts as
// an extension for both classification and collision suffixes.
package textutil
