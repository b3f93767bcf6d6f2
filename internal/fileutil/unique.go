package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"filesort/internal/textutil"
)

// Exists reports whether an entry is present at path without following
// symlinks. Errors other than not-exist are returned to the caller.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// CandidatePath returns the n-th collision candidate for path: n == 0 is the
// path itself, otherwise "_n" is inserted before the extension of the original
// name ("photo.jpg" -> "photo_2.jpg").
func CandidatePath(path string, n int) string {
	if n <= 0 {
		return path
	}
	dir, base := filepath.Split(path)
	stem, ext := textutil.SplitExt(base)
	return filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
}

// Uniquify returns the first absent candidate of path at or after index
// from, along with that index. Dangling symlinks count as taken.
func Uniquify(path string, from int, limit int) (string, int, error) {
	for n := max(from, 0); n < limit; n++ {
		candidate := CandidatePath(path, n)
		exists, err := Exists(candidate)
		if err != nil {
			return "", n, fmt.Errorf("check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, n, nil
		}
	}
	return "", limit, fmt.Errorf("no free name for %s among %d candidates", filepath.Base(path), limit)
}
