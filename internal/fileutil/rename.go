package fileutil

import (
	"errors"
	"io/fs"
	"os"
)

// renameFallback emulates a no-replace rename. A hard link claims dst
// atomically; filesystems without hard links get a check-then-rename, which
// leaves a small window that callers close by re-resolving on fs.ErrExist.
func renameFallback(src, dst string) error {
	if err := os.Link(src, dst); err == nil {
		if err := os.Remove(src); err != nil {
			_ = os.Remove(dst)
			return err
		}
		return nil
	} else if errors.Is(err, fs.ErrExist) || errors.Is(err, fs.ErrNotExist) {
		return err
	}

	exists, err := Exists(dst)
	if err != nil {
		return err
	}
	if exists {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
