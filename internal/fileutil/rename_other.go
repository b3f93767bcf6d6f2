//go:build !linux

package fileutil

// RenameNoReplace moves src to dst and fails with an error matching
// fs.ErrExist when dst already exists.
func RenameNoReplace(src, dst string) error {
	return renameFallback(src, dst)
}
