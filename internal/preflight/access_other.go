//go:build !unix

package preflight

// checkAccess has no access(2) equivalent here; writeMarker still proves the
// directory accepts new files.
func checkAccess(string) error {
	return nil
}
