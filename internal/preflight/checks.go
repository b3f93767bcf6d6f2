package preflight

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"filesort/internal/services"
)

// MarkerPrefix starts the name of the short-lived file created while checking
// that a directory accepts writes. Directory listings should ignore it.
const MarkerPrefix = ".filesort-check-"

// ValidateDirectory verifies that path names an existing directory that the
// process can list, enter, and create files in. Permission bits alone are not
// trusted: a marker file is created and removed to prove writes work. Errors
// carry services.ErrValidation for unusable input and services.ErrPermission
// for access failures.
func ValidateDirectory(path string) error {
	if strings.TrimSpace(path) == "" {
		return services.Wrap(services.ErrValidation, "preflight", "validate", "directory is required", nil)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrValidation, "preflight", "stat", fmt.Sprintf("%s does not exist", path), nil)
		}
		if errors.Is(err, fs.ErrPermission) {
			return services.Wrap(services.ErrPermission, "preflight", "stat", fmt.Sprintf("cannot access %s", path), err)
		}
		return services.Wrap(services.ErrValidation, "preflight", "stat", path, err)
	}
	if !info.IsDir() {
		return services.Wrap(services.ErrValidation, "preflight", "stat", fmt.Sprintf("%s is not a directory", path), nil)
	}
	if err := checkAccess(path); err != nil {
		return services.Wrap(services.ErrPermission, "preflight", "access", fmt.Sprintf("insufficient permissions on %s", path), err)
	}
	if err := writeMarker(path); err != nil {
		return services.Wrap(services.ErrPermission, "preflight", "write check", fmt.Sprintf("cannot create files in %s", path), err)
	}
	return nil
}

// writeMarker creates and removes a uniquely named marker so concurrent
// validations of one directory never collide.
func writeMarker(dir string) error {
	f, err := os.CreateTemp(dir, MarkerPrefix+"*")
	if err != nil {
		return err
	}
	name := f.Name()
	closeErr := f.Close()
	removeErr := os.Remove(name)
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

// CheckDirectory reports directory usability as a display-friendly Result.
func CheckDirectory(name, path string) Result {
	if err := ValidateDirectory(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s)", path, Describe(err))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// Describe strips the classification marker from a validation error, leaving
// the human-readable part.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []error{services.ErrValidation, services.ErrPermission} {
		prefix := marker.Error() + ": "
		if strings.HasPrefix(msg, prefix) {
			msg = strings.TrimPrefix(msg, prefix)
			break
		}
	}
	return strings.TrimPrefix(msg, "preflight: ")
}
