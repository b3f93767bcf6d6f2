package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation  = errors.New("validation error")
	ErrPermission  = errors.New("permission error")
	ErrLockTimeout = errors.New("lock timeout")
	ErrIO          = errors.New("io error")
	ErrVanished    = errors.New("file vanished")
	ErrCritical    = errors.New("critical error")
)

// Kind names the failure class of an error for logs and outcome reporting.
type Kind string

const (
	KindNone        Kind = ""
	KindValidation  Kind = "validation"
	KindPermission  Kind = "permission"
	KindLockTimeout Kind = "lock_timeout"
	KindIO          Kind = "io"
	KindVanished    Kind = "vanished"
	KindCritical    Kind = "critical"
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// KindOf maps an error to its failure class. Unmarked errors are treated as I/O.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrVanished):
		return KindVanished
	case errors.Is(err, ErrLockTimeout):
		return KindLockTimeout
	case errors.Is(err, ErrPermission):
		return KindPermission
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrCritical):
		return KindCritical
	default:
		return KindIO
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organizer failure"
	}
	return strings.Join(parts, ": ")
}
