package api

import (
	"context"
	"strings"

	"filesort/internal/config"
	"filesort/internal/organizer"
	"filesort/internal/preflight"
	"filesort/internal/services"
)

// Organizer is the engine surface the service drives.
type Organizer interface {
	Organize(ctx context.Context, dir string) organizer.Result
}

// Service validates transport requests and runs them through the organizer.
type Service struct {
	org Organizer
}

// NewService constructs a Service around the provided organizer.
func NewService(org Organizer) *Service {
	if org == nil {
		return nil
	}
	return &Service{org: org}
}

// Organize runs one request. A blank or unexpandable directory is rejected
// with services.ErrValidation before the organizer is invoked; every other
// outcome, including permission failures, is reported through the report.
func (s *Service) Organize(ctx context.Context, req OrganizeRequest) (OrganizeReport, error) {
	dir, err := normalizeDirectory(req.Directory)
	if err != nil {
		return OrganizeReport{}, err
	}
	return ReportFromResult(dir, s.org.Organize(ctx, dir)), nil
}

// ValidateDirectory reports whether path would pass the organizer's own
// directory checks.
func (s *Service) ValidateDirectory(path string) DirectoryValidation {
	return ValidateDirectory(path)
}

// ValidateDirectory reports whether path can be organized.
func ValidateDirectory(path string) DirectoryValidation {
	dir, err := normalizeDirectory(path)
	if err != nil {
		return DirectoryValidation{Path: path, Message: preflight.Describe(err)}
	}
	if err := preflight.ValidateDirectory(dir); err != nil {
		return DirectoryValidation{Path: dir, Message: preflight.Describe(err)}
	}
	return DirectoryValidation{Valid: true, Path: dir, Message: "Directory is readable and writable"}
}

func normalizeDirectory(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", services.Wrap(services.ErrValidation, "request", "", "directory is required", nil)
	}
	dir, err := config.ExpandPath(trimmed)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "request", "expand directory", trimmed, err)
	}
	return dir, nil
}
