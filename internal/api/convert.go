package api

import (
	"fmt"
	"time"

	"filesort/internal/category"
	"filesort/internal/organizer"
	"filesort/internal/services"
)

// FormatTimestamp renders t in the API timestamp layout.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateTimeFormat)
}

// FromResult converts an organizer result to the response shape.
func FromResult(result organizer.Result) OrganizeResponse {
	return OrganizeResponse{
		Success:    result.Success,
		Message:    result.Message,
		FilesMoved: result.Moved,
		ErrorCount: result.ErrorCount(),
		Timestamp:  FormatTimestamp(result.Timestamp),
	}
}

// ReportFromResult converts an organizer result including per-file detail.
func ReportFromResult(dir string, result organizer.Result) OrganizeReport {
	report := OrganizeReport{
		OrganizeResponse: FromResult(result),
		RequestID:        result.RequestID,
		Directory:        dir,
		Duplicates:       result.Duplicates,
		Vanished:         result.Vanished,
		Errors:           append([]string{}, result.Errors...),
		Files:            make([]FileOutcome, 0, len(result.Outcomes)),
	}
	for _, outcome := range result.Outcomes {
		report.Files = append(report.Files, FromOutcome(outcome))
	}
	return report
}

// FromOutcome converts one file outcome.
func FromOutcome(outcome organizer.FileOutcome) FileOutcome {
	dto := FileOutcome{
		Name:        outcome.Name,
		Category:    outcome.Category.String(),
		Status:      string(outcome.Status),
		Destination: outcome.Destination,
		Size:        outcome.Size,
	}
	if outcome.Err != nil {
		dto.Error = outcome.Err.Error()
	}
	return dto
}

// Categories returns the classification table in folder order.
func Categories() CategoriesResponse {
	return categoriesOf(category.All())
}

// SelectCategories returns the table entries for the given folder labels,
// matched case-insensitively and kept in the order given. An unknown label
// is a validation error.
func SelectCategories(labels ...string) (CategoriesResponse, error) {
	if len(labels) == 0 {
		return Categories(), nil
	}
	picked := make([]category.Category, 0, len(labels))
	for _, label := range labels {
		c, ok := category.Parse(label)
		if !ok {
			return CategoriesResponse{}, services.Wrap(services.ErrValidation, "request", "category",
				fmt.Sprintf("unknown category %q", label), nil)
		}
		picked = append(picked, c)
	}
	return categoriesOf(picked), nil
}

func categoriesOf(cats []category.Category) CategoriesResponse {
	resp := CategoriesResponse{Categories: make([]Category, 0, len(cats))}
	for _, c := range cats {
		exts := c.Extensions()
		if exts == nil {
			exts = []string{}
		}
		resp.Categories = append(resp.Categories, Category{Name: c.String(), Extensions: exts})
	}
	return resp
}
