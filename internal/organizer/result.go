package organizer

import (
	"fmt"
	"time"

	"filesort/internal/category"
)

// Status is the per-file outcome of an organize call.
type Status string

const (
	StatusMoved     Status = "moved"
	StatusDuplicate Status = "duplicate"
	StatusVanished  Status = "vanished"
	StatusFailed    Status = "failed"
	StatusCanceled  Status = "canceled"
)

// FileOutcome records what happened to one enumerated file.
type FileOutcome struct {
	Name        string
	Category    category.Category
	Destination string
	Status      Status
	Size        int64
	Err         error
}

// ErrorString renders the outcome error as "<name>: <error>".
func (o FileOutcome) ErrorString() string {
	if o.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", o.Name, o.Err)
}

// Result summarizes one organize call. It is built once and not modified
// after Organize returns.
type Result struct {
	Success    bool
	Message    string
	Moved      int
	Errors     []string
	Duplicates int
	Vanished   int
	Outcomes   []FileOutcome
	RequestID  string
	Timestamp  time.Time
}

// ErrorCount returns the number of recorded errors.
func (r Result) ErrorCount() int {
	return len(r.Errors)
}

// MovedBytes returns the total size of moved files.
func (r Result) MovedBytes() int64 {
	var total int64
	for _, o := range r.Outcomes {
		if o.Status == StatusMoved {
			total += o.Size
		}
	}
	return total
}

func summarize(outcomes []FileOutcome) Result {
	result := Result{Outcomes: outcomes, Errors: []string{}}
	canceled := 0
	for _, outcome := range outcomes {
		switch outcome.Status {
		case StatusMoved:
			result.Moved++
		case StatusDuplicate:
			result.Duplicates++
		case StatusVanished:
			result.Vanished++
		case StatusFailed:
			result.Errors = append(result.Errors, outcome.ErrorString())
		case StatusCanceled:
			canceled++
		}
	}
	if canceled > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("%d files not attempted: organize canceled", canceled))
	}
	result.Success = result.Moved > 0
	result.Message = fmt.Sprintf("Moved %d files", result.Moved)
	if len(result.Errors) > 0 {
		result.Message += fmt.Sprintf(" with %d errors", len(result.Errors))
	}
	return result
}

func failedResult(message string) Result {
	return Result{
		Success:  false,
		Message:  message,
		Errors:   []string{},
		Outcomes: []FileOutcome{},
	}
}
