package api

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// OrganizeRequest asks the engine to organize one directory.
type OrganizeRequest struct {
	Directory string `json:"directory"`
}

// OrganizeResponse is the summary of one organize call.
type OrganizeResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	FilesMoved int    `json:"filesMoved"`
	ErrorCount int    `json:"errorCount"`
	Timestamp  string `json:"timestamp"`
}

// FileOutcome describes what happened to one file.
type FileOutcome struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Destination string `json:"destination,omitempty"`
	Size        int64  `json:"size"`
	Error       string `json:"error,omitempty"`
}

// OrganizeReport extends OrganizeResponse with per-file detail.
type OrganizeReport struct {
	OrganizeResponse
	RequestID  string        `json:"requestId"`
	Directory  string        `json:"directory"`
	Duplicates int           `json:"duplicates"`
	Vanished   int           `json:"vanished"`
	Errors     []string      `json:"errors"`
	Files      []FileOutcome `json:"files"`
}

// DirectoryValidation reports whether a path can be organized.
type DirectoryValidation struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Category lists the extensions routed to one folder.
type Category struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

// CategoriesResponse wraps the category table in folder order.
type CategoriesResponse struct {
	Categories []Category `json:"categories"`
}

// DaemonStatus aggregates daemon runtime information for API consumers.
type DaemonStatus struct {
	Running      bool   `json:"running"`
	PID          int    `json:"pid"`
	Bind         string `json:"bind"`
	LockFilePath string `json:"lockFilePath"`
	LogPath      string `json:"logPath,omitempty"`
	StartedAt    string `json:"startedAt"`
	Workers      int    `json:"workers"`
	LockEntries  int    `json:"lockEntries"`
	IdleLocks    int    `json:"idleLocks"`
	Requests     int64  `json:"requests"`
}

// ErrorResponse is the body of every non-2xx reply produced before the
// organizer runs.
type ErrorResponse struct {
	Error string `json:"error"`
}
