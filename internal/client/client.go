package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"filesort/internal/api"
)

// ErrAPIUnavailable reports that no daemon answered at the configured bind.
var ErrAPIUnavailable = errors.New("filesort API unavailable")

// StatusError is returned when the daemon answers with a non-JSON-report
// status code.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("filesort API returned status %d", e.Code)
	}
	return fmt.Sprintf("filesort API returned status %d: %s", e.Code, e.Message)
}

// Client issues requests against one daemon.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

// New builds a client for bind, which may be host:port or a full URL.
// An empty bind yields a nil client.
func New(bind, token string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, nil
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, err
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 10 * time.Minute},
		token: strings.TrimSpace(token),
	}, nil
}

// Status fetches daemon runtime information.
func (c *Client) Status(ctx context.Context) (api.DaemonStatus, error) {
	var out api.DaemonStatus
	err := c.do(ctx, http.MethodGet, "/api/status", nil, nil, &out)
	return out, err
}

// Categories fetches the category table.
func (c *Client) Categories(ctx context.Context) (api.CategoriesResponse, error) {
	var out api.CategoriesResponse
	err := c.do(ctx, http.MethodGet, "/api/categories", nil, nil, &out)
	return out, err
}

// Organize asks the daemon to organize dir and returns the detailed report.
// A report with success=false is returned without error.
func (c *Client) Organize(ctx context.Context, dir string) (api.OrganizeReport, error) {
	var out api.OrganizeReport
	query := url.Values{"detail": []string{"1"}}
	err := c.do(ctx, http.MethodPost, "/api/organize", query, api.OrganizeRequest{Directory: dir}, &out)
	return out, err
}

// ValidateDirectory asks the daemon whether dir can be organized.
func (c *Client) ValidateDirectory(ctx context.Context, dir string) (api.DirectoryValidation, error) {
	var out api.DirectoryValidation
	err := c.do(ctx, http.MethodPost, "/api/directory/validate", nil, api.OrganizeRequest{Directory: dir}, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil {
		return ErrAPIUnavailable
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.base.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return err
	}

	// Organize failures arrive as 500 with a full report body.
	if resp.StatusCode == http.StatusInternalServerError && path == "/api/organize" {
		if err := json.Unmarshal(data, out); err == nil {
			return nil
		}
	}
	if resp.StatusCode >= 400 {
		var apiErr api.ErrorResponse
		_ = json.Unmarshal(data, &apiErr)
		return &StatusError{Code: resp.StatusCode, Message: apiErr.Error}
	}
	return json.Unmarshal(data, out)
}

// IsAPIUnavailable reports whether err means the daemon could not be reached.
func IsAPIUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrAPIUnavailable) || errors.As(err, &opErr)
}
