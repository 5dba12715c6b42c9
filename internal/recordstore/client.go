// Package recordstore is the HTTP client for the external document
// database holding persisted reports. The wire shapes mirror a
// workspace-database API: pages with typed properties, soft-delete via
// an archived flag, and store-managed created/edited timestamps.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bogo-app/bogo/internal/report"
)

// ErrNotFound is returned when a page does not exist or has been
// archived. Transport and server failures are reported as distinct
// errors so callers can tell "gone" from "store unavailable".
var ErrNotFound = errors.New("record not found")

const defaultTimeout = 15 * time.Second

// Client talks to the record store over HTTP. Calls are never retried;
// failures surface to the caller, who may re-trigger the action.
type Client struct {
	baseURL    string
	apiKey     string
	version    string
	databaseID string
	httpClient *http.Client
}

// New creates a Client for the given store endpoint and database.
func New(baseURL, apiKey, version, databaseID string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		version:    version,
		databaseID: databaseID,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Ping reports whether the store answers an authenticated request.
func (c *Client) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return c.do(ctx, http.MethodGet, "/users/me", nil, nil) == nil
}

// queryRequest is the JSON body for POST /databases/{id}/query.
type queryRequest struct {
	Sorts []querySort `json:"sorts,omitempty"`
}

type querySort struct {
	Property  string `json:"property,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results []page `json:"results"`
}

// QueryAll returns every active report in the database, most recently
// created first. Archived pages are dropped from the result.
func (c *Client) QueryAll(ctx context.Context) ([]report.Report, error) {
	body := queryRequest{
		Sorts: []querySort{{Timestamp: "created_time", Direction: "descending"}},
	}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/databases/"+c.databaseID+"/query", body, &resp); err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}

	reports := make([]report.Report, 0, len(resp.Results))
	for _, p := range resp.Results {
		if p.Archived {
			continue
		}
		reports = append(reports, p.toReport())
	}
	return reports, nil
}

// GetOne fetches a single report by page id. Archived pages are treated
// as gone.
func (c *Client) GetOne(ctx context.Context, id string) (report.Report, error) {
	var p page
	if err := c.do(ctx, http.MethodGet, "/pages/"+id, nil, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return report.Report{}, ErrNotFound
		}
		return report.Report{}, fmt.Errorf("fetching report %s: %w", id, err)
	}
	if p.Archived {
		return report.Report{}, ErrNotFound
	}
	return p.toReport(), nil
}

// createRequest is the JSON body for POST /pages.
type createRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

// InsertOne creates a page from the given fields and returns the stored
// report with its store-assigned id and timestamps.
func (c *Client) InsertOne(ctx context.Context, f report.Fields) (report.Report, error) {
	body := createRequest{
		Parent:     pageParent{DatabaseID: c.databaseID},
		Properties: propertiesFromFields(f),
	}
	var p page
	if err := c.do(ctx, http.MethodPost, "/pages", body, &p); err != nil {
		return report.Report{}, fmt.Errorf("creating report: %w", err)
	}
	return p.toReport(), nil
}

// patchRequest is the JSON body for PATCH /pages/{id}.
type patchRequest struct {
	Properties *pageProperties `json:"properties,omitempty"`
	Archived   *bool           `json:"archived,omitempty"`
}

// PatchOne applies a partial update and returns the updated report.
func (c *Client) PatchOne(ctx context.Context, id string, f report.Fields) (report.Report, error) {
	props := propertiesFromFields(f)
	body := patchRequest{Properties: &props}
	var p page
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id, body, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return report.Report{}, ErrNotFound
		}
		return report.Report{}, fmt.Errorf("updating report %s: %w", id, err)
	}
	return p.toReport(), nil
}

// ArchiveOne soft-deletes a page. Archived pages stay in the store but
// disappear from all active queries.
func (c *Client) ArchiveOne(ctx context.Context, id string) error {
	archived := true
	body := patchRequest{Archived: &archived}
	if err := c.do(ctx, http.MethodPatch, "/pages/"+id, body, nil); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("archiving report %s: %w", id, err)
	}
	return nil
}

// apiError is the store's JSON error body.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshalling request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record store request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae apiError
		_ = json.NewDecoder(resp.Body).Decode(&ae)
		if resp.StatusCode == http.StatusNotFound || ae.Code == "object_not_found" {
			return ErrNotFound
		}
		if ae.Message != "" {
			return fmt.Errorf("record store: %s (status %d)", ae.Message, resp.StatusCode)
		}
		return fmt.Errorf("record store: unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
