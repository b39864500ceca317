// Package client is a typed consumer of the public live-coverage API,
// used by the poller and by anything else that wants the feed without
// its own HTTP plumbing.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"politiquensemble-live/feed"
)

type Coverage struct {
	ID        uint          `json:"id"`
	Title     string        `json:"title"`
	Slug      string        `json:"slug"`
	Subject   string        `json:"subject"`
	Context   string        `json:"context"`
	ImageURL  string        `json:"imageUrl"`
	Active    bool          `json:"active"`
	EndDate   *time.Time    `json:"endDate"`
	CreatedAt feed.FlexTime `json:"created_at"`
}

type EditorUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type Editor struct {
	ID         uint       `json:"id"`
	CoverageID uint       `json:"coverage_id"`
	UserID     uint       `json:"user_id"`
	User       EditorUser `json:"user"`
	Role       string     `json:"role"`
}

// APIError is a non-2xx response whose body carried the server's
// {"error": ...} payload.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout, Transport: tr},
	}
}

// Coverage fetches coverage metadata by slug.
func (c *Client) Coverage(ctx context.Context, slug string) (*Coverage, error) {
	var coverage Coverage
	if err := c.getJSON(ctx, "/api/live-coverages/"+url.PathEscape(slug), &coverage); err != nil {
		return nil, err
	}
	return &coverage, nil
}

// LiveCoverages fetches the coverages currently visible on the site.
func (c *Client) LiveCoverages(ctx context.Context) ([]Coverage, error) {
	var coverages []Coverage
	if err := c.getJSON(ctx, "/api/live-coverages", &coverages); err != nil {
		return nil, err
	}
	return coverages, nil
}

// Updates fetches the full update list for a coverage. Order is the
// server's; callers re-sort through feed.SortForDisplay regardless.
func (c *Client) Updates(ctx context.Context, coverageID uint) ([]feed.Update, error) {
	var updates []feed.Update
	if err := c.getJSON(ctx, fmt.Sprintf("/api/live-coverages/%d/updates", coverageID), &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// Editors fetches the editor roster with embedded user display fields.
func (c *Client) Editors(ctx context.Context, coverageID uint) ([]Editor, error) {
	var editors []Editor
	if err := c.getJSON(ctx, fmt.Sprintf("/api/live-coverages/%d/editors", coverageID), &editors); err != nil {
		return nil, err
	}
	return editors, nil
}

// SubmitQuestion files an audience question against a coverage.
func (c *Client) SubmitQuestion(ctx context.Context, coverageID uint, username, content string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"content":  content,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/live-coverages/%d/questions", c.baseURL, coverageID),
		strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func errorFromResponse(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}
