// Package sonar is a thin client for the SonarQube Web API endpoints used
// by the exports.
package sonar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrProjectNotFound is returned when a response lacks the project wrapper
// the endpoint normally returns.
var ErrProjectNotFound = errors.New("project not found")

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("sonarqube API error (%d) on %s %s: %s",
			e.StatusCode, e.Method, e.Path, strings.Join(e.Messages, "; "))
	}
	return fmt.Sprintf("unexpected status %d on %s %s", e.StatusCode, e.Method, e.Path)
}

// Client talks to a single SonarQube server with basic authentication.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL (e.g. http://sonarqube:9000).
// Requests made through it carry no explicit timeout.
func NewClient(baseURL, username, password string) *Client {
	return NewClientWithHTTPClient(&http.Client{}, baseURL, username, password)
}

// NewClientWithHTTPClient creates a Client that sends requests through hc.
func NewClientWithHTTPClient(hc *http.Client, baseURL, username, password string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		username:   username,
		password:   password,
		httpClient: hc,
	}
}

// BaseURL returns the server root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs an authenticated GET of path with params and decodes the
// JSON body into result when result is non-nil.
func (c *Client) get(ctx context.Context, path string, params url.Values, result any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode}
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil {
			for _, e := range errResp.Errors {
				apiErr.Messages = append(apiErr.Messages, e.Msg)
			}
		}
		return apiErr
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("unmarshaling response from GET %s: %w", path, err)
	}
	return nil
}
