// Package googleapi is the outbound adapter for the Google Calendar and
// Gmail REST APIs. Both share one authorized-user credential file.
package googleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// OAuth2 scopes requested for the credential. Mail gets the full scope since
// message deletion is not covered by the narrower ones.
var scopes = []string{
	"https://www.googleapis.com/auth/calendar",
	"https://mail.google.com/",
}

// APIError reports a non-success response from a Google API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// Client calls the Calendar and Gmail APIs. The HTTP client is built lazily
// from the credential file on first use, so a missing or stale credential
// surfaces as a per-call error rather than a startup failure.
type Client struct {
	tokenFile   string
	calendarURL string
	gmailURL    string
	logger      *slog.Logger

	mu         sync.Mutex
	httpClient *http.Client
}

// NewClient creates a client that authenticates with the authorized-user
// credential JSON at tokenFile.
func NewClient(tokenFile, calendarURL, gmailURL string, logger *slog.Logger) *Client {
	return &Client{
		tokenFile:   tokenFile,
		calendarURL: strings.TrimRight(calendarURL, "/"),
		gmailURL:    strings.TrimRight(gmailURL, "/"),
		logger:      logger.With("component", "googleapi_client"),
	}
}

// NewClientWithHTTP creates a client that uses httpClient as-is, skipping
// credential loading. Used by tests.
func NewClientWithHTTP(httpClient *http.Client, calendarURL, gmailURL string, logger *slog.Logger) *Client {
	c := NewClient("", calendarURL, gmailURL, logger)
	c.httpClient = httpClient
	return c
}

// client returns the authenticated HTTP client, building it on first use.
func (c *Client) client(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.httpClient != nil {
		return c.httpClient, nil
	}

	data, err := os.ReadFile(c.tokenFile)
	if err != nil {
		return nil, fmt.Errorf("read credential file %s: %w", c.tokenFile, err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credential file %s: %w", c.tokenFile, err)
	}

	c.httpClient = oauth2.NewClient(ctx, creds.TokenSource)
	c.logger.Info("Google credential loaded.", slog.String("file", c.tokenFile))
	return c.httpClient, nil
}

// do performs one API call and returns the raw response. The caller owns
// status handling and must close the body.
func (c *Client) do(ctx context.Context, method, url string, body interface{}) (*http.Response, error) {
	httpClient, err := c.client(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to Google API failed: %w", err)
	}
	return resp, nil
}

// doJSON performs an API call, checks for a 2xx status, and decodes the
// response into out (which may be nil for empty-body responses).
func (c *Client) doJSON(ctx context.Context, method, url string, body, out interface{}) error {
	resp, err := c.do(ctx, method, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// apiError extracts the remote error message from a non-success response.
func (c *Client) apiError(resp *http.Response) *APIError {
	message := "Unknown error"
	var errBody struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Error.Message != "" {
		message = errBody.Error.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
