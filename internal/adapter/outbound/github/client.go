// Package github is the outbound adapter for the GitHub REST API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// APIError reports a non-success response from the GitHub API. The remote
// message and status code are preserved so tool output stays actionable.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// Repository is the subset of the repository resource the tools report.
type Repository struct {
	Name     string `json:"name"`
	HTMLURL  string `json:"html_url"`
	CloneURL string `json:"clone_url"`
}

// CreateRepositoryParams is the request body for repository creation.
// Description is forwarded only when the caller supplied one.
type CreateRepositoryParams struct {
	Name        string  `json:"name"`
	Private     bool    `json:"private"`
	AutoInit    bool    `json:"auto_init"`
	Description *string `json:"description,omitempty"`
}

// Client calls the GitHub REST API with a bearer-style token.
type Client struct {
	httpClient *http.Client
	token      string
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a GitHub client. baseURL is the API root
// (normally https://api.github.com).
func NewClient(httpClient *http.Client, token, baseURL string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		token:      token,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.With("component", "github_client"),
	}
}

// CreateRepository creates a repository for the authenticated user.
// Success is HTTP 201; anything else becomes an *APIError.
func (c *Client) CreateRepository(ctx context.Context, params CreateRepositoryParams) (*Repository, error) {
	log := c.logger.With(slog.String("repo", params.Name))
	log.Info("Creating repository")

	resp, err := c.do(ctx, http.MethodPost, "/user/repos", params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		apiErr := c.apiError(resp)
		log.Warn("Repository creation rejected", slog.Int("status", apiErr.StatusCode), slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	var repo Repository
	if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
		return nil, fmt.Errorf("failed to decode repository response: %w", err)
	}
	log.Info("Repository created", slog.String("url", repo.HTMLURL))
	return &repo, nil
}

// DeleteRepository deletes the named repository owned by the authenticated
// user. The owner login is resolved first via GET /user; success is HTTP 204.
func (c *Client) DeleteRepository(ctx context.Context, name string) error {
	log := c.logger.With(slog.String("repo", name))
	log.Info("Deleting repository")

	owner, err := c.AuthenticatedUser(ctx)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodDelete, "/repos/"+owner+"/"+name, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		apiErr := c.apiError(resp)
		log.Warn("Repository deletion rejected", slog.Int("status", apiErr.StatusCode), slog.String("message", apiErr.Message))
		return apiErr
	}
	log.Info("Repository deleted")
	return nil
}

// AuthenticatedUser returns the login of the token's owner.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get user info: %d", resp.StatusCode)
	}

	var user struct {
		Login string `json:"login"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("failed to decode user response: %w", err)
	}
	return user.Login, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to GitHub failed: %w", err)
	}
	return resp, nil
}

// apiError extracts the remote error message from a non-success response.
func (c *Client) apiError(resp *http.Response) *APIError {
	message := "Unknown error"
	var errBody struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
		message = errBody.Message
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
