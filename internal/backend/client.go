// Package backend provides the REST client for the external task store.
//
// The backend owns all task records. This client only forwards
// create/list/update/delete requests and relays what comes back: a
// non-2xx status is a normal response here, not an error. Errors are
// reserved for transport and encoding failures.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/taskpilot-ai/taskpilot/internal/config"
	apperrors "github.com/taskpilot-ai/taskpilot/internal/errors"
)

// Collection paths keep the trailing slash; item paths do not.
const tasksCollectionPath = "/api/tasks/"

func taskItemPath(id int) string {
	return fmt.Sprintf("/api/tasks/%d", id)
}

// Response is the raw outcome of one backend call.
type Response struct {
	StatusCode int
	Body       string
}

// TaskCreate is the request body for creating a task.
type TaskCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskUpdate is the request body for updating a task. Completed is
// always sent; title and description only when the caller supplied them.
type TaskUpdate struct {
	Completed   bool    `json:"completed"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Client provides access to the task backend REST API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.Config, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(cfg.Backend.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout(),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the backend base URL the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateTask creates a new task owned by the calling user.
func (c *Client) CreateTask(ctx context.Context, token, title, description string) (*Response, error) {
	body := TaskCreate{Title: title, Description: description}
	req, err := c.newRequest(ctx, http.MethodPost, tasksCollectionPath, token, body)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// ListTasks fetches all tasks owned by the calling user.
func (c *Client) ListTasks(ctx context.Context, token string) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, tasksCollectionPath, token, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// UpdateTask updates the task with the given id.
func (c *Client) UpdateTask(ctx context.Context, token string, taskID int, update TaskUpdate) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodPut, taskItemPath(taskID), token, update)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// DeleteTask deletes the task with the given id.
func (c *Client) DeleteTask(ctx context.Context, token string, taskID int) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, taskItemPath(taskID), token, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// newRequest builds an authenticated JSON request.
func (c *Client) newRequest(ctx context.Context, method, path, token string, body any) (*http.Request, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.NewBuilder(apperrors.CodeBackendEncodeFailed, "failed to encode request body").
				System().
				Wrap(err).
				WithContext("method", method).
				WithContext("path", path).
				Build()
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInvalidInput, "failed to create request", apperrors.CategorySystem)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	setAuth(req, token)

	return req, nil
}

// setAuth sets the bearer credential. An empty token means an anonymous
// request: no Authorization header at all, and whether the backend
// accepts that is entirely its decision.
func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// do executes the request and captures the raw status and body.
func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewBuilder(apperrors.CodeBackendUnavailable, "backend request failed").
			Temporary().
			Wrap(err).
			WithContext("method", req.Method).
			WithContext("url", req.URL.String()).
			Build()
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeBackendDecodeFailed, "failed to read backend response", apperrors.CategoryTemporary)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       string(raw),
	}, nil
}
