// Package client talks to the todo-summarizer HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/SumanthSV/AI-Todo-summarizer/dto"
	"github.com/SumanthSV/AI-Todo-summarizer/model"
)

var (
	ErrUnauthenticated        = errors.New("not authenticated")
	ErrValidation             = errors.New("invalid request")
	ErrNotFoundOrUnauthorized = errors.New("todo not found or unauthorized")
	ErrConflict               = errors.New("conflict")
	ErrExternalService        = errors.New("external service failure")
)

// APIError is any non-2xx reply. errors.Is matches it against the sentinel
// for its status code.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthenticated
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFoundOrUnauthorized
	case http.StatusConflict:
		return ErrConflict
	case http.StatusBadGateway:
		return ErrExternalService
	}
	return nil
}

type envelope struct {
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	// stream has no overall timeout; live responses never finish on their own.
	stream *http.Client

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

// WithHTTPClient replaces the client used for regular requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// summary generation waits on the model
		http:   &http.Client{Timeout: 2 * time.Minute},
		stream: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends the request and decodes the envelope's data into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode >= 300 {
			return &APIError{Status: resp.StatusCode}
		}
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}

	if resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*dto.AuthResponse, error) {
	var res dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, body, &res); err != nil {
		return nil, err
	}
	c.SetToken(res.Token)
	return &res, nil
}

// Register, Login and Anonymous store the returned token on the client.
func (c *Client) Register(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", model.RegisterRequest{Email: email, Password: password})
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", model.LoginRequest{Email: email, Password: password})
}

func (c *Client) Anonymous(ctx context.Context) (*dto.AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/anonymous", nil)
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/api/user/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Sessions(ctx context.Context) ([]*model.Session, error) {
	var res dto.SessionsResponse
	if err := c.do(ctx, http.MethodGet, "/api/sessions", nil, &res); err != nil {
		return nil, err
	}
	return res.Sessions, nil
}

func (c *Client) ListTodos(ctx context.Context) ([]*model.Todo, error) {
	var res dto.TodosResponse
	if err := c.do(ctx, http.MethodGet, "/api/todos", nil, &res); err != nil {
		return nil, err
	}
	return res.Todos, nil
}

func (c *Client) Stats(ctx context.Context) (model.TodoStats, error) {
	var stats model.TodoStats
	err := c.do(ctx, http.MethodGet, "/api/todos/stats", nil, &stats)
	return stats, err
}

// CreateTodo returns the new todo's id.
func (c *Client) CreateTodo(ctx context.Context, req dto.CreateTodoRequest) (string, error) {
	var res dto.CreateTodoResponse
	if err := c.do(ctx, http.MethodPost, "/api/todos", req, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

func (c *Client) ToggleTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/todos/"+url.PathEscape(id)+"/toggle", nil, nil)
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/todos/"+url.PathEscape(id), nil, nil)
}

func (c *Client) GenerateSummary(ctx context.Context) (string, error) {
	var res dto.SummaryResponse
	if err := c.do(ctx, http.MethodPost, "/api/summary", nil, &res); err != nil {
		return "", err
	}
	return res.Summary, nil
}

// LatestSummary returns nil when none was generated yet.
func (c *Client) LatestSummary(ctx context.Context) (*model.Summary, error) {
	var res dto.LatestSummaryResponse
	if err := c.do(ctx, http.MethodGet, "/api/summary", nil, &res); err != nil {
		return nil, err
	}
	return res.Summary, nil
}
