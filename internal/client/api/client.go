// Package api is a typed HTTP client for the tasklist server.
//
// A Client holds the session token obtained by Signin and sends it in the
// token header on every task call. Failures are returned as *APIError,
// which matches the sentinels in internal/common via errors.Is, or as
// ErrUnavailable when the server cannot be reached.
package api

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

	"github.com/dmitrijs2005/tasklist/internal/client/models"
	"github.com/dmitrijs2005/tasklist/internal/common"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// New returns a Client for baseURL. A bare host:port gets an http scheme.
func New(baseURL string, timeout time.Duration) *Client {
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
	Token   string `json:"token,omitempty"`
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set(common.TokenHeaderName, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// do sends in as JSON and decodes a 2xx body into out. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var mb messageBody
		if json.Unmarshal(data, &mb) == nil && mb.Message != "" {
			apiErr.Message = mb.Message
			apiErr.Detail = mb.Error
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Hello calls the unauthenticated root endpoint; handy as a ping.
func (c *Client) Hello(ctx context.Context) (string, error) {
	resp, err := c.send(ctx, http.MethodGet, "/", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Client) Signup(ctx context.Context, userName, email, password string) (*models.User, error) {
	in := map[string]string{"userName": userName, "email": email, "password": password}
	var out struct {
		Message string       `json:"message"`
		User    *models.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/signup", in, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Signin authenticates and keeps the returned token for later calls.
func (c *Client) Signin(ctx context.Context, email, password string) (string, error) {
	in := map[string]string{"email": email, "password": password}
	var out messageBody
	if err := c.do(ctx, http.MethodPost, "/signin", in, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", errors.New("signin: empty token in response")
	}
	c.SetToken(out.Token)
	return out.Token, nil
}

func (c *Client) CreateTask(ctx context.Context, title string) (*models.Task, error) {
	var task models.Task
	if err := c.do(ctx, http.MethodPost, "/todo", map[string]string{"title": title}, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns the caller's tasks. "No todos found" is reported as an
// empty list.
func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &tasks); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tasks, nil
}

func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	var task models.Task
	in := map[string]bool{"completed": completed}
	if err := c.do(ctx, http.MethodPut, "/update-todo/"+url.PathEscape(id), in, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/delete-todo/"+url.PathEscape(id), nil, nil)
}
