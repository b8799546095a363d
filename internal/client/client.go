// Package client is a Go client for the Study Sphere API together with a
// local state store for documents, chat messages, tasks and UI flags.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/studysphere/studysphere-go/internal/model"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client calls the HTTP API. After a successful Login the token is attached
// as a Bearer credential to every document call.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// New creates a Client for baseURL. A nil httpClient gets a 10s timeout default.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Token returns the bearer token in use, or "" before Login.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Signup registers a new account.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (model.UserResponse, error) {
	var resp model.SignupResponse
	if err := c.do(ctx, http.MethodPost, "/api/signup", false, req, &resp); err != nil {
		return model.UserResponse{}, err
	}
	return resp.User, nil
}

// Login authenticates and remembers the returned token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp model.LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", false, model.LoginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	c.SetToken(resp.Token)
	return resp.Token, nil
}

// ListDocuments returns the caller's documents.
func (c *Client) ListDocuments(ctx context.Context) ([]model.Document, error) {
	var docs []model.Document
	if err := c.do(ctx, http.MethodGet, "/api/documents", true, nil, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// CreateDocument creates a new document.
func (c *Client) CreateDocument(ctx context.Context, req model.DocumentRequest) (model.Document, error) {
	var resp model.DocumentResponse
	if err := c.do(ctx, http.MethodPost, "/api/documents", true, req, &resp); err != nil {
		return model.Document{}, err
	}
	return resp.Document, nil
}

// UpdateDocument replaces the title and content of a document.
func (c *Client) UpdateDocument(ctx context.Context, id string, req model.DocumentRequest) (model.Document, error) {
	var resp model.DocumentResponse
	if err := c.do(ctx, http.MethodPut, "/api/documents/"+url.PathEscape(id), true, req, &resp); err != nil {
		return model.Document{}, err
	}
	return resp.Document, nil
}

// DeleteDocument deletes a document.
func (c *Client) DeleteDocument(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/documents/"+url.PathEscape(id), true, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.Token())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var msg struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return &APIError{StatusCode: resp.StatusCode, Message: msg.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
