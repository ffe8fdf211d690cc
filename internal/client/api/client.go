// Package api is a small HTTP client for the accounts server, used by the
// CLI. It speaks the same JSON surface the server exposes under /api.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// User is the account view returned by the server.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Login string `json:"login"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Client calls the accounts HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// do sends a JSON request and decodes a JSON response into out (when out is
// non-nil). Non-2xx responses are turned into errors carrying the server's
// error message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Buffer
	if body != nil {
		reader = &bytes.Buffer{}
		if err := json.NewEncoder(reader).Encode(body); err != nil {
			return err
		}
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s", apiErr.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, name, login, password string) (*User, error) {
	req := map[string]string{"name": name, "login": login, "password": password}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/api/users", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and returns a bearer token.
func (c *Client) Login(ctx context.Context, login, password string) (string, error) {
	req := map[string]string{"login": login, "password": password}
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/api/login", req, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Validate checks a token and returns the account it belongs to.
func (c *Client) Validate(ctx context.Context, token string) (*User, error) {
	req := map[string]string{"token": token}
	user := &User{}
	if err := c.do(ctx, http.MethodPost, "/api/validate", req, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
