// Package client is the HTTP/JSON client for the notes server. It is the
// only I/O boundary the UI core talks through.
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
	"os"
	"strings"
	"time"

	"nts/internal/config"
	"nts/internal/types"
)

type Client struct {
	baseURL   string
	tokenPath string
	token     string
	http      *http.Client
}

// New builds a client against the configured server, loading the session
// token from the data dir if one exists.
func New(cfg config.Config) (*Client, error) {
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   cfg.BaseURL(),
		tokenPath: tokenPath,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
	_ = c.loadToken()
	return c, nil
}

// NewWithBaseURL is used by tests and by commands that already hold a token.
func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the authenticated user, or nil without error when the session
// is missing or expired (the server answers JSON null).
func (c *Client) Me(ctx context.Context) (*types.User, error) {
	var user *types.User
	if err := c.doJSON(ctx, http.MethodGet, "/session/me", nil, true, &user); err != nil {
		if apiErr := AsAPIError(err); apiErr != nil && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, nil
		}
		return nil, err
	}
	if user == nil || strings.TrimSpace(user.ID) == "" {
		return nil, nil
	}
	return user, nil
}

func (c *Client) ListNotes(ctx context.Context, userID string) ([]*types.Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	var notes []*types.Note
	path := "/notes?userId=" + url.QueryEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNote performs the upsert. An empty req.ID asks the server to create;
// the response always carries the authoritative id and timestamps.
func (c *Client) SaveNote(ctx context.Context, req SaveNoteRequest) (*types.Note, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, errors.New("user id is required")
	}
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes", req, true, &note); err != nil {
		return nil, err
	}
	if strings.TrimSpace(note.ID) == "" {
		return nil, errors.New("server response missing note id")
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	if strings.TrimSpace(noteID) == "" {
		return errors.New("note id is required")
	}
	path := "/notes?noteId=" + url.QueryEscape(noteID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, true, nil)
}

// Logout tells the server to drop the session and removes the local token
// regardless of the server's answer.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodGet, "/session/logout", nil, true, nil)
	c.token = ""
	if c.tokenPath != "" {
		if rmErr := os.Remove(c.tokenPath); rmErr != nil && !os.IsNotExist(rmErr) && err == nil {
			err = rmErr
		}
	}
	return err
}

// LoginURL is where a browser should be pointed to obtain a session token
// for this client.
func (c *Client) LoginURL() string {
	return c.baseURL + "/session/login/github?state=cli"
}

// StoreToken persists a pasted session token for future runs.
func (c *Client) StoreToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("token is required")
	}
	if c.tokenPath == "" {
		c.token = token
		return nil
	}
	if _, err := config.EnsureDataDir(); err != nil {
		return err
	}
	if err := os.WriteFile(c.tokenPath, []byte(token+"\n"), 0o600); err != nil {
		return err
	}
	c.token = token
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requireAuth && strings.TrimSpace(c.token) != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) loadToken() error {
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
