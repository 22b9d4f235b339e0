// Package api is a small HTTP client for the pagescout server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pagescout/internal/common"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

type Agent struct {
	ID        int64  `json:"id"`
	AgentName string `json:"agent_name"`
	Prompt    string `json:"prompt"`
	ImageURL  string `json:"image_url"`
}

type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

type ImageUpload struct {
	Key       string    `json:"key"`
	URL       string    `json:"upload_url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// HTTPClient is the underlying client, also used for presigned uploads.
func (c *Client) HTTPClient() *http.Client { return c.httpClient }

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		if json.Unmarshal(data, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(data))
			if e.Error == "" {
				e.Error = http.StatusText(resp.StatusCode)
			}
		}
		return &APIError{Status: resp.StatusCode, Code: e.Code, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], data...)
		return nil
	}
	return json.Unmarshal(data, out)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type message struct {
	Message string `json:"message"`
}

func (c *Client) Signup(ctx context.Context, username, password string) (string, error) {
	var m message
	err := c.do(ctx, http.MethodPost, "/signup", "", credentials{username, password}, &m)
	return m.Message, err
}

func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", credentials{username, password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Analyze returns the extracted record exactly as the server sent it.
func (c *Client) Analyze(ctx context.Context, token, url string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.do(ctx, http.MethodPost, "/analyze", token, map[string]string{"url": url}, &raw)
	return raw, err
}

func (c *Client) ListAgents(ctx context.Context, token string) ([]Agent, error) {
	var out []Agent
	err := c.do(ctx, http.MethodGet, "/agents", token, nil, &out)
	return out, err
}

func (c *Client) CreateAgent(ctx context.Context, token string, a Agent) error {
	return c.do(ctx, http.MethodPost, "/agents", token, map[string]string{
		"agent_name": a.AgentName,
		"prompt":     a.Prompt,
		"image_url":  a.ImageURL,
	}, nil)
}

func (c *Client) PresignAgentImage(ctx context.Context, token string) (*ImageUpload, error) {
	var out ImageUpload
	if err := c.do(ctx, http.MethodPost, "/agents/images", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProducts(ctx context.Context, token string) ([]Product, error) {
	var out []Product
	err := c.do(ctx, http.MethodGet, "/products", token, nil, &out)
	return out, err
}

// CreateProduct sends price as a JSON number when it parses as one, and as
// a string otherwise.
func (c *Client) CreateProduct(ctx context.Context, token, name, price, description string) error {
	var p any = price
	if n := json.Number(strings.TrimSpace(price)); isNumber(n) {
		p = n
	}
	return c.do(ctx, http.MethodPost, "/products", token, map[string]any{
		"name":        name,
		"price":       p,
		"description": description,
	}, nil)
}

func isNumber(n json.Number) bool {
	if n == "" {
		return false
	}
	var v float64
	return json.Unmarshal([]byte(n), &v) == nil
}
