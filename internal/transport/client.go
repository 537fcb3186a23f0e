// Package transport talks to the asset backend and to object storage. Backend
// responses are unwrapped from their {code, message, data} envelope here so no
// caller has to know about it.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"
)

const (
	CodeSuccess    = 0
	MessageSuccess = "successful"

	maxErrorBody = 4 << 10
)

// Envelope is the wrapper every backend JSON response uses.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type RequestOptions struct {
	Method  string
	Query   map[string]string
	Headers map[string]string
	// Body is JSON-encoded when non-nil.
	Body any
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient trims one trailing slash from baseURL. A nil httpClient gets a
// client without an overall timeout, so long uploads are bounded by ctx only.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: 5 * time.Minute,
			IdleConnTimeout:       90 * time.Second,
		}}
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), http: httpClient}
}

func (c *Client) BaseURL() string { return c.baseURL }

// RequestJSON sends one request to the backend and decodes the envelope's
// data into out, which may be nil.
func (c *Client) RequestJSON(ctx context.Context, path string, opts RequestOptions, out any) error {
	target, err := c.buildURL(path, opts.Query)
	if err != nil {
		return &TransportError{Err: err}
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &TransportError{Status: resp.StatusCode, Body: string(raw)}
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", err)}
	}
	if env.Code != CodeSuccess {
		return &EnvelopeError{Code: env.Code, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &TransportError{Status: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func (c *Client) buildURL(path string, query map[string]string) (string, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("build url for %q: %w", path, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, v := range query {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// errorText prefers the message of an enveloped error body over the raw text.
// errorText prefers the envelope message, followed by any field errors in data.
func errorText(raw string) string {
	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Message != "" {
		if details := fieldErrors(env.Data); details != "" {
			return env.Message + ": " + details
		}
		return env.Message
	}
	return strings.TrimSpace(raw)
}

// fieldErrors renders a {"field":"tag"} data object as "field=tag" pairs sorted by field.
func fieldErrors(data json.RawMessage) string {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil || len(fields) == 0 {
		return ""
	}
	parts := make([]string, 0, len(fields))
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, fmt.Sprintf("%s=%v", name, fields[name]))
	}
	return strings.Join(parts, ", ")
}
