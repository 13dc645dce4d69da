package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// extra attempts for idempotent reads; mutations are one-shot
	readRetries = 2
	// mutations carry a hard deadline, reads rely on the retry cap
	mutationTimeout = 15 * time.Second
)

// Client is the thin wrapper around the CRM REST surface. JSON bodies
// are auto-detected by content type, 204 yields no body, non-2xx surfaces
// as *APIError carrying the numeric status.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

// WithToken sets the Bearer token attached to every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response. Validation never reaches this layer;
// everything here is a transport or server failure the caller may retry
// manually.
type APIError struct {
	Status     int
	StatusText string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http error: status %d - %s", e.Status, e.StatusText)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.doStatus(ctx, method, path, body, out)
	return err
}

// doStatus also reports the response status so callers can tell a 204
// (no content) apart from a decoded empty value.
func (c *Client) doStatus(ctx context.Context, method, path string, body, out any) (int, error) {
	const op = "apiclient.do"

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode body: %w", op, err)
		}
	}

	if method != http.MethodGet {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, mutationTimeout)
			defer cancel()
		}
	}

	attempts := 1
	if method == http.MethodGet {
		attempts += readRetries
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%s: %w", op, err)
			continue
		}

		apiErr := checkStatus(resp)
		if apiErr != nil {
			resp.Body.Close()
			lastErr = apiErr
			// never retry client errors, the request will not get better
			if apiErr.Status < 500 {
				return apiErr.Status, apiErr
			}
			continue
		}

		status := resp.StatusCode
		err = decodeBody(resp, out)
		resp.Body.Close()
		if err != nil {
			return status, fmt.Errorf("%s: %w", op, err)
		}
		return status, nil
	}

	return 0, lastErr
}

func checkStatus(resp *http.Response) *APIError {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Body:       string(raw),
	}
}

func decodeBody(resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusNoContent || out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/json") {
		return json.NewDecoder(resp.Body).Decode(out)
	}

	// non-JSON bodies come back as raw text
	if s, ok := out.(*string); ok {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		*s = string(raw)
		return nil
	}
	return fmt.Errorf("unexpected content type %q", contentType)
}
