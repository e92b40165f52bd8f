package apiclient

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

	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// RequestInterceptor runs before every outgoing request. Returning an error
// aborts the request.
type RequestInterceptor func(ctx context.Context, req *http.Request) error

// ResponseInterceptor observes every received response, including error
// statuses. Interceptor errors replace the response error.
type ResponseInterceptor func(ctx context.Context, resp *Response) error

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client sends JSON requests against a single base URL.
type Client struct {
	baseURL              string
	httpClient           *http.Client
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRequestInterceptor appends a request interceptor. Interceptors run in
// registration order.
func WithRequestInterceptor(i RequestInterceptor) Option {
	return func(c *Client) {
		if i != nil {
			c.requestInterceptors = append(c.requestInterceptors, i)
		}
	}
}

// WithResponseInterceptor appends a response interceptor. Interceptors run in
// registration order.
func WithResponseInterceptor(i ResponseInterceptor) Option {
	return func(c *Client) {
		if i != nil {
			c.responseInterceptors = append(c.responseInterceptors, i)
		}
	}
}

// New creates a client for baseURL. Panics on an empty base URL to fail fast
// on misconfiguration.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		panic(ErrEmptyBaseURL)
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get issues a GET request against path.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with a JSON-encoded body.
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with a JSON-encoded body.
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request against path.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("apiclient: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	for _, intercept := range c.requestInterceptors {
		if err := intercept(ctx, req); err != nil {
			return nil, fmt.Errorf("apiclient: request interceptor: %w", err)
		}
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       raw,
	}

	for _, intercept := range c.responseInterceptors {
		if err := intercept(ctx, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, statusError(resp)
	}

	return resp, nil
}

// statusError builds the typed error for a non-2xx response, preferring the
// envelope's meta.message when the body carries one.
func statusError(resp *Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var envelope struct {
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(resp.Body, &envelope); err == nil && envelope.Meta.Message != "" {
		apiErr.Message = envelope.Meta.Message
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}
