package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/viant/afs/url"

	"github.com/viant/shiftmate/client/auth/store"
	"github.com/viant/shiftmate/client/auth/transport"
	"github.com/viant/shiftmate/client/envelope"
	"github.com/viant/shiftmate/internal/metrics"
	"github.com/viant/shiftmate/schema"
)

// DefaultResourceUnwrap is the number of envelopes stripped by typed resources;
// the server may wrap a payload twice
const DefaultResourceUnwrap = 2

// RequestIDHeader carries the logical request id; a replay reuses it
const RequestIDHeader = "X-Request-Id"

type Client struct {
	baseURL        string
	tokens         *store.Tokens
	httpClient     *http.Client
	resourceUnwrap int
	logger         *slog.Logger
	metrics        *metrics.Metrics
	onClose        func() error
}

// New creates a client for the API rooted at baseURL
func New(baseURL string, tokens *store.Tokens, options ...Option) *Client {
	ret := &Client{
		baseURL:        baseURL,
		tokens:         tokens,
		httpClient:     http.DefaultClient,
		resourceUnwrap: DefaultResourceUnwrap,
		logger:         slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Tokens returns the token store
func (c *Client) Tokens() *store.Tokens {
	return c.tokens
}

// Close releases client resources
func (c *Client) Close() error {
	if c.onClose == nil {
		return nil
	}
	return c.onClose()
}

// Do executes a request and returns the unwrapped success payload
func (c *Client) Do(ctx context.Context, request *Request) *schema.Result[json.RawMessage] {
	started := time.Now()
	result := c.do(ctx, request)
	code := "OK"
	if !result.Success {
		code = result.Error.Code
		c.logger.DebugContext(ctx, "request failed",
			slog.String("method", request.Method),
			slog.String("path", request.Path),
			slog.String("code", code))
	}
	c.metrics.ObserveRequest(request.Method, code, time.Since(started))
	return result
}

func (c *Client) do(ctx context.Context, request *Request) *schema.Result[json.RawMessage] {
	httpRequest, err := c.newHTTPRequest(ctx, request)
	if err != nil {
		return schema.Fail[json.RawMessage](schema.NewError(schema.CodeInvalidRequest, err.Error(), nil))
	}
	resp, err := c.httpClient.Do(httpRequest)
	if err != nil {
		if errors.Is(err, transport.ErrUnauthorized) {
			return schema.Fail[json.RawMessage](schema.NewUnauthorized())
		}
		return schema.Fail[json.RawMessage](schema.NewNetworkError(err))
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return schema.Fail[json.RawMessage](schema.NewNetworkError(err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return schema.Fail[json.RawMessage](envelope.NewError(envelope.Decode(data), resp.StatusCode))
	}
	if len(data) == 0 || resp.StatusCode == http.StatusNoContent {
		return schema.Ok(json.RawMessage("null"))
	}
	if !json.Valid(data) {
		return schema.Fail[json.RawMessage](schema.NewDecodeError(errors.New("body is not valid JSON")))
	}
	return schema.Ok(envelope.UnwrapJSON(data, request.levels()))
}

func (c *Client) newHTTPRequest(ctx context.Context, request *Request) (*http.Request, error) {
	if request.Method == "" {
		request.Method = http.MethodGet
	}
	target := url.Join(c.baseURL, strings.TrimLeft(request.Path, "/"))
	if len(request.Query) > 0 {
		target += "?" + request.Query.Encode()
	}
	body, contentType, err := request.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v %v body: %w", request.Method, request.Path, err)
	}
	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, target, body)
	if err != nil {
		return nil, err
	}
	for key, values := range request.Header {
		for _, value := range values {
			httpRequest.Header.Add(key, value)
		}
	}
	if contentType != "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}
	httpRequest.Header.Set("Accept", "application/json")
	if httpRequest.Header.Get(RequestIDHeader) == "" {
		httpRequest.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return httpRequest, nil
}

// Send executes a request and decodes the payload into T
func Send[T any](ctx context.Context, c *Client, request *Request) *schema.Result[T] {
	raw := c.Do(ctx, request)
	if !raw.Success {
		return schema.Fail[T](raw.Error)
	}
	var result T
	if err := json.Unmarshal(raw.Data, &result); err != nil {
		return schema.Fail[T](schema.NewDecodeError(err))
	}
	return schema.Ok(result)
}

func build(method, path string, body interface{}, options []RequestOption) *Request {
	ret := &Request{Method: method, Path: path, Body: body}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Get sends a GET request
func Get[T any](ctx context.Context, c *Client, path string, options ...RequestOption) *schema.Result[T] {
	return Send[T](ctx, c, build(http.MethodGet, path, nil, options))
}

// Post sends a POST request with a JSON body
func Post[T any](ctx context.Context, c *Client, path string, body interface{}, options ...RequestOption) *schema.Result[T] {
	return Send[T](ctx, c, build(http.MethodPost, path, body, options))
}

// Put sends a PUT request with a JSON body
func Put[T any](ctx context.Context, c *Client, path string, body interface{}, options ...RequestOption) *schema.Result[T] {
	return Send[T](ctx, c, build(http.MethodPut, path, body, options))
}

// Patch sends a PATCH request with a JSON body
func Patch[T any](ctx context.Context, c *Client, path string, body interface{}, options ...RequestOption) *schema.Result[T] {
	return Send[T](ctx, c, build(http.MethodPatch, path, body, options))
}

// Delete sends a DELETE request
func Delete[T any](ctx context.Context, c *Client, path string, options ...RequestOption) *schema.Result[T] {
	return Send[T](ctx, c, build(http.MethodDelete, path, nil, options))
}

// resource options apply the resource unwrap level ahead of caller options
func (c *Client) resource(options ...RequestOption) []RequestOption {
	return append([]RequestOption{WithUnwrap(c.resourceUnwrap)}, options...)
}
