/*
Copyright 2024-2025 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package webtestclient

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"

	"k8s.io/utils/ptr"
)

const (
	// defaultTimeout applies to remote servers only, in process handlers
	// are not interrupted.
	defaultTimeout = 30 * time.Second

	// inProcessHost is the host used for requests served in process.
	inProcessHost = "http://localhost"
)

// Builder configures a Client before use.
type Builder struct {
	handler      http.Handler
	baseURL      string
	httpClient   *http.Client
	timeout      *time.Duration
	middleware   []func(http.Handler) http.Handler
	header       http.Header
	logger       logr.Logger
	logRequests  bool
	logResponses bool
	mounts       []func(chi.Router)
}

// BindToController binds a client to one or more controllers, each mounted
// on a fresh router.  Controller state is shared with anything else holding
// the same instances.
func BindToController(controllers ...Controller) *Builder {
	mounts := make([]func(chi.Router), len(controllers))

	for i := range controllers {
		mounts[i] = controllers[i].RegisterRoutes
	}

	return newBuilder(mounts...)
}

// BindToRouterFunction binds a client to a functional route definition.
func BindToRouterFunction(routes RouterFunction) *Builder {
	return newBuilder(routes)
}

// BindToHandler binds a client to an arbitrary handler.
func BindToHandler(handler http.Handler) *Builder {
	b := newBuilder()
	b.handler = handler

	return b
}

// BindToServer binds a client to a running server, e.g. an httptest.Server
// or a live deployment.
func BindToServer(baseURL string) *Builder {
	b := newBuilder()
	b.baseURL = strings.TrimSuffix(baseURL, "/")

	return b
}

func newBuilder(mounts ...func(chi.Router)) *Builder {
	return &Builder{
		header: http.Header{},
		logger: logr.Discard(),
		mounts: mounts,
	}
}

// WithLogger sets the logger used for request and response logging.
func (b *Builder) WithLogger(logger logr.Logger) *Builder {
	b.logger = logger
	return b
}

// WithTimeout sets the round trip timeout for remote servers.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.timeout = &timeout
	return b
}

// WithHTTPClient overrides the HTTP client used for remote servers.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithMiddleware wraps in process handlers.
func (b *Builder) WithMiddleware(middleware ...func(http.Handler) http.Handler) *Builder {
	b.middleware = append(b.middleware, middleware...)
	return b
}

// WithDefaultHeader adds a header to every request.
func (b *Builder) WithDefaultHeader(name, value string) *Builder {
	b.header.Set(name, value)
	return b
}

// WithRequestLogging logs every request line and status.
func (b *Builder) WithRequestLogging(enabled bool) *Builder {
	b.logRequests = enabled
	return b
}

// WithResponseLogging logs every non-empty response body.
func (b *Builder) WithResponseLogging(enabled bool) *Builder {
	b.logResponses = enabled
	return b
}

// Build returns the client.
func (b *Builder) Build() *Client {
	c := &Client{
		baseURL:      b.baseURL,
		header:       b.header.Clone(),
		logger:       b.logger,
		logRequests:  b.logRequests,
		logResponses: b.logResponses,
	}

	if b.baseURL != "" {
		c.client = b.httpClient
		if c.client == nil {
			c.client = &http.Client{
				Timeout: ptr.Deref(b.timeout, defaultTimeout),
			}
		}

		return c
	}

	handler := b.handler

	if handler == nil && len(b.mounts) > 0 {
		router := chi.NewRouter()

		for _, mount := range b.mounts {
			mount(router)
		}

		handler = router
	}

	for i := len(b.middleware) - 1; i >= 0 && handler != nil; i-- {
		handler = b.middleware[i](handler)
	}

	c.handler = handler

	return c
}

// Client executes requests either in process against a handler, or against
// a remote server.
type Client struct {
	handler      http.Handler
	baseURL      string
	client       *http.Client
	header       http.Header
	logger       logr.Logger
	logRequests  bool
	logResponses bool
}

// Ensure the interface is implemented.
var _ Interface = &Client{}

// generateTraceID creates a new W3C trace ID.
// Every request gets one so that failures can be correlated with server logs.
func generateTraceID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// generateSpanID creates a new W3C span ID.
func generateSpanID() string {
	bytes := make([]byte, 8)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", generateTraceID(), generateSpanID())
}

// ExtractTraceID extracts the trace ID from a traceparent header value.
func ExtractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

func (c *Client) newHTTPRequest(ctx context.Context, request *Request) (*http.Request, string, error) {
	target, err := request.target()
	if err != nil {
		return nil, "", err
	}

	base := c.baseURL
	if base == "" {
		base = inProcessHost
	}

	body, contentType := request.body()

	req, err := http.NewRequestWithContext(ctx, request.Method, base+target, body)
	if err != nil {
		return nil, "", fmt.Errorf("creating request: %w", err)
	}

	for name, values := range c.header {
		req.Header[name] = values
	}

	for name, values := range request.Header {
		req.Header[name] = values
	}

	if contentType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentType)
	}

	for _, cookie := range request.Cookies {
		req.AddCookie(cookie)
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=fluenttest")

	return req, traceParent, nil
}

// Execute implements Interface.
func (c *Client) Execute(ctx context.Context, request *Request) (*Response, error) {
	if c.handler == nil && c.client == nil {
		return nil, ErrUnbound
	}

	req, traceParent, err := c.newHTTPRequest(ctx, request)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	var response *Response

	if c.handler != nil {
		response = c.serve(req)
	} else {
		response, err = c.do(req)
	}

	duration := time.Since(start)

	if err != nil {
		c.logger.Error(err, "http request failed", "method", req.Method, "path", req.URL.Path, "duration", duration, "traceparent", traceParent)
		return nil, err
	}

	response.Request = req
	response.Duration = duration
	response.TraceParent = traceParent

	if c.logRequests {
		c.logger.Info("request", "method", req.Method, "path", req.URL.RequestURI(), "status", response.StatusCode, "duration", duration, "traceparent", traceParent)
	}

	if c.logResponses && len(response.Body) > 0 {
		c.logger.Info("response body", "method", req.Method, "path", req.URL.RequestURI(), "body", string(response.Body))
	}

	return response, nil
}

// serve handles the request in process.
func (c *Client) serve(req *http.Request) *Response {
	// Make the request look like it was received by a server.
	req.RequestURI = req.URL.RequestURI()
	req.RemoteAddr = "192.0.2.1:1234"

	// Server requests always have a body.
	if req.Body == nil {
		req.Body = http.NoBody
	}

	recorder := httptest.NewRecorder()

	c.handler.ServeHTTP(recorder, req)

	result := recorder.Result()
	defer result.Body.Close()

	return &Response{
		StatusCode: result.StatusCode,
		Header:     result.Header,
		Body:       recorder.Body.Bytes(),
	}
}

// do performs the request against a remote server.
func (c *Client) do(req *http.Request) (*Response, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}
