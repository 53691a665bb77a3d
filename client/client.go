package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const contentTypeJSON = "application/json"

// Logger receives a description of every request and response. *log.Logger and the framework's
// CapturingLogger both satisfy it.
type Logger interface {
	Printf(message string, args ...interface{})
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...interface{}) {}

// Client sends requests to the API under test. Each request is sent exactly once; a transport
// error is returned to the caller as-is.
type Client struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	logger     Logger
}

// Request describes a single HTTP request to the API.
type Request struct {
	Method string

	// Path is appended to the client's base URL. It may contain a query string.
	Path string

	// Query parameters are added to any query string already in Path.
	Query url.Values

	// Headers are added to the client's default headers, replacing any default of the same name.
	Headers http.Header

	// Body, if not nil, is marshaled to JSON.
	Body interface{}

	// RawBody, if not nil, is sent exactly as given. It takes precedence over Body.
	RawBody []byte

	// ContentType defaults to application/json if there is a body. It can also be set for a
	// request without a body.
	ContentType string
}

// New creates a Client. If httpClient is nil, http.DefaultClient is used.
func New(baseURL string, httpClient *http.Client, defaultHeaders http.Header, logger Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = nullLogger{}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		headers:    defaultHeaders,
		logger:     logger,
	}
}

// BaseURL returns the URL that request paths are relative to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// URL returns the absolute URL that a request will be sent to.
func (c *Client) URL(r Request) (string, error) {
	path := r.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if len(r.Query) != 0 {
		q := u.Query()
		for name, values := range r.Query {
			for _, v := range values {
				q.Add(name, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// Do sends the request and reads the whole response body.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	target, err := c.URL(r)
	if err != nil {
		return nil, err
	}

	body, err := requestBody(r)
	if err != nil {
		return nil, err
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, err
	}
	for name, values := range c.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	// A header set on the request replaces the default of the same name.
	for name, values := range r.Headers {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	if contentType := r.ContentType; contentType != "" {
		req.Header.Set("Content-Type", contentType)
	} else if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", contentTypeJSON)
	}

	if body == nil {
		c.logger.Printf("Request: %s %s", method, target)
	} else {
		c.logger.Printf("Request: %s %s\n%s", method, target, string(body))
	}

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("Request failed: %s", err)
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body from %s %s: %w", method, target, err)
	}
	elapsed := time.Since(started)

	if len(data) == 0 {
		c.logger.Printf("Response: HTTP %d (%s), no body", resp.StatusCode, elapsed)
	} else {
		c.logger.Printf("Response: HTTP %d (%s)\n%s", resp.StatusCode, elapsed, string(data))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
		Elapsed:    elapsed,
	}, nil
}

func requestBody(r Request) ([]byte, error) {
	if r.RawBody != nil {
		return r.RawBody, nil
	}
	if r.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("request body could not be serialized: %w", err)
	}
	return data, nil
}

// Get, Post, Put, Patch, and Delete are shortcuts for Do with the corresponding method.

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodDelete, Path: path})
}
