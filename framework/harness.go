package framework

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = time.Second * 30

// HarnessOptions controls how the harness talks to the API under test.
type HarnessOptions struct {
	// RequestTimeout is the overall time limit for each HTTP request. Zero means 30 seconds.
	RequestTimeout time.Duration

	// Headers are added to every request sent to the API, for instance an API key.
	Headers http.Header

	// SkipProbe disables the initial request that checks whether the API is reachable.
	SkipProbe bool

	// Transport replaces the default HTTP transport; tests use it to stub the network.
	Transport http.RoundTripper
}

// TestHarness holds the state that is shared by every test in a run: where the API under test
// lives and the HTTP client used to reach it.
type TestHarness struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	logger     Logger
}

// NewTestHarness creates a TestHarness for the API at baseURL. Unless opts.SkipProbe is set, it
// sends a single GET request to the base URL and fails if no HTTP response comes back; the
// status code of that response does not matter.
func NewTestHarness(
	baseURL string,
	opts HarnessOptions,
	debugLogger Logger,
	startupOutput io.Writer,
) (*TestHarness, error) {
	if debugLogger == nil {
		debugLogger = NullLogger()
	}
	if startupOutput == nil {
		startupOutput = io.Discard
	}
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	h := &TestHarness{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		headers:    opts.Headers.Clone(),
		httpClient: &http.Client{Timeout: timeout, Transport: opts.Transport},
		logger:     debugLogger,
	}

	if !opts.SkipProbe {
		if err := h.probe(startupOutput); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// BaseURL returns the base URL of the API under test, without a trailing slash.
func (h *TestHarness) BaseURL() string {
	return h.baseURL
}

// HTTPClient returns the client that tests should use for all requests.
func (h *TestHarness) HTTPClient() *http.Client {
	return h.httpClient
}

// DefaultHeaders returns a copy of the headers to send with every request.
func (h *TestHarness) DefaultHeaders() http.Header {
	return h.headers.Clone()
}

func (h *TestHarness) probe(output io.Writer) error {
	fmt.Fprintf(output, "Connecting to API at %s\n", h.baseURL)
	req, err := http.NewRequest(http.MethodGet, h.baseURL, nil)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", h.baseURL, err)
	}
	for name, values := range h.headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}
	started := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach API at %s: %w", h.baseURL, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	h.logger.Printf("Probe of %s returned HTTP %d in %s", h.baseURL, resp.StatusCode, time.Since(started))
	fmt.Fprintf(output, "API responded with status %d\n", resp.StatusCode)
	return nil
}
