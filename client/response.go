package client

import (
	"fmt"
	"net/http"
	"time"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Response is a fully read HTTP response from the API.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	Elapsed    time.Duration
}

// JSON parses the response body. An empty body, or one that is not valid JSON, is returned as
// a JSON null; use IsJSON to tell those cases apart from a literal null.
func (r *Response) JSON() ldvalue.Value {
	if r == nil || len(r.Body) == 0 {
		return ldvalue.Null()
	}
	return ldvalue.Parse(r.Body)
}

// IsJSON returns true if the body is well-formed JSON.
func (r *Response) IsJSON() bool {
	if r == nil || len(r.Body) == 0 {
		return false
	}
	return isValidJSON(r.Body)
}

// Path looks up a value in the JSON body. See ParsePath for the syntax. The second return value
// is false if any part of the path does not exist; a property that exists with a null value
// is found.
func (r *Response) Path(path string) (ldvalue.Value, bool, error) {
	p, err := ParsePath(path)
	if err != nil {
		return ldvalue.Null(), false, err
	}
	value, found := p.Lookup(r.JSON())
	return value, found, nil
}

func (r *Response) String() string {
	if r == nil {
		return "<no response>"
	}
	return fmt.Sprintf("HTTP %d: %s", r.StatusCode, string(r.Body))
}
