package reqrestests

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/reqres-contract-tests/reqres-contract-tests/client"
	"github.com/reqres-contract-tests/reqres-contract-tests/fixtures"
	"github.com/reqres-contract-tests/reqres-contract-tests/framework"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

type environment struct {
	harness  *framework.TestHarness
	fixtures *fixtures.Store
	codec    *fixtures.Codec
}

// T represents a test or subtest in the reqres contract test suite.
//
// It implements the same basic functionality as Go's testing.T, but in an environment that is outside
// of the Go test runner, and with some extra features such as debug logging that are convenient for
// our use case. Those features are provided by our lower-level framework package.
//
// Every T has its own API client, whose requests and responses go to the test's debug log.
//
// To make test assertions, you can use the assert and require packages, passing the *T as if it were
// a *testing.T. There are also assertion methods on T for the things that almost every test checks,
// such as the status code and individual JSON properties; methods whose names start with Require
// stop the test on failure, and methods that start with Assert let it continue.
type T struct {
	context *framework.Context
	env     *environment
	client  *client.Client
}

func newTestScope(c *framework.Context, env *environment) *T {
	h := env.harness
	return &T{
		context: c,
		env:     env,
		client:  client.New(h.BaseURL(), h.HTTPClient(), h.DefaultHeaders(), c.DebugLogger()),
	}
}

// Errorf is called by assertions to log a test failure. It does not cause an immediate exit.
func (t *T) Errorf(format string, args ...interface{}) {
	t.context.Errorf(format, args...)
}

// FailNow is called by assertions when a test should fail and immediately exit. The methods in
// the require package call FailNow.
func (t *T) FailNow() {
	t.context.FailNow()
}

// Run runs a subtest. This is equivalent to the Run method of testing.T.
func (t *T) Run(name string, action func(*T)) {
	t.context.Run(name, func(c *framework.Context) {
		action(newTestScope(c, t.env))
	})
}

// Debug logs some debug output for the test. The output will be passed to the test logger at
// the end of the test.
func (t *T) Debug(format string, args ...interface{}) {
	t.context.Debug(format, args...)
}

// Send issues a request. A transport error fails the test immediately.
func (t *T) Send(req client.Request) *client.Response {
	return t.requireResponse(t.client.Do(context.Background(), req))
}

func (t *T) requireResponse(resp *client.Response, err error) *client.Response {
	require.NoError(t, err, "request to the API failed")
	return resp
}

func (t *T) Get(path string) *client.Response {
	return t.Send(client.Request{Method: http.MethodGet, Path: path, ContentType: "application/json"})
}

func (t *T) Post(path string, body interface{}) *client.Response {
	return t.requireResponse(t.client.Post(context.Background(), path, body))
}

// PostRaw sends a hand-written JSON body exactly as given.
func (t *T) PostRaw(path string, rawJSON string) *client.Response {
	return t.Send(client.Request{Method: http.MethodPost, Path: path, RawBody: []byte(rawJSON)})
}

func (t *T) Put(path string, body interface{}) *client.Response {
	return t.requireResponse(t.client.Put(context.Background(), path, body))
}

func (t *T) Patch(path string, body interface{}) *client.Response {
	return t.requireResponse(t.client.Patch(context.Background(), path, body))
}

func (t *T) Delete(path string) *client.Response {
	return t.requireResponse(t.client.Delete(context.Background(), path))
}

// RequireStatus stops the test unless the response has the expected status code.
func (t *T) RequireStatus(resp *client.Response, expected int) {
	require.Equal(t, expected, resp.StatusCode, "unexpected HTTP status; response body was: %s", string(resp.Body))
}

// RequireJSONBody stops the test unless the response body is well-formed JSON.
func (t *T) RequireJSONBody(resp *client.Response) ldvalue.Value {
	if !resp.IsJSON() {
		require.Fail(t, "response body is not JSON", "body was: %q", string(resp.Body))
	}
	return resp.JSON()
}

func (t *T) lookup(resp *client.Response, path string) (ldvalue.Value, bool) {
	p, err := client.ParsePath(path)
	require.NoError(t, err)
	doc := t.RequireJSONBody(resp)
	value, found := p.Lookup(doc)
	if !found {
		assert.Fail(t, fmt.Sprintf("JSON property %q not found in response", p), "body was: %s", doc.JSONString())
	}
	return value, found
}

// AssertField checks that the JSON property at the given path has exactly the expected value.
// Numbers are compared by value, so 4 and 4.0 are equal.
func (t *T) AssertField(resp *client.Response, path string, expected interface{}) bool {
	actual, found := t.lookup(resp, path)
	if !found {
		return false
	}
	expectedValue, err := toValue(expected)
	require.NoError(t, err)
	if actual.Equal(expectedValue) {
		return true
	}
	return assert.JSONEq(t, expectedValue.JSONString(), actual.JSONString(),
		"unexpected value for JSON property %q", path)
}

// AssertFieldNotNull checks that the JSON property at the given path exists and is not null.
func (t *T) AssertFieldNotNull(resp *client.Response, path string) bool {
	actual, found := t.lookup(resp, path)
	if !found {
		return false
	}
	if actual.IsNull() {
		return assert.Fail(t, fmt.Sprintf("JSON property %q should not be null", path))
	}
	return true
}

// AssertFieldObject checks that the JSON property at the given path is an object with exactly
// the expected properties and values.
func (t *T) AssertFieldObject(resp *client.Response, path string, expected map[string]interface{}) bool {
	actual, found := t.lookup(resp, path)
	if !found {
		return false
	}
	if actual.Type() != ldvalue.ObjectType {
		return assert.Fail(t, fmt.Sprintf("JSON property %q should be an object", path), "actual: %s", actual.JSONString())
	}
	return t.AssertField(resp, path, expected)
}

// AssertBodyMatchesFixture checks that every top-level property of the named fixture has the
// same value in the response body. Properties of the response that the fixture does not
// mention are ignored.
func (t *T) AssertBodyMatchesFixture(resp *client.Response, fixtureName string) bool {
	t.RequireJSONBody(resp)
	snapshot, err := t.env.fixtures.LoadJSON(fixtureName)
	require.NoError(t, err)
	data, err := t.env.fixtures.Load(fixtureName)
	require.NoError(t, err)

	codec := fixtures.NewAllowListCodec(snapshot.Keys()...)
	var expected, actual map[string]interface{}
	require.NoError(t, codec.Unmarshal(data, &expected))
	require.NoError(t, codec.Unmarshal(resp.Body, &actual))
	return assert.Equal(t, expected, actual, "response body does not match fixture %q", fixtureName)
}

// RequireFixture decodes the named fixture into v, using only the fields of v that are tagged
// with expose.
func (t *T) RequireFixture(fixtureName string, v interface{}) {
	require.NoError(t, t.env.fixtures.Decode(fixtureName, t.env.codec, v))
}

// RequireDecodedBody decodes the response body into v, using only the fields of v that are
// tagged with expose.
func (t *T) RequireDecodedBody(resp *client.Response, v interface{}) {
	t.RequireJSONBody(resp)
	require.NoError(t, t.env.codec.Unmarshal(resp.Body, v), "could not decode response body")
}

func toValue(v interface{}) (ldvalue.Value, error) {
	if value, ok := v.(ldvalue.Value); ok {
		return value, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("expected value could not be converted to JSON: %w", err)
	}
	return ldvalue.Parse(data), nil
}
