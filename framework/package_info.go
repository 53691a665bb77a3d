// Package framework contains the low-level implementation of test harness infrastructure
// that does not depend on which API is being tested.
//
// The general model is:
//
// 1. The test harness talks to an API over HTTP. It knows the API's base URL and owns the HTTP
// client used for every request; it does not expose any endpoints of its own.
//
// 2. There is a general notion of a test context which is similar to Go's *testing.T,
// allowing pieces of test logic to be associated with a test identifier and to accumulate
// success/failure results, with per-test debug output that is only shown when wanted.
//
// 3. Tests can be selected or excluded with regex filters that follow the same rules as the
// -run and -skip flags of "go test".
//
// The domain-specific code that knows what is being tested is responsible for building the
// requests, and for providing a domain-specific test API on top of the test context.
package framework
