// Package reqrestests contains the contract tests for the reqres.in demo API and their
// supporting test API.
//
// Test harness infrastructure that does not depend on this particular API, such as the test
// context, filtering, and result reporting, is in the lower-level framework package. Requests
// are sent with the client package, and expected response snapshots come from the fixtures
// package.
package reqrestests
