// Package client sends requests to the API under test and gives access to the responses.
//
// It is deliberately thin: it does not retry, follow any protocol beyond plain HTTP, or decide
// whether a response is correct. Response bodies can be inspected as JSON documents with
// simple path expressions (see JSONPath); the assertions themselves live in the test suite.
package client
