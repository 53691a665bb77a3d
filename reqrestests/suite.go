package reqrestests

import (
	"github.com/reqres-contract-tests/reqres-contract-tests/fixtures"
	"github.com/reqres-contract-tests/reqres-contract-tests/framework"
)

// RunTestSuite runs every contract test against the API that the harness points to. If store is
// nil, the built-in fixtures are used.
func RunTestSuite(
	harness *framework.TestHarness,
	store *fixtures.Store,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	if store == nil {
		store = fixtures.DefaultStore()
	}
	env := &environment{
		harness:  harness,
		fixtures: store,
		codec:    fixtures.NewExposeCodec(),
	}
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		t := newTestScope(c, env)

		t.Run("users", DoUserTests)
		t.Run("auth", DoAuthTests)
		t.Run("resources", DoResourceTests)
	})
}
