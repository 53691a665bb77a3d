package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/reqres-contract-tests/reqres-contract-tests/fixtures"
	"github.com/reqres-contract-tests/reqres-contract-tests/framework"
	"github.com/reqres-contract-tests/reqres-contract-tests/reqrestests"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	var params commandParams
	if !params.Read(args) {
		return 1
	}

	mainDebugLogger := framework.NullLogger()
	if params.debugAll {
		mainDebugLogger = log.New(os.Stdout, "", log.LstdFlags)
	}

	headers := make(http.Header)
	if params.apiKey != "" {
		headers.Set("x-api-key", params.apiKey)
	}

	harness, err := framework.NewTestHarness(
		params.baseURL,
		framework.HarnessOptions{
			RequestTimeout: params.timeout,
			Headers:        headers,
			SkipProbe:      params.noProbe,
		},
		mainDebugLogger,
		os.Stdout,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "API error: %s\n", err)
		return 1
	}

	store := fixtures.DefaultStore()
	if params.fixturesDir != "" {
		if store, err = fixtures.NewDirStore(params.fixturesDir); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid parameters: %s\n", err)
			return 1
		}
	}

	fmt.Println()
	framework.PrintFilterDescription(os.Stdout, params.filters)

	fmt.Println("Running test suite")

	testLogger := &ConsoleTestLogger{
		Out:                  os.Stdout,
		DebugOutputOnFailure: params.debug || params.debugAll,
		DebugOutputOnSuccess: params.debugAll,
	}

	results := reqrestests.RunTestSuite(harness, store, params.filters.AsFilter, testLogger)

	fmt.Println()
	framework.PrintResults(os.Stdout, results)
	if results.OK() {
		return 0
	}

	var failed []framework.TestID
	for _, f := range results.Failures {
		if !f.Group {
			failed = append(failed, f.TestID)
		}
	}
	if len(failed) > 0 {
		fmt.Println()
		fmt.Println("To run only the failed tests again:")
		fmt.Printf("  %s\n", params.rerunCommand(args[0], failed))
	}
	return 1
}
