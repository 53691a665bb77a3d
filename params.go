package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/reqres-contract-tests/reqres-contract-tests/framework"

	"github.com/alessio/shellescape"
)

const (
	defaultBaseURL = "https://reqres.in"
	defaultTimeout = time.Second * 30

	// apiKeyPlaceholder stands in for the real key in printed commands.
	apiKeyPlaceholder = "<api-key>"
)

type commandParams struct {
	baseURL     string
	filters     framework.RegexFilters
	fixturesDir string
	timeout     time.Duration
	apiKey      string
	noProbe     bool
	debug       bool
	debugAll    bool
}

func (c *commandParams) Read(args []string) bool {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.StringVar(&c.baseURL, "url", defaultBaseURL, "base URL of the API under test")
	fs.Var(&c.filters.MustMatch, "run", "regex pattern(s) to select tests to run")
	fs.Var(&c.filters.MustNotMatch, "skip", "regex pattern(s) to select tests not to run")
	fs.StringVar(&c.fixturesDir, "fixtures", "", "directory to read response fixtures from, instead of the built-in ones")
	fs.DurationVar(&c.timeout, "timeout", defaultTimeout, "time limit for each HTTP request")
	fs.StringVar(&c.apiKey, "api-key", "", "value of the x-api-key header to send with every request")
	fs.BoolVar(&c.noProbe, "no-probe", false, "do not check that the API is reachable before running tests")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed tests")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all tests")

	if err := fs.Parse(args[1:]); err != nil {
		return false
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return false
	}
	if c.baseURL == "" {
		fmt.Fprintln(os.Stderr, "-url must not be empty")
		fs.Usage()
		return false
	}
	if c.timeout <= 0 {
		fmt.Fprintln(os.Stderr, "-timeout must be positive")
		fs.Usage()
		return false
	}
	return true
}

// rerunCommand returns a shell command that runs only the specified tests with the same
// settings as this run. The API key itself is never printed.
func (c *commandParams) rerunCommand(program string, tests []framework.TestID) string {
	var b commandBuilder
	b.add(program)
	if c.baseURL != defaultBaseURL {
		b.add("-url", c.baseURL)
	}
	if c.fixturesDir != "" {
		b.add("-fixtures", c.fixturesDir)
	}
	if c.timeout != defaultTimeout {
		b.add("-timeout", c.timeout.String())
	}
	if c.apiKey != "" {
		b.add("-api-key", apiKeyPlaceholder)
	}
	if c.noProbe {
		b.add("-no-probe")
	}
	for _, id := range tests {
		b.add("-run", exactPattern(id))
	}
	return b.String()
}

func exactPattern(id framework.TestID) string {
	elements := make([]string, 0, len(id.Path))
	for _, name := range id.Path {
		elements = append(elements, "^"+regexp.QuoteMeta(name)+"$")
	}
	return strings.Join(elements, "/")
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}
