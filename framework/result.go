package framework

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

type Results struct {
	Tests    []TestResult
	Failures []TestResult
}

type TestResult struct {
	TestID     TestID
	Errors     []error
	Skipped    bool
	SkipReason string
	Duration   time.Duration

	// Group is true if this entry only contained subtests. Groups are listed in Tests so that
	// their own failures (such as a panic outside of any subtest) are not lost, but they are
	// not counted as tests.
	Group bool
}

func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Counts returns the number of tests that passed, failed, and were skipped, not counting
// groups. A group excluded by the filter never runs, so its subtests are unknown and it is
// counted as a single skipped entry.
func (r Results) Counts() (passed, failed, skipped int) {
	for _, t := range r.Tests {
		switch {
		case t.Group && len(t.Errors) == 0:
			continue
		case t.Skipped:
			skipped++
		case len(t.Errors) != 0:
			failed++
		default:
			passed++
		}
	}
	return
}

type TestID struct {
	Path []string
}

// Plus returns a new TestID for a subtest of this one.
func (t TestID) Plus(name string) TestID {
	path := make([]string, 0, len(t.Path)+1)
	return TestID{Path: append(append(path, t.Path...), name)}
}

func (t TestID) String() string {
	return strings.Join(t.Path, "/")
}

// PrintResults writes a summary of the test run: a count of passed, failed, and skipped tests
// followed by the errors of each failed test.
func PrintResults(out io.Writer, results Results) {
	passed, failed, skipped := results.Counts()
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if results.OK() {
		fmt.Fprintln(out, color.GreenString("All tests passed")+" ("+summary+")")
		return
	}
	fmt.Fprintln(out, color.RedString("FAILED TESTS")+" ("+summary+"):")
	for _, f := range results.Failures {
		fmt.Fprintf(out, "  * %s\n", f.TestID)
		for _, err := range f.Errors {
			for _, line := range strings.Split(err.Error(), "\n") {
				fmt.Fprintf(out, "      %s\n", line)
			}
		}
	}
}
