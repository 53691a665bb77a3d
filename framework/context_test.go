package framework

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	events []string
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.events = append(r.events, "started "+id.String())
}

func (r *recordingTestLogger) TestError(id TestID, err error) {
	r.events = append(r.events, "error "+id.String())
}

func (r *recordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	if failed {
		r.events = append(r.events, "failed "+id.String())
	} else {
		r.events = append(r.events, "passed "+id.String())
	}
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.events = append(r.events, "skipped "+id.String()+" "+reason)
}

func findResult(t *testing.T, results Results, id string) TestResult {
	for _, r := range results.Tests {
		if r.TestID.String() == id {
			return r
		}
	}
	require.Fail(t, "no result for test", id)
	return TestResult{}
}

func TestPassingTests(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {})
		c.Run("b", func(c *Context) {})
	})
	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 2)
	passed, failed, skipped := results.Counts()
	assert.Equal(t, 2, passed)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 0, skipped)
}

func TestErrorfRecordsFailureAndContinues(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Errorf("first problem: %d", 1)
			c.Errorf("second problem")
			reachedEnd = true
		})
	})
	assert.True(t, reachedEnd)
	require.Len(t, results.Failures, 1)
	f := results.Failures[0]
	assert.Equal(t, "a", f.TestID.String())
	require.Len(t, f.Errors, 2)
	assert.Equal(t, "first problem: 1", f.Errors[0].Error())
}

func TestFailNowStopsTest(t *testing.T) {
	reachedEnd := false
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Errorf("problem")
			c.FailNow()
			reachedEnd = true
		})
		c.Run("b", func(c *Context) {})
	})
	assert.False(t, reachedEnd)
	require.Len(t, results.Failures, 1)
	assert.Len(t, results.Failures[0].Errors, 1)
	assert.Empty(t, findResult(t, results, "b").Errors)
}

func TestFailNowWithoutMessage(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.FailNow()
		})
	})
	require.Len(t, results.Failures, 1)
	require.Len(t, results.Failures[0].Errors, 1)
	assert.Equal(t, "test failed with no failure message", results.Failures[0].Errors[0].Error())
}

func TestPanicIsRecoveredAsFailure(t *testing.T) {
	results := Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			panic(errors.New("boom"))
		})
		c.Run("b", func(c *Context) {})
	})
	require.Len(t, results.Failures, 1)
	assert.Contains(t, results.Failures[0].Errors[0].Error(), "unexpected panic in test: boom")
	assert.Empty(t, findResult(t, results, "b").Errors)
}

func TestSkip(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.SkipWithReason("not today")
			c.Errorf("should not get here")
		})
	})
	assert.True(t, results.OK())
	r := findResult(t, results, "a")
	assert.True(t, r.Skipped)
	assert.Equal(t, "not today", r.SkipReason)
	assert.Equal(t, []string{"started a", "skipped a not today"}, logger.events)
}

func TestSubtestIDsAndGroups(t *testing.T) {
	logger := &recordingTestLogger{}
	results := Run(nil, logger, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("x", func(c *Context) {
				assert.Equal(t, []string{"group", "x"}, c.ID().Path)
			})
			c.Run("y", func(c *Context) {
				c.Errorf("bad")
			})
		})
	})
	assert.Equal(t, []string{
		"started group",
		"started group/x",
		"passed group/x",
		"started group/y",
		"error group/y",
		"failed group/y",
		"passed group",
	}, logger.events)

	assert.True(t, findResult(t, results, "group").Group)
	require.Len(t, results.Failures, 1)
	assert.Equal(t, "group/y", results.Failures[0].TestID.String())
	passed, failed, _ := results.Counts()
	assert.Equal(t, 1, passed)
	assert.Equal(t, 1, failed)
}

func TestFilterExcludesTests(t *testing.T) {
	var ran []string
	var filters RegexFilters
	require.NoError(t, filters.MustNotMatch.Set("group/y"))

	results := Run(filters.AsFilter, nil, func(c *Context) {
		c.Run("group", func(c *Context) {
			c.Run("x", func(c *Context) { ran = append(ran, "x") })
			c.Run("y", func(c *Context) { ran = append(ran, "y") })
		})
	})
	assert.Equal(t, []string{"x"}, ran)
	r := findResult(t, results, "group/y")
	assert.True(t, r.Skipped)
	assert.Equal(t, "excluded by filter parameters", r.SkipReason)
}

func TestDeferredFunctionsRunInReverseOrderAfterFailure(t *testing.T) {
	var order []string
	Run(nil, nil, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Defer(func() { order = append(order, "first") })
			c.Defer(func() { order = append(order, "second") })
			c.FailNow()
		})
	})
	assert.Equal(t, []string{"second", "first"}, order)
}

func TestDebugOutputIsPassedToLogger(t *testing.T) {
	var captured CapturedOutput
	logger := &capturingOutputLogger{onFinished: func(out CapturedOutput) { captured = out }}
	Run(nil, logger, func(c *Context) {
		c.Run("a", func(c *Context) {
			c.Debug("hello %s", "world")
			c.DebugLogger().Printf("second")
		})
	})
	require.Len(t, captured, 2)
	assert.Equal(t, "hello world", captured[0].Message)
	assert.Equal(t, "second", captured[1].Message)
}

type capturingOutputLogger struct {
	recordingTestLogger
	onFinished func(CapturedOutput)
}

func (c *capturingOutputLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	c.onFinished(debugOutput)
}

func TestTestIDPlusDoesNotShareStorage(t *testing.T) {
	parent := TestID{Path: make([]string, 1, 10)}
	parent.Path[0] = "p"
	a := parent.Plus("a")
	b := parent.Plus("b")
	assert.Equal(t, "p/a", a.String())
	assert.Equal(t, "p/b", b.String())
	assert.False(t, strings.Contains(a.String(), "b"))
}
