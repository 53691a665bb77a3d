package framework

// TestLogger receives notifications about test progress, typically to write them to the console.
type TestLogger interface {
	// TestStarted is called before the filter is checked, so it is followed by either
	// TestSkipped or TestFinished.
	TestStarted(id TestID)

	// TestError is called for each failure as soon as it is recorded.
	TestError(id TestID, err error)

	// TestFinished receives whatever the test wrote to its debug logger.
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)

	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (nullTestLogger) TestStarted(TestID)                        {}
func (nullTestLogger) TestError(TestID, error)                   {}
func (nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (nullTestLogger) TestSkipped(TestID, string)                {}
