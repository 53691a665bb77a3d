package framework

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCapturingLoggerKeepsMessagesInOrder(t *testing.T) {
	var l CapturingLogger
	l.Printf("one %d", 1)
	l.Printf("two")

	out := l.Output()
	assert.Len(t, out, 2)
	assert.Equal(t, "one 1", out[0].Message)
	assert.Equal(t, "two", out[1].Message)

	l.Printf("three")
	assert.Len(t, out, 2, "earlier snapshot should not change")
}

func TestDumpIndentsContinuationLines(t *testing.T) {
	when := time.Date(2024, 1, 2, 3, 4, 5, 6000000, time.UTC)
	output := CapturedOutput{
		{Time: when, Message: "Request: POST /api/users\n{\"name\":\"morpheus\"}\n"},
		{Time: when, Message: "done"},
	}
	var buf bytes.Buffer
	output.Dump(&buf, "DEBUG ")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"DEBUG [2024-01-02 03:04:05.006] Request: POST /api/users",
		`DEBUG     {"name":"morpheus"}`,
		"DEBUG [2024-01-02 03:04:05.006] done",
	}, lines)
}

func TestNullLoggerDiscardsOutput(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Printf("anything %s", "at all") })
}
