package obs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestTimeLogsOutcome(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	ctx := WithLogger(context.Background(), zap.New(core))
	ctx = context.WithValue(ctx, RequestIDKey, "abc")

	func() {
		var err error
		defer Time(ctx, "ok.op")(&err)
	}()
	func() {
		err := errors.New("boom")
		defer Time(ctx, "bad.op")(&err)
	}()

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "operation done", entries[0].Message)
		assert.Equal(t, "ok.op", entries[0].ContextMap()["op"])
		assert.Equal(t, "abc", entries[0].ContextMap()["req_id"])
		assert.Equal(t, "operation failed", entries[1].Message)
		assert.Equal(t, "boom", entries[1].ContextMap()["error"])
	}
}

func TestLoggerDefaultsToNop(t *testing.T) {
	assert.NotNil(t, Logger(context.Background()))
	assert.Equal(t, "", RequestID(context.Background()))
}
