package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassString(t *testing.T) {
	assert.Equal(t, "transient", ErrorTransient.String())
	assert.Equal(t, "invalid", ErrorInvalid.String())
	assert.Equal(t, "fatal", ErrorFatal.String())
	assert.Equal(t, "unknown", ErrorClass(99).String())
}

func TestWrap(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "Buffer", "Put", "insert")

	require.Error(t, err)
	assert.Equal(t, "Buffer.Put: insert failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))

	assert.NoError(t, Wrap(nil, "Buffer", "Put", "insert"))
}

func TestWrapFatalClassification(t *testing.T) {
	err := WrapFatal(ErrResourceExhausted, "Pipeline", "New", "buffer allocation")

	require.Error(t, err)
	assert.True(t, IsFatal(err))
	assert.False(t, IsInvalid(err))
	assert.Equal(t, ErrorFatal, Classify(err))

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.Equal(t, "Pipeline", ce.Component)
	assert.Equal(t, "New", ce.Operation)
	assert.True(t, stderrors.Is(err, ErrResourceExhausted))
}

func TestWrapInvalidClassification(t *testing.T) {
	err := WrapInvalid(ErrInvalidCapacity, "Buffer", "New", "capacity check")

	assert.True(t, IsInvalid(err))
	assert.False(t, IsFatal(err))
	assert.Equal(t, ErrorInvalid, Classify(err))
}

func TestWrapTransientClassification(t *testing.T) {
	err := WrapTransient(stderrors.New("registry busy"), "Metrics", "Register", "counter registration")

	assert.True(t, IsTransient(err))
	assert.Equal(t, ErrorTransient, Classify(err))
}

func TestIsTransientHeuristics(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		transient bool
	}{
		{"nil", nil, false},
		{"context deadline", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"timeout message", fmt.Errorf("operation timeout"), true},
		{"plain error", stderrors.New("boom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.transient, IsTransient(tc.err))
		})
	}
}

func TestIsFatalSentinels(t *testing.T) {
	assert.True(t, IsFatal(ErrInvalidConfig))
	assert.True(t, IsFatal(ErrMissingConfig))
	assert.True(t, IsFatal(ErrResourceExhausted))
	assert.False(t, IsFatal(ErrBufferClosed))
	assert.False(t, IsFatal(nil))
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	base := stderrors.New("root cause")
	err := WrapFatal(base, "Gate", "acquire", "wait")

	var ce *ClassifiedError
	require.True(t, stderrors.As(err, &ce))
	assert.True(t, stderrors.Is(ce.Unwrap(), base))
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, ErrorTransient, Classify(nil))
}
