package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	messages []string
	fields   []map[string]interface{}
}

func (r *recordingLogger) Error(msg string, fields map[string]interface{}) {
	r.messages = append(r.messages, msg)
	r.fields = append(r.fields, fields)
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")

	tests := []struct {
		name     string
		err      *StandardError
		code     ErrorCode
		category string
		status   int
	}{
		{"transport", NewTransportError("fetch_snapshot", cause), ErrCodeTransportFailure, "TRANSPORT", 0},
		{"status", NewUnexpectedStatusError("fetch_snapshot", 503, " busy \n"), ErrCodeUnexpectedStatus, "SERVER", 503},
		{"malformed", NewMalformedResponseError("create_post", cause), ErrCodeMalformedResponse, "PAYLOAD", 0},
		{"auth", NewNotAuthenticatedError("no session"), ErrCodeNotAuthenticated, "AUTH", 0},
		{"input", NewInvalidInputError("content", "empty"), ErrCodeInvalidInput, "VALIDATION", 0},
		{"generation", NewGenerationFailedError("post", cause), ErrCodeGenerationFailed, "AI", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.category, GetErrorCategory(tt.err.Code))
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.False(t, tt.err.Retryable)
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestUnexpectedStatusMessage(t *testing.T) {
	err := NewUnexpectedStatusError("fetch_snapshot", 500, "  oops ")
	assert.Equal(t, "Server responded with 500.", err.Message)
	assert.Equal(t, "oops", err.Details)
	assert.Contains(t, err.Error(), "fetch_snapshot")
}

func TestAsStandard_ThroughWrapping(t *testing.T) {
	base := NewUnexpectedStatusError("update_profile", 422, "")
	wrapped := fmt.Errorf("update profile: %w", base)

	stdErr, ok := AsStandard(wrapped)
	require.True(t, ok)
	assert.Same(t, base, stdErr)
	assert.True(t, HasCode(wrapped, ErrCodeUnexpectedStatus))
	assert.False(t, HasCode(wrapped, ErrCodeTransportFailure))
	assert.Equal(t, 422, StatusCodeOf(wrapped))
	assert.Equal(t, 0, StatusCodeOf(stderrors.New("plain")))
}

func TestUnwrapKeepsCause(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := NewMalformedResponseError("fetch_snapshot", cause)
	assert.True(t, stderrors.Is(err, cause))
}

func TestNormalize(t *testing.T) {
	assert.Nil(t, Normalize(nil))

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
	assert.Equal(t, "OTHER", GetErrorCategory(plain.Code))

	std := NewTransportError("status", stderrors.New("x"))
	assert.Same(t, std, Normalize(std))
}

func TestErrorHandler_Handle(t *testing.T) {
	rec := &recordingLogger{}
	h := NewErrorHandler(rec)

	assert.Nil(t, h.Handle("noop", nil))
	assert.Empty(t, rec.messages)

	got := h.Handle("add_post", NewUnexpectedStatusError("create_post", 500, ""))
	require.NotNil(t, got)
	require.Len(t, rec.fields, 1)
	assert.Equal(t, "add_post", rec.fields[0]["operation"])
	assert.Equal(t, "UNEXPECTED_STATUS", rec.fields[0]["errorCode"])
	assert.Equal(t, 500, rec.fields[0]["statusCode"])
	assert.Equal(t, "SERVER", rec.fields[0]["errorCategory"])
}
