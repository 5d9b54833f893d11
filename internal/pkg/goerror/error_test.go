package goerror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{name: "invalid format", code: CodeInvalidFormat, want: http.StatusBadRequest},
		{name: "bad request", code: CodeBadRequest, want: http.StatusBadRequest},
		{name: "invalid input", code: CodeInvalidInput, want: http.StatusUnprocessableEntity},
		{name: "not found", code: CodeNotFound, want: http.StatusNotFound},
		{name: "conflict", code: CodeConflict, want: http.StatusConflict},
		{name: "unauthorized", code: CodeUnauthorized, want: http.StatusUnauthorized},
		{name: "forbidden", code: CodeForbidden, want: http.StatusForbidden},
		{name: "too many", code: CodeTooManyRequest, want: http.StatusTooManyRequests},
		{name: "timeout", code: CodeTimeout, want: http.StatusRequestTimeout},
		{name: "internal", code: CodeInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{code: tt.code}
			assert.Equal(t, tt.want, e.StatusCode())
		})
	}
}

func TestNewBusinessReason(t *testing.T) {
	const reason Reason = "INVALID_CODE"

	err := NewBusinessReason(reason, "Invalid OTP", CodeBadRequest)

	var gerr *Error
	assert.True(t, errors.As(err, &gerr))
	assert.Equal(t, reason, gerr.Reason())
	assert.Equal(t, "Invalid OTP", gerr.Msg())
	assert.Equal(t, TypeBusiness, gerr.Type())
	assert.Equal(t, http.StatusBadRequest, gerr.StatusCode())
	assert.ErrorIs(t, err, reason)
	assert.NotErrorIs(t, err, Reason("EXPIRED"))
}

func TestNewServer(t *testing.T) {
	cause := errors.New("db down")
	err := NewServer(cause)

	var gerr *Error
	assert.True(t, errors.As(err, &gerr))
	assert.Equal(t, "Internal server error", gerr.Msg())
	assert.Equal(t, TypeServer, gerr.Type())
	assert.ErrorIs(t, err, cause)
	assert.Empty(t, gerr.Reason())
}

func TestNewInvalidInput(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInvalidInput(errors.New("bad"))
		var gerr *Error
		assert.True(t, errors.As(err, &gerr))
		assert.Equal(t, CodeInvalidInput, gerr.Code())
	})

	t.Run("with key values", func(t *testing.T) {
		err := NewInvalidInput(nil, "email", "email is required")
		var gerr *Error
		assert.True(t, errors.As(err, &gerr))
		assert.Equal(t, map[string]string{"email": "email is required"}, gerr.Fields())
	})

	t.Run("odd key values", func(t *testing.T) {
		err := NewInvalidInput(nil, "email")
		var gerr *Error
		assert.True(t, errors.As(err, &gerr))
		assert.Equal(t, CodeInvalidFormat, gerr.Code())
	})
}

func TestNewInvalidFormat(t *testing.T) {
	var gerr *Error

	assert.True(t, errors.As(NewInvalidFormat(), &gerr))
	assert.Equal(t, "Invalid request body", gerr.Msg())

	assert.True(t, errors.As(NewInvalidFormat("Invalid query page"), &gerr))
	assert.Equal(t, "Invalid query page", gerr.Msg())
}

func TestError_String(t *testing.T) {
	err := NewBusinessReason("EXPIRED", "OTP expired", CodeBadRequest)

	var gerr *Error
	assert.True(t, errors.As(err, &gerr))
	assert.Equal(t, `type=business code=Bad Request reason=EXPIRED msg="OTP expired" cause=EXPIRED`, gerr.String())
	assert.Equal(t, "EXPIRED", gerr.Error())
	assert.Equal(t, "business error", (&Error{errType: TypeBusiness}).Error())
}
