// Package goerror is the error model shared by usecases and the HTTP layer.
//
// Stores return the sentinels ErrNotFound and ErrConflict. Usecases translate
// them into *Error values that carry the client message, an HTTP mapped Code
// and, for business rules, a Reason clients can switch on.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource conflict")
)

type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

func (t Type) String() string {
	switch t {
	case TypeServer:
		return "server"
	case TypeBusiness:
		return "business"
	case TypeValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Code selects the HTTP status of an error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeTooManyRequest
	CodeUnauthorized
	CodeForbidden
	CodeTimeout
	// CodeBadRequest is a well-formed request the current state rejects,
	// such as a wrong or expired OTP.
	CodeBadRequest
)

var statusOfCode = map[Code]int{
	CodeInternal:       http.StatusInternalServerError,
	CodeInvalidFormat:  http.StatusBadRequest,
	CodeInvalidInput:   http.StatusUnprocessableEntity,
	CodeNotFound:       http.StatusNotFound,
	CodeConflict:       http.StatusConflict,
	CodeTooManyRequest: http.StatusTooManyRequests,
	CodeUnauthorized:   http.StatusUnauthorized,
	CodeForbidden:      http.StatusForbidden,
	CodeTimeout:        http.StatusRequestTimeout,
	CodeBadRequest:     http.StatusBadRequest,
}

func (c Code) String() string {
	if status, ok := statusOfCode[c]; ok {
		return http.StatusText(status)
	}
	return http.StatusText(http.StatusInternalServerError)
}

// Reason is a stable machine readable error kind such as "INVALID_CODE".
// Reasons are errors so packages can declare them as sentinels for errors.Is.
type Reason string

func (r Reason) Error() string { return string(r) }

type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	reason  Reason
	fields  map[string]string
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String() + " error"
	}
}

// String is the verbose form used in logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s reason=%s msg=%q cause=%v", e.errType, e.code, e.reason, e.msg, e.err)
}

// Msg is the message shown to the client.
func (e *Error) Msg() string { return e.msg }

func (e *Error) Type() Type { return e.errType }

func (e *Error) Code() Code { return e.code }

// Reason is empty unless the error was built with NewBusinessReason.
func (e *Error) Reason() Reason { return e.reason }

// Fields maps request fields to validation messages.
func (e *Error) Fields() map[string]string { return e.fields }

func (e *Error) Unwrap() error { return e.err }

func (e *Error) StatusCode() int {
	if status, ok := statusOfCode[e.code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// NewServer hides err behind a generic 500 message.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewBusinessReason wraps reason itself, so errors.Is(err, reason) holds.
func NewBusinessReason(reason Reason, msg string, code Code) error {
	return &Error{err: reason, msg: msg, errType: TypeBusiness, code: code, reason: reason}
}

// NewInvalidInput builds a 422 either from a validator error or from
// field/message pairs. An odd number of pairs is treated as a malformed body.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}
	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	fields := make(map[string]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		fields[kv[i]] = kv[i+1]
	}
	return &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, fields: fields}
}

// NewInvalidFormat is the 400 for bodies that cannot be decoded. The first
// message, if any, replaces the default one.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
