package domain

import (
	"errors"
	"fmt"
)

// Fixed user-facing messages. AuthExpired and Unreachable never surface
// the server payload; the rest fall back to these when the payload has
// no usable message.
const (
	MsgAuthExpired   = "Unauthorized. Please log in again."
	MsgUnreachable   = "No response received from the server. Please try again later."
	MsgServerError   = "Something went wrong."
	MsgInvalidInput  = "Invalid input."
	MsgNotFound      = "Resource not found."
	MsgNotLoggedIn   = "You are not logged in. Please log in and try again."
	MsgMissingOption = "Train schedule ID is missing. Please try again."
)

// ValidationError is a server-rejected or locally-rejected input
// (HTTP 400-class, or a precondition checked before any network call).
type ValidationError struct {
	Msg string
	Err error
}

func (e ValidationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return MsgInvalidInput
}

func (e ValidationError) Unwrap() error { return e.Err }

// AuthExpiredError means the session is invalid or expired (HTTP
// 401-class). It always carries the fixed message and forces session
// teardown plus a redirect to login.
type AuthExpiredError struct {
	Err error
}

func (e AuthExpiredError) Error() string { return MsgAuthExpired }

func (e AuthExpiredError) Unwrap() error { return e.Err }

// NotFoundError means the requested schedule or resource is absent
// (HTTP 404-class, or a search that matched nothing).
type NotFoundError struct {
	Msg string
	Err error
}

func (e NotFoundError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return MsgNotFound
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ServerError covers every other HTTP error status.
type ServerError struct {
	Status int
	Msg    string
	Err    error
}

func (e ServerError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Status != 0 {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return MsgServerError
}

func (e ServerError) Unwrap() error { return e.Err }

// UnreachableError means the request was sent but no response arrived.
type UnreachableError struct {
	Err error
}

func (e UnreachableError) Error() string { return MsgUnreachable }

func (e UnreachableError) Unwrap() error { return e.Err }

// RequestError means the request could not be constructed at all.
type RequestError struct {
	Err error
}

func (e RequestError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "request could not be sent"
}

func (e RequestError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsAuthExpired(err error) bool {
	var target AuthExpiredError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsServer(err error) bool {
	var target ServerError
	return errors.As(err, &target)
}

func IsUnreachable(err error) bool {
	var target UnreachableError
	return errors.As(err, &target)
}

func IsRequest(err error) bool {
	var target RequestError
	return errors.As(err, &target)
}

// UserMessage maps any classified error to the text shown to the user,
// so call sites never branch on HTTP status themselves.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case IsAuthExpired(err):
		return MsgAuthExpired
	case IsUnreachable(err):
		return MsgUnreachable
	case IsServer(err):
		var se ServerError
		errors.As(err, &se)
		if se.Msg != "" {
			return se.Msg
		}
		return MsgServerError
	}
	return err.Error()
}
