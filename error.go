package clipper

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Persistence and CLI plumbing use the generic codes. The extraction pipeline
// uses the extraction codes; only EFETCH, ECONTENT and EINVALIDURL ever reach
// the caller of Extractor.Extract, the rest are resolved into fallbacks or
// placeholder content inside the pipeline.
const (
	ECONFLICT = "conflict"
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	EFETCH                 = "fetch_failed"
	ESUBPROCESS            = "subprocess_failed"
	ECONTENT               = "insufficient_content"
	EINVALIDURL            = "invalid_url"
	ETRANSCRIPTDISABLED    = "transcript_disabled"
	ETRANSCRIPTUNAVAILABLE = "transcript_unavailable"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("clipper error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("clipper error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code that wraps err.
func WrapError(code string, err error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// UserMessage returns a short message suitable for showing to the person who
// submitted a URL. Terminal extraction errors get specific guidance so the
// caller can offer to save the bare link instead.
func UserMessage(err error) string {
	switch ErrorCode(err) {
	case "":
		return ""
	case EFETCH:
		return "Could not reach the page."
	case ECONTENT:
		return "The page was blocked or empty."
	case EINVALIDURL:
		return "The URL is not valid."
	default:
		return "Could not extract content from the URL."
	}
}
