package openrouter

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go"
)

// ErrorKind classifies an upstream failure at the point it originates, so
// callers never have to sniff message text.
type ErrorKind string

const (
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindRateLimited  ErrorKind = "rate_limited"
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindBadRequest   ErrorKind = "bad_request"
	ErrorKindUnknown      ErrorKind = "unknown"
)

// Error is a classified failure from the completion API.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// classify maps an SDK error onto the tagged taxonomy using its typed status
// code.
func classify(err error, model string) *Error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized:
			return &Error{Kind: ErrorKindUnauthorized, Message: "invalid API key or unauthorized access"}
		case http.StatusTooManyRequests:
			return &Error{Kind: ErrorKindRateLimited, Message: "rate limit exceeded"}
		case http.StatusNotFound:
			return &Error{Kind: ErrorKindNotFound, Message: fmt.Sprintf("model %q not found or not available", model)}
		case http.StatusBadRequest:
			return &Error{Kind: ErrorKindBadRequest, Message: "invalid request format or parameters"}
		}
	}
	return &Error{Kind: ErrorKindUnknown, Message: fmt.Sprintf("completion request failed: %v", err)}
}
