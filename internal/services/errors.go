package services

import "errors"

// ValidationError reports a missing or malformed request field. Handlers
// map it to 400 with the message as the response body.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an id that does not resolve or does not belong
// to the caller. Handlers map it to 404.
type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

// ErrEmptyCompletion is returned when the completion service produced
// no text at all. Unlike malformed JSON (recovered locally with a
// fallback), an empty reply aborts the request.
var ErrEmptyCompletion = errors.New("no response from AI")
