package errors

import "errors"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotAuthorized  = errors.New("not authorized")
)
