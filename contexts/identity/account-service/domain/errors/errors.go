package errors

import "errors"

var (
	ErrInvalidRequest  = errors.New("invalid request")
	ErrAccountNotFound = errors.New("account not found")
)
