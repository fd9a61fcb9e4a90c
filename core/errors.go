package core

import "errors"

var (
	// ErrMissingNumber indicates a commit without a "number" field.
	ErrMissingNumber = errors.New("commit has no number")

	// ErrInvalidNumber indicates a "number" field of an unsupported type.
	ErrInvalidNumber = errors.New("invalid commit number")
)
