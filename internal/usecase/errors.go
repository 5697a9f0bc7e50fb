package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("resource not found")
	ErrNotReady     = errors.New("fixtures are not loaded yet")
	ErrLoadFailed   = errors.New("fixtures load failed")
)
