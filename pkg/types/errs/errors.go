package errs

import "errors"

var (
	ErrRecordNotFound     = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyName          = errors.New("empty name")
)
