package entity

import "errors"

var (
	ErrNotFound              = errors.New("record not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidReference      = errors.New("referenced record does not exist")
	ErrDatabaseNotConfigured = errors.New("database not configured")
)
