package roomrepo

import "errors"

var (
	// ErrNotFound indicates the requested room does not exist.
	ErrNotFound = errors.New("room not found")
)
