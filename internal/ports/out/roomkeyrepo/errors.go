package roomkeyrepo

import "errors"

var (
	// ErrNotFound indicates the requested key does not exist.
	ErrNotFound = errors.New("room key not found")
)
