package gamesaverepo

import "errors"

var (
	// ErrNotFound indicates the member has no game save.
	ErrNotFound = errors.New("game save not found")
)
