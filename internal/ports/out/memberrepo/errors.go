package memberrepo

import "errors"

var (
	// ErrNotFound indicates the requested member does not exist.
	ErrNotFound = errors.New("member not found")

	// ErrEmailTaken indicates a member already exists with the provided email.
	ErrEmailTaken = errors.New("member email already taken")
)
