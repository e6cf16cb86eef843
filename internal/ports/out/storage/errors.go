// Package storage holds error values shared by every storage port.
package storage

import "errors"

// ErrUnavailable indicates the backing store could not be reached or the
// operation hit the request deadline. It is surfaced to the caller without
// internal retries; retry/backoff policy belongs to the caller.
var ErrUnavailable = errors.New("storage unavailable")
