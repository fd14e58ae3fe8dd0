package domain

import "errors"

// Errors shared by the remote source, the cache and the synchronizer.
var (
	ErrNetwork  = errors.New("network error")
	ErrDecode   = errors.New("decode error")
	ErrNotFound = errors.New("not found")
	ErrCache    = errors.New("cache error")
)
