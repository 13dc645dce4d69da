package storage

import "errors"

// ErrNotFound is returned by storage implementations when the requested
// entity does not exist; handlers translate it to 404.
var ErrNotFound = errors.New("not found")
