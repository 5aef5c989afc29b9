package storage

import "errors"

// ErrObjectNotFound: the key resolves to nothing on the remote bucket.
var ErrObjectNotFound = errors.New("object not found")
