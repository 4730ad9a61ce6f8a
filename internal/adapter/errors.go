package adapter

import "errors"

var (
	// ErrUnsupportedScheme is returned when a store URL uses a scheme other
	// than file, http or https.
	ErrUnsupportedScheme = errors.New("unsupported object store scheme")

	// ErrObjectNotFound is returned when a read targets a key the store
	// does not have.
	ErrObjectNotFound = errors.New("object not found")
)
