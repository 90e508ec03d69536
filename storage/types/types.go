// Package types holds the object storage contract shared by the storage
// adapters and their factory.
package types

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// ObjectStorage stores and retrieves streamed payloads by key.
type ObjectStorage interface {
	// Put streams reader into the object named key and returns the number
	// of bytes written.
	Put(ctx context.Context, key string, reader io.Reader) (int64, error)
	// Get opens the object named key. The caller owns the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Exists reports whether the object named key is present.
	Exists(ctx context.Context, key string) (bool, error)
}
