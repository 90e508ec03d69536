package tools

import (
	"context"
	"os"
	"time"
)

// EnsureDir creates path and any missing parents. It is a no-op when the
// directory already exists.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// Sleep pauses for d or until ctx is canceled, returning the context error in
// the latter case.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
