// Package fs implements object storage on the local filesystem. Keys map to
// file paths under a base directory.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	obstypes "github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/storage/types"
)

// Storage stores objects as files under a base path.
type Storage struct {
	basePath string
	logger   obstypes.Logger
	metrics  obstypes.Metrics
}

var _ types.ObjectStorage = (*Storage)(nil)

// New creates the base directory if needed and returns a filesystem storage.
func New(basePath string, logger obstypes.Logger, metrics obstypes.Metrics) (*Storage, error) {
	if basePath == "" {
		basePath = "."
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base path: %w", err)
	}

	logger.Info(context.Background(), "filesystem storage initialized", obstypes.Fields{
		"base_path": basePath,
	})

	return &Storage{
		basePath: basePath,
		logger:   logger,
		metrics:  metrics,
	}, nil
}

// Put writes reader to the file named by key, creating parent directories as
// needed.
func (s *Storage) Put(ctx context.Context, key string, reader io.Reader) (int64, error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordDuration("storage.put", time.Since(start).Seconds())
	}()

	objectPath, err := s.objectPath(key)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(objectPath), 0755); err != nil {
		s.metrics.RecordError("storage.put", "mkdir")
		return 0, fmt.Errorf("failed to create object directory: %w", err)
	}

	file, err := os.Create(objectPath)
	if err != nil {
		s.metrics.RecordError("storage.put", "create")
		return 0, fmt.Errorf("failed to create object file: %w", err)
	}

	written, err := io.Copy(file, reader)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		s.metrics.RecordError("storage.put", "write")
		return written, fmt.Errorf("failed to write object: %w", err)
	}

	s.metrics.RecordSuccess("storage.put")
	s.logger.Debug(ctx, "object stored", obstypes.Fields{
		"key":   key,
		"bytes": written,
	})
	return written, nil
}

// Get opens the file named by key.
func (s *Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	objectPath, err := s.objectPath(key)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(objectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, types.ErrObjectNotFound
		}
		s.metrics.RecordError("storage.get", "open")
		return nil, fmt.Errorf("failed to open object: %w", err)
	}

	s.metrics.RecordSuccess("storage.get")
	return file, nil
}

// Exists reports whether the file named by key is present.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	objectPath, err := s.objectPath(key)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(objectPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// objectPath resolves key under the base path, rejecting traversal outside it.
func (s *Storage) objectPath(key string) (string, error) {
	cleaned := filepath.Clean(filepath.Join(s.basePath, filepath.FromSlash(key)))
	base := filepath.Clean(s.basePath)
	if cleaned != base && !strings.HasPrefix(cleaned, base+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return cleaned, nil
}
