// Package storage selects and configures an object storage adapter, used as
// an alternative sink for streamed API responses.
package storage

import (
	"context"
	"fmt"
	"time"

	obstypes "github.com/dowjones/factiva-core-go/observability/types"
	fsadapter "github.com/dowjones/factiva-core-go/storage/fs"
	s3adapter "github.com/dowjones/factiva-core-go/storage/s3"
	"github.com/dowjones/factiva-core-go/storage/types"
)

// ObjectStorage is the storage contract; see the types package.
type ObjectStorage = types.ObjectStorage

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = types.ErrObjectNotFound

// Adapter names for Config.Adapter.
const (
	AdapterFilesystem = "filesystem"
	AdapterS3         = "s3"
)

// Config selects and configures a storage adapter.
type Config struct {
	// Adapter is "filesystem" (the default) or "s3".
	Adapter string
	// BucketOrPath is the S3 bucket name or the filesystem base directory.
	BucketOrPath string
	// Timeout bounds individual S3 calls. Ignored by the filesystem adapter.
	Timeout time.Duration
	// S3 holds S3-specific settings.
	S3 s3adapter.Config
}

// New builds the configured adapter. A nil observability provider disables
// logging and metrics.
func New(ctx context.Context, cfg Config, obs obstypes.Provider) (ObjectStorage, error) {
	if obs == nil {
		obs = obstypes.Nop()
	}

	switch cfg.Adapter {
	case AdapterFilesystem, "":
		return fsadapter.New(cfg.BucketOrPath, obs.Logger("storage.fs"), obs.Metrics("storage.fs"))
	case AdapterS3:
		s3cfg := cfg.S3
		s3cfg.Bucket = cfg.BucketOrPath
		s3cfg.Timeout = cfg.Timeout
		return s3adapter.New(ctx, s3cfg, obs.Logger("storage.s3"), obs.Metrics("storage.s3"))
	default:
		return nil, fmt.Errorf("unknown storage adapter %q", cfg.Adapter)
	}
}
