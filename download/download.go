// Package download fetches vendor files to local disk or object storage by
// driving the request dispatcher in streamed mode.
package download

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dowjones/factiva-core-go/observability/types"
	"github.com/dowjones/factiva-core-go/request"
	"github.com/dowjones/factiva-core-go/storage"
	"github.com/dowjones/factiva-core-go/tools"
)

// AllowedExtensions is the fixed allow-list for downloaded file extensions.
var AllowedExtensions = []string{"csv", "json", "xls", "xlsx", "avro"}

// Dispatcher is the slice of the request client the downloader needs.
type Dispatcher interface {
	APISend(ctx context.Context, opts request.Options) (*request.Response, error)
}

// Downloader streams vendor responses into files or object storage.
type Downloader struct {
	dispatcher Dispatcher
	logger     types.Logger
	metrics    types.Metrics
}

// New builds a Downloader. A nil observability provider disables logging and
// metrics.
func New(dispatcher Dispatcher, obs types.Provider) *Downloader {
	if obs == nil {
		obs = types.Nop()
	}
	return &Downloader{
		dispatcher: dispatcher,
		logger:     obs.Logger("download"),
		metrics:    obs.Metrics("download"),
	}
}

// DownloadFile streams the response for url into targetDir and returns the
// resulting local path. The extension must be in AllowedExtensions; the target
// directory is created when missing; addTimestamp appends an ISO-8601 UTC
// timestamp to the file name.
func (d *Downloader) DownloadFile(ctx context.Context, url string, headers map[string]string, fileName, extension, targetDir string, addTimestamp bool) (string, error) {
	if _, err := tools.ValidateOption(extension, AllowedExtensions); err != nil {
		return "", err
	}

	if err := tools.EnsureDir(targetDir); err != nil {
		return "", fmt.Errorf("failed to create target directory: %w", err)
	}

	if addTimestamp {
		fileName = fmt.Sprintf("%s-%s", fileName, time.Now().UTC().Format("2006-01-02T15.04.05Z"))
	}
	filePath := filepath.Join(targetDir, fmt.Sprintf("%s.%s", fileName, extension))

	d.metrics.StartOperation("download")
	defer d.metrics.EndOperation("download")
	start := time.Now()
	defer func() {
		d.metrics.RecordDuration("download", time.Since(start).Seconds())
	}()

	d.logger.Info(ctx, "starting file download", types.Fields{
		"url":  url,
		"file": filePath,
	})

	_, err := d.dispatcher.APISend(ctx, request.Options{
		Method:   http.MethodGet,
		URL:      url,
		Headers:  headers,
		Mode:     request.ModeStreamed,
		FileName: filePath,
	})
	if err != nil {
		d.metrics.RecordError("download", "request")
		d.logger.Error(ctx, "file download failed", err, types.Fields{"url": url})
		return "", err
	}

	d.metrics.RecordSuccess("download")
	return filePath, nil
}

// DownloadToStorage streams the response for url into store under key and
// returns the number of bytes stored. The body is staged through a temporary
// file so the dispatcher's streamed mode does the network read.
func (d *Downloader) DownloadToStorage(ctx context.Context, url string, headers map[string]string, store storage.ObjectStorage, key string) (int64, error) {
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("factiva-%s.tmp", uuid.NewString()))
	defer os.Remove(tmpPath)

	_, err := d.dispatcher.APISend(ctx, request.Options{
		Method:   http.MethodGet,
		URL:      url,
		Headers:  headers,
		Mode:     request.ModeStreamed,
		FileName: tmpPath,
	})
	if err != nil {
		d.metrics.RecordError("download", "request")
		return 0, err
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		d.metrics.RecordError("download", "stage_open")
		return 0, fmt.Errorf("failed to open staged download: %w", err)
	}
	defer staged.Close()

	written, err := store.Put(ctx, key, staged)
	if err != nil {
		d.metrics.RecordError("download", "store")
		d.logger.Error(ctx, "failed to store download", err, types.Fields{
			"url": url,
			"key": key,
		})
		return written, err
	}

	d.metrics.RecordSuccess("download")
	d.logger.Info(ctx, "download stored", types.Fields{
		"url":   url,
		"key":   key,
		"bytes": written,
	})
	return written, nil
}
