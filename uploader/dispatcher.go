package uploader

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/detox-ci/artifacts/artifacts"
	"github.com/detox-ci/artifacts/logging"
	"github.com/detox-ci/artifacts/storage"
)

const DefaultConcurrency = 10

// Dispatcher uploads artifacts to a Provider, keeping at most Concurrency
// uploads in flight.
//
// Once an upload fails no further uploads are started, but those already in
// flight run to completion. Run reports every failure observed.
type Dispatcher struct {
	Provider    storage.Provider
	Logger      *zap.Logger
	Concurrency int
}

func (d *Dispatcher) limit() int {
	if d.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return d.Concurrency
}

func (d *Dispatcher) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.L()
	}
	return d.Logger
}

func (d *Dispatcher) Run(ctx context.Context, files []artifacts.File) error {
	log := d.logger()

	var (
		g          errgroup.Group
		failed     atomic.Bool
		failuresMu sync.Mutex
		failures   []*FileError
	)
	g.SetLimit(d.limit())

	for _, f := range files {
		if failed.Load() {
			break
		}

		f := f
		g.Go(func() error {
			if failed.Load() {
				return nil
			}

			if err := d.upload(ctx, log, f); err != nil {
				failed.Store(true)
				failuresMu.Lock()
				defer failuresMu.Unlock()
				failures = append(failures, err)
				return err
			}
			return nil
		})
	}

	// Every error returned by the group is also recorded in failures.
	_ = g.Wait()

	if len(failures) > 0 {
		log.Error("Failed to upload artifacts", zap.Int("failed", len(failures)), zap.Int("total", len(files)))
		return newUploadError(failures)
	}

	return nil
}

func (d *Dispatcher) upload(ctx context.Context, log *zap.Logger, f artifacts.File) *FileError {
	l := logging.ForUpload(log, f.Path, f.Key)

	fail := func(err error) *FileError {
		l.Error("Failed to upload artifact", zap.Error(err))
		return &FileError{Path: f.Path, Key: f.Key, Err: err}
	}

	file, err := os.Open(f.Path)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = file.Close() }()

	stat, err := file.Stat()
	if err != nil {
		return fail(err)
	}

	started := time.Now()
	if err = d.Provider.Put(ctx, f.Key, f.ContentType, stat.Size(), file); err != nil {
		return fail(err)
	}

	l.Debug("Uploaded artifact",
		zap.String("content_type", f.ContentType),
		zap.Int64("size", stat.Size()),
		zap.Duration("duration", time.Since(started)))

	return nil
}
