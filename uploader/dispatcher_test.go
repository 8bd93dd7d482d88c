package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/detox-ci/artifacts/mocks"
)

func manyArtifacts(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("suite-%d/shot-%d.png", i%4, i)
	}
	return names
}

func TestDispatcher_Run(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Run("no files", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		d := &Dispatcher{Provider: mocks.NewMockProvider(ctrl), Logger: zap.NewNop()}
		assert.NoError(t, d.Run(context.Background(), nil))
	})

	t.Run("uploads every file", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, "jest-stare/ios-report.html", "a/shot.png", "a/b/device.log"))
		prov := &recordingProvider{}
		d := &Dispatcher{Provider: prov, Logger: zap.NewNop()}

		require.NoError(t, d.Run(context.Background(), files))
		assert.Equal(t, map[string]string{
			"1234-f00ba4-release-1-2/jest-stare/ios-report.html": "text/html; charset=UTF-8",
			"1234-f00ba4-release-1-2/a/shot.png":                 "image/png",
			"1234-f00ba4-release-1-2/a/b/device.log":             "text/plain; charset=UTF-8",
		}, prov.uploaded())
	})

	t.Run("default concurrency ceiling", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, manyArtifacts(60)...))
		prov := &recordingProvider{delay: 10 * time.Millisecond}
		d := &Dispatcher{Provider: prov, Logger: zap.NewNop()}

		require.NoError(t, d.Run(context.Background(), files))
		assert.Equal(t, int32(60), prov.calls.Load())
		assert.LessOrEqual(t, prov.maxInFlight.Load(), int32(DefaultConcurrency))
		assert.Greater(t, prov.maxInFlight.Load(), int32(1))
	})

	t.Run("custom concurrency ceiling", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, manyArtifacts(20)...))
		prov := &recordingProvider{delay: 5 * time.Millisecond}
		d := &Dispatcher{Provider: prov, Logger: zap.NewNop(), Concurrency: 3}

		require.NoError(t, d.Run(context.Background(), files))
		assert.Equal(t, int32(20), prov.calls.Load())
		assert.LessOrEqual(t, prov.maxInFlight.Load(), int32(3))
	})

	t.Run("stops dispatching after a failure", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, "a.png", "b.png", "c.png"))
		require.Len(t, files, 3)

		ctrl := gomock.NewController(t)
		prov := mocks.NewMockProvider(ctrl)
		boom := errors.New("connection reset")
		prov.EXPECT().
			Put(gomock.Any(), files[0].Key, "image/png", gomock.Any(), gomock.Any()).
			Return(boom).
			Times(1)

		d := &Dispatcher{Provider: prov, Logger: zap.NewNop(), Concurrency: 1}
		err := d.Run(context.Background(), files)
		require.Error(t, err)

		var uploadErr *UploadError
		require.True(t, errors.As(err, &uploadErr))
		require.Len(t, uploadErr.Failures(), 1)
		assert.Equal(t, files[0].Path, uploadErr.Failures()[0].Path)
		assert.Equal(t, files[0].Key, uploadErr.Failures()[0].Key)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), files[0].Path)
	})

	t.Run("in-flight uploads settle before returning", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, "a.png", "b.png"))
		require.Len(t, files, 2)

		started := make(chan struct{})
		release := make(chan struct{})
		ctrl := gomock.NewController(t)
		prov := mocks.NewMockProvider(ctrl)
		prov.EXPECT().
			Put(gomock.Any(), files[0].Key, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("boom"))
		prov.EXPECT().
			Put(gomock.Any(), files[1].Key, gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ string, _ int64, _ io.Reader) error {
				close(started)
				<-release
				return nil
			}).
			MaxTimes(1)

		d := &Dispatcher{Provider: prov, Logger: zap.NewNop(), Concurrency: 2}
		done := make(chan error, 1)
		go func() { done <- d.Run(context.Background(), files) }()

		var err error
		select {
		case <-started:
			select {
			case <-done:
				t.Fatal("Run returned while an upload was still in flight")
			case <-time.After(20 * time.Millisecond):
			}
			close(release)
			err = <-done
		case err = <-done:
			// The failure was observed before the second upload started.
			close(release)
		}

		var uploadErr *UploadError
		require.True(t, errors.As(err, &uploadErr))
		assert.Len(t, uploadErr.Failures(), 1)
	})

	t.Run("missing file on disk", func(t *testing.T) {
		dir := writeArtifacts(t, "gone.png")
		files := discover(t, dir)
		require.NoError(t, os.Remove(files[0].Path))

		ctrl := gomock.NewController(t)
		d := &Dispatcher{Provider: mocks.NewMockProvider(ctrl), Logger: zap.NewNop()}

		err := d.Run(context.Background(), files)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("collects every failure", func(t *testing.T) {
		files := discover(t, writeArtifacts(t, "a.png", "b.png", "c.png"))
		prov := &recordingProvider{
			delay: 20 * time.Millisecond,
			failKeys: map[string]error{
				files[0].Key: errors.New("first"),
				files[1].Key: errors.New("second"),
			},
		}
		d := &Dispatcher{Provider: prov, Logger: zap.NewNop(), Concurrency: 3}

		err := d.Run(context.Background(), files)
		var uploadErr *UploadError
		require.True(t, errors.As(err, &uploadErr))
		assert.Len(t, uploadErr.Failures(), 2)
		assert.Len(t, prov.uploaded(), 1)
	})
}
