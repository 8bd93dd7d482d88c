package uploader

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/detox-ci/artifacts/artifacts"
	"github.com/detox-ci/artifacts/storage"
)

var testRun = artifacts.RunID{BuildID: "1234", CommitHash: "f00ba4", Branch: "release.1.2"}

func writeArtifacts(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		p := filepath.Join(dir, filepath.FromSlash(n))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("contents of "+n), 0644))
	}
	return dir
}

func discover(t *testing.T, dir string) []artifacts.File {
	t.Helper()
	files, err := artifacts.Discover(dir, testRun)
	require.NoError(t, err)
	return files
}

// recordingProvider accepts every upload after delay, tracking how many are
// in flight at once. When embedded is set, URLFor is delegated to it.
type recordingProvider struct {
	storage.Provider

	delay    time.Duration
	failKeys map[string]error

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32

	mu   sync.Mutex
	keys map[string]string
}

func (r *recordingProvider) Put(_ context.Context, key, contentType string, size int64, body io.Reader) error {
	r.calls.Add(1)
	current := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		prev := r.maxInFlight.Load()
		if current <= prev || r.maxInFlight.CompareAndSwap(prev, current) {
			break
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(data)) != size {
		return io.ErrUnexpectedEOF
	}

	time.Sleep(r.delay)

	if err, ok := r.failKeys[key]; ok {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.keys == nil {
		r.keys = map[string]string{}
	}
	r.keys[key] = contentType
	return nil
}

func (r *recordingProvider) uploaded() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]string, len(r.keys))
	for k, v := range r.keys {
		out[k] = v
	}
	return out
}
