package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func ensureDir(at string) error {
	retrying := false
	for {
		stat, err := os.Stat(at)
		if os.IsNotExist(err) && !retrying {
			if err = os.MkdirAll(at, 0755); err != nil {
				return fmt.Errorf("mkdir_p %s: %w", at, err)
			}
			retrying = true
			continue
		} else if err != nil {
			return err
		}

		if stat.IsDir() {
			return nil
		}

		return fmt.Errorf("%s: exists and is not a directory", at)
	}
}

// NewLocalStorage returns a Provider that keeps objects as plain files under
// basePath, each followed by a .meta file describing it.
func NewLocalStorage(basePath string) (Provider, error) {
	basePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	if err = ensureDir(basePath); err != nil {
		return nil, err
	}

	return LocalStorage{basePath: basePath}, nil
}

type LocalStorage struct {
	basePath string
}

func (l LocalStorage) pathOf(key string) (string, error) {
	p := filepath.Join(l.basePath, filepath.FromSlash(key))
	if p != l.basePath && !strings.HasPrefix(p, l.basePath+string(filepath.Separator)) {
		return "", fmt.Errorf("key %s escapes storage root", key)
	}
	return p, nil
}

func burninate(path string) {
	_ = os.RemoveAll(path + ".meta")
	_ = os.RemoveAll(path)
}

func (l LocalStorage) Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (err error) {
	if err = ctx.Err(); err != nil {
		return err
	}

	path, err := l.pathOf(key)
	if err != nil {
		return err
	}
	if err = ensureDir(filepath.Dir(path)); err != nil {
		return err
	}

	defer func() {
		if err != nil {
			burninate(path)
		}
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if size >= 0 && written != size {
		return fmt.Errorf("%s: expected %d bytes, got %d", key, size, written)
	}

	meta, err := os.Create(path + ".meta")
	if err != nil {
		return err
	}
	defer func() { _ = meta.Close() }()

	return json.NewEncoder(meta).Encode(Item{
		CreatedAt: time.Now().UTC(),
		Size:      written,
		Mime:      contentType,
	})
}

func (l LocalStorage) URLFor(key string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(l.basePath, filepath.FromSlash(key)))}
	return u.String()
}
