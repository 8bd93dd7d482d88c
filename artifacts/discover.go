package artifacts

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Files ending with this suffix describe the test environment and are never
// uploaded.
const environmentSuffix = "environment.json"

// File is a single artifact discovered under the artifacts root.
type File struct {
	Path        string
	RelPath     string
	Key         string
	Size        int64
	ContentType string
}

// Discover recursively lists every artifact under root, computing its remote
// key under run's prefix. A missing root yields no files and no error.
func Discover(root string, run RunID) ([]File, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(root)
	if os.IsNotExist(err) {
		return []File{}, nil
	} else if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("%s: exists and is not a directory", root)
	}

	files := []File{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(d.Name(), environmentSuffix) {
			return nil
		}

		// Symlinks are resolved; only those pointing at regular files count.
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			return nil
		} else if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		files = append(files, File{
			Path:        path,
			RelPath:     rel,
			Key:         run.KeyFor(rel),
			Size:        info.Size(),
			ContentType: ContentType(path),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing artifacts at %s: %w", root, err)
	}

	return files, nil
}
