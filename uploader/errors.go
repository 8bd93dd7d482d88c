package uploader

import (
	"fmt"

	"go.uber.org/multierr"
)

// FileError reports a failed upload of a single artifact.
type FileError struct {
	Path string
	Key  string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("uploading %s: %s", e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// UploadError aggregates every FileError raised while dispatching a batch.
type UploadError struct {
	failures []*FileError
	combined error
}

func newUploadError(failures []*FileError) *UploadError {
	errs := make([]error, len(failures))
	for i, f := range failures {
		errs[i] = f
	}
	return &UploadError{failures: failures, combined: multierr.Combine(errs...)}
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload %d artifact(s): %s", len(e.failures), e.combined)
}

func (e *UploadError) Unwrap() error { return e.combined }

// Failures returns the individual upload failures, in completion order.
func (e *UploadError) Failures() []*FileError { return e.failures }
