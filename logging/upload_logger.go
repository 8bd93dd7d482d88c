package logging

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ForUpload returns a child logger tagged with a fresh upload ID along with
// the local path and remote key being transferred.
func ForUpload(log *zap.Logger, path, key string) *zap.Logger {
	return log.With(
		zap.String("upload_id", uuid.NewString()),
		zap.String("path", path),
		zap.String("key", key),
	)
}
