package uploader

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/detox-ci/artifacts/artifacts"
	"github.com/detox-ci/artifacts/storage"
)

const (
	StorageModeS3    = "s3"
	StorageModeLocal = "local"
)

type Config struct {
	Logger       *zap.Logger
	StorageMode  string
	ArtifactsDir string
	Run          artifacts.RunID
	IOS          bool
	Concurrency  int

	S3BucketName      string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Endpoint        string
	LocalStoragePath  string

	// Provider, when set, is used instead of building one from StorageMode.
	Provider storage.Provider
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.L()
	}
	return c.Logger
}

func (c *Config) mode() string {
	if c.StorageMode == "" {
		return StorageModeS3
	}
	return c.StorageMode
}

// Missing lists the settings required by the configured storage mode that
// were left empty.
func (c *Config) Missing() []string {
	var missing []string
	switch c.mode() {
	case StorageModeLocal:
		if c.LocalStoragePath == "" {
			missing = append(missing, "local-storage-path")
		}
	default:
		if c.S3BucketName == "" {
			missing = append(missing, "s3-bucket")
		}
		if c.S3AccessKeyID == "" {
			missing = append(missing, "aws-access-key-id")
		}
		if c.S3SecretAccessKey == "" {
			missing = append(missing, "aws-secret-access-key")
		}
	}
	return missing
}

func (c *Config) storageProvider() (storage.Provider, error) {
	if c.Provider != nil {
		return c.Provider, nil
	}

	var (
		provider        storage.Provider
		storageLogField zap.Field
		err             error
	)

	switch c.mode() {
	case StorageModeLocal:
		provider, err = storage.NewLocalStorage(c.LocalStoragePath)
		storageLogField = zap.String("local_storage_path", c.LocalStoragePath)
	case StorageModeS3:
		provider, err = storage.NewS3(storage.S3Options{
			BucketName:      c.S3BucketName,
			AccessKeyID:     c.S3AccessKeyID,
			SecretAccessKey: c.S3SecretAccessKey,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
		})
		storageLogField = zap.String("bucket_name", c.S3BucketName)
	default:
		return nil, fmt.Errorf("unknown storage mode %q", c.StorageMode)
	}

	if err != nil {
		c.logger().Error("Storage provider initialization failed", zap.Error(err))
		return nil, err
	}

	c.logger().Info("Storage provider initialization succeeded",
		zap.String("provider_kind", c.mode()),
		storageLogField,
	)

	return provider, nil
}

// SaveArtifacts uploads every artifact under c.ArtifactsDir and returns a
// Report linking to the run's HTML test report. When required settings are
// missing nothing is uploaded and a skipped Report is returned.
func SaveArtifacts(ctx context.Context, c *Config) (*Report, error) {
	log := c.logger()

	if missing := c.Missing(); len(missing) > 0 {
		if c.mode() == StorageModeS3 {
			log.Info("No AWS credentials found. Test artifacts not uploaded to S3.", zap.Strings("missing", missing))
		} else {
			log.Info("Storage not configured. Test artifacts not uploaded.", zap.Strings("missing", missing))
		}
		return &Report{Skipped: true}, nil
	}

	provider, err := c.storageProvider()
	if err != nil {
		return nil, err
	}

	files, err := artifacts.Discover(c.ArtifactsDir, c.Run)
	if err != nil {
		return nil, err
	}

	log = log.With(zap.String("prefix", c.Run.Prefix()))
	log.Info("Uploading artifacts", zap.Int("count", len(files)), zap.String("artifacts_dir", c.ArtifactsDir))

	d := &Dispatcher{
		Provider:    provider,
		Logger:      log,
		Concurrency: c.Concurrency,
	}
	if err = d.Run(ctx, files); err != nil {
		return nil, err
	}

	report := &Report{
		Success:    true,
		ReportLink: provider.URLFor(reportKey(c.Run, c.IOS)),
		Uploaded:   len(files),
	}
	log.Info("Uploaded artifacts", zap.Int("count", len(files)), zap.String("report_link", report.ReportLink))

	return report, nil
}
