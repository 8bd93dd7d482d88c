package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/detox-ci/artifacts/logging"
	"github.com/detox-ci/artifacts/uploader"
)

func Upload(ctx *cli.Context) error {
	logger, err := logging.InitializeLogger(ctx.Bool("dev"))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	conf := &uploader.Config{
		Logger:            logger,
		StorageMode:       ctx.String("storage-mode"),
		ArtifactsDir:      ctx.String("artifacts-dir"),
		Run:               runFromContext(ctx),
		IOS:               ctx.String("ios") == "true",
		Concurrency:       ctx.Int("concurrency"),
		S3BucketName:      ctx.String("s3-bucket"),
		S3AccessKeyID:     ctx.String("aws-access-key-id"),
		S3SecretAccessKey: ctx.String("aws-secret-access-key"),
		S3Region:          ctx.String("aws-region"),
		S3Endpoint:        ctx.String("s3-endpoint"),
		LocalStoragePath:  ctx.String("local-storage-path"),
	}

	report, err := uploader.SaveArtifacts(sigCtx, conf)
	if err != nil {
		logger.Error("Failed to upload artifacts", zap.Error(err))
		return err
	}

	if out := ctx.String("output"); out != "" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		if err = os.WriteFile(out, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("writing report to %s: %w", out, err)
		}
	}

	if report.ReportLink != "" {
		fmt.Fprintln(ctx.App.Writer, report.ReportLink)
	}

	return nil
}
