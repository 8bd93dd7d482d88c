package commands

import (
	"github.com/urfave/cli/v2"

	"github.com/detox-ci/artifacts/artifacts"
	"github.com/detox-ci/artifacts/storage"
	"github.com/detox-ci/artifacts/uploader"
)

func envs(base string) []string {
	return []string{"DETOX_ARTIFACTS_" + base}
}

// Flags lists the global flags shared by every command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "artifacts-dir", EnvVars: []string{"ARTIFACTS_DIR"}, Value: "artifacts"},
		&cli.StringFlag{Name: "branch", EnvVars: []string{"BRANCH"}},
		&cli.StringFlag{Name: "build-id", EnvVars: []string{"BUILD_ID"}},
		&cli.StringFlag{Name: "commit-hash", EnvVars: []string{"COMMIT_HASH"}},
		&cli.StringFlag{Name: "s3-bucket", EnvVars: []string{"DETOX_AWS_S3_BUCKET"}},
		&cli.StringFlag{Name: "aws-access-key-id", EnvVars: []string{"DETOX_AWS_ACCESS_KEY_ID"}},
		&cli.StringFlag{Name: "aws-secret-access-key", EnvVars: []string{"DETOX_AWS_SECRET_ACCESS_KEY"}},
		&cli.StringFlag{Name: "aws-region", EnvVars: []string{"DETOX_AWS_REGION", "AWS_REGION"}, Value: storage.DefaultRegion},
		&cli.StringFlag{Name: "s3-endpoint", EnvVars: []string{"DETOX_AWS_S3_ENDPOINT"}},
		&cli.StringFlag{Name: "ios", EnvVars: []string{"IOS"}, Usage: "Set to \"true\" to link to the iOS report instead of the Android one"},
		&cli.StringFlag{Name: "storage-mode", EnvVars: envs("STORAGE_MODE"), Value: uploader.StorageModeS3, Usage: "s3 or local"},
		&cli.StringFlag{Name: "local-storage-path", EnvVars: envs("LOCAL_STORAGE_PATH")},
		&cli.IntFlag{Name: "concurrency", EnvVars: envs("CONCURRENCY"), Value: uploader.DefaultConcurrency},
		&cli.BoolFlag{Name: "dev", EnvVars: envs("DEV")},
	}
}

func runFromContext(ctx *cli.Context) artifacts.RunID {
	return artifacts.RunID{
		BuildID:    ctx.String("build-id"),
		CommitHash: ctx.String("commit-hash"),
		Branch:     ctx.String("branch"),
	}
}
