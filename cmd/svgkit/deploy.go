package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/pkg/deploy"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Upload the build output to S3",
		Long: `Upload the production build output to an S3 bucket.

Credentials come from the standard AWS sources (environment,
shared config, instance role). Content-hashed assets are uploaded
with immutable cache headers; the bundle and manifest revalidate.

Examples:
  svgkit deploy --bucket=my-site
  svgkit deploy --bucket=my-site --prefix=app --region=eu-west-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(cmd.Context(), bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Destination bucket (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix for uploaded objects")
	cmd.Flags().StringVar(&region, "region", "", "AWS region override")
	cmd.MarkFlagRequired("bucket")

	return cmd
}

func runDeploy(ctx context.Context, bucket, prefix, region string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	var optFns []func(*awsconfig.LoadOptions) error
	if region != "" {
		optFns = append(optFns, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return err
	}

	uploader := deploy.New(s3.NewFromConfig(awsCfg), bucket, prefix)
	uploader.OnProgress = func(key string) {
		info("Uploaded %s", key)
	}

	fmt.Printf("  Deploying %s to s3://%s/%s\n", cfg.Build.Output, bucket, prefix)
	fmt.Println()

	result, err := uploader.Deploy(ctx, cfg.OutputPath())
	if err != nil {
		return err
	}

	fmt.Println()
	success("Deployed %d objects (%s) in %s", result.Uploaded, formatBytes(result.Bytes), result.Duration.Round(1000000))

	return nil
}
