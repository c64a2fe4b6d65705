// Package deploy uploads build output to S3-compatible storage.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	uploader := deploy.New(s3.NewFromConfig(cfg), "my-bucket", "app/")
//	result, err := uploader.Deploy(ctx, "dist")
package deploy

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/svgkit/internal/errors"
)

// ObjectPutter is the subset of the S3 client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Result contains the deploy outcome.
type Result struct {
	// Uploaded is the number of uploaded objects.
	Uploaded int

	// Bytes is the total uploaded size.
	Bytes int64

	// Duration is how long the deploy took.
	Duration time.Duration
}

// Uploader uploads a build output directory to a bucket.
type Uploader struct {
	client ObjectPutter
	bucket string
	prefix string

	// OnProgress is called with each uploaded key.
	OnProgress func(key string)
}

// New creates an uploader. The prefix is prepended to every object key.
func New(client ObjectPutter, bucket, prefix string) *Uploader {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Uploader{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// hashedName matches content-hashed output names like arrow.4F2D1C8A.svg.
var hashedName = regexp.MustCompile(`\.[0-9A-Za-z]{8}\.[a-z]+$`)

// Deploy uploads every file under dir, preserving relative paths.
func (u *Uploader) Deploy(ctx context.Context, dir string) (*Result, error) {
	start := time.Now()

	if _, err := os.Stat(dir); err != nil {
		return nil, errors.New("E501").
			WithDetail("Build output not found at " + dir).
			WithSuggestion("Run svgkit build first")
	}

	result := &Result{}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := u.prefix + filepath.ToSlash(rel)

		if err := u.putFile(ctx, key, path); err != nil {
			return err
		}

		result.Uploaded++
		result.Bytes += info.Size()
		if u.OnProgress != nil {
			u.OnProgress(key)
		}
		return nil
	})
	if err != nil {
		// Upload failures are already coded; filesystem errors from
		// the walk itself get wrapped here.
		if errors.IsCategory(err, errors.CategoryDeploy) {
			return nil, err
		}
		return nil, errors.New("E501").Wrap(err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

// putFile uploads a single file.
func (u *Uploader) putFile(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.New("E501").Wrap(err)
	}
	defer f.Close()

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         f,
		ContentType:  aws.String(contentType(path)),
		CacheControl: aws.String(cacheControl(key)),
	})
	if err != nil {
		return errors.New("E501").
			WithDetail("Failed to upload " + key).
			Wrap(err)
	}
	return nil
}

// contentType guesses the MIME type from the file extension.
func contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// cacheControl returns the cache policy for a key. Content-hashed names
// never change, so they cache forever; everything else revalidates.
func cacheControl(key string) string {
	if hashedName.MatchString(key) {
		return "public, max-age=31536000, immutable"
	}
	return "no-cache"
}
