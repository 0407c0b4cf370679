// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/tfctl/assetq/internal/log"
)

// ErrBadURL is returned for source URLs that are not s3://bucket/key.
var ErrBadURL = errors.New("invalid s3 url")

// options holds optional overrides for AWS config loading.
type options struct {
	profile string
	region  string
	retryer func() awsv2.Retryer
}

// Option customizes how AWS config is loaded.
// Default behavior (no options) inherits the shell environment and shared
// config chain (AWS_PROFILE, ~/.aws/config, ~/.aws/credentials, IMDS, etc.).
type Option func(*options)

// LoadAWSConfig loads AWS SDK v2 config. By default it inherits the shell's
// AWS setup (AWS_PROFILE, shared config, env, IMDS).
func LoadAWSConfig(ctx context.Context, opts ...Option) (awsv2.Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	log.Debugf("opts applied: profile=%s, region=%s", o.profile, o.region)

	var loadOpts []func(*config.LoadOptions) error
	if o.profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(o.profile))
	}
	if o.region != "" {
		loadOpts = append(loadOpts, config.WithRegion(o.region))
	}
	if o.retryer != nil {
		loadOpts = append(loadOpts, config.WithRetryer(o.retryer))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		log.Debugf("config load err: err=%v", err)
		return awsv2.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}
	return cfg, nil
}

// WithProfile sets the shared config profile.
func WithProfile(profile string) Option {
	return func(o *options) { o.profile = profile }
}

// WithRegion sets the region override.
func WithRegion(region string) Option {
	return func(o *options) { o.region = region }
}

// WithRetryer injects a custom retryer; if not set, SDK defaults are used.
func WithRetryer(newRetryer func() awsv2.Retryer) Option {
	return func(o *options) { o.retryer = newRetryer }
}

// NewS3 constructs a v2 S3 client from the provided config.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	return s3v2.NewFromConfig(cfg, optFns...)
}

// WithEndpoint points the client at an S3-compatible store (MinIO, LocalStack)
// using path-style addressing. An empty endpoint leaves the client unchanged.
func WithEndpoint(endpoint string) func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = awsv2.String(endpoint)
		o.UsePathStyle = true
	}
}

// ObjectGetter is the subset of the S3 client used to fetch datasets.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3v2.GetObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.GetObjectOutput, error)
}

// Location is a parsed s3://bucket/key source.
type Location struct {
	Bucket string
	Key    string
}

func (l Location) String() string { return "s3://" + l.Bucket + "/" + l.Key }

// IsURL reports whether source names an S3 object.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "s3://")
}

// ParseURL splits an s3://bucket/key source.
func ParseURL(source string) (Location, error) {
	u, err := url.Parse(source)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %s: %w", ErrBadURL, source, err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return Location{}, fmt.Errorf("%w: %s", ErrBadURL, source)
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Fetch reads the whole object at loc.
func Fetch(ctx context.Context, svc ObjectGetter, loc Location) ([]byte, error) {
	result, err := svc.GetObject(ctx, &s3v2.GetObjectInput{
		Bucket: awsv2.String(loc.Bucket),
		Key:    awsv2.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", loc, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", loc, err)
	}
	log.Debugf("object fetched: loc=%s, bytes=%d", loc, len(data))
	return data, nil
}
