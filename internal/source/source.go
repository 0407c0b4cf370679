// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package source reads raw dataset documents from a local file, stdin ("-")
// or an s3://bucket/key object. S3 objects are cached on disk.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tfctl/assetq/internal/aws"
	"github.com/tfctl/assetq/internal/cacheutil"
	"github.com/tfctl/assetq/internal/config"
	"github.com/tfctl/assetq/internal/log"
)

// Stdin is the source name that reads the document from standard input.
const Stdin = "-"

// Loader reads dataset sources. The zero value reads files only; stdin and
// S3 need Stdin and S3 set.
type Loader struct {
	Stdin io.Reader
	// S3 returns the client used for s3:// sources. It is called at most
	// once per Load and only for S3 sources.
	S3 func(ctx context.Context) (aws.ObjectGetter, error)
	// MaxAge bounds how old a cached S3 object may be. Zero accepts any age.
	MaxAge time.Duration
}

// NewLoader returns a Loader wired to os.Stdin and an S3 client built from
// the aws.* config keys.
func NewLoader() *Loader {
	hours, _ := config.GetInt("cache.hours")
	return &Loader{
		Stdin:  os.Stdin,
		S3:     DefaultS3,
		MaxAge: time.Duration(hours) * time.Hour,
	}
}

// DefaultS3 builds an S3 client from the shell's AWS setup overridden by the
// aws.profile, aws.region and aws.endpoint config keys.
func DefaultS3(ctx context.Context) (aws.ObjectGetter, error) {
	var opts []aws.Option
	if p, _ := config.GetString("aws.profile"); p != "" {
		opts = append(opts, aws.WithProfile(p))
	}
	if r, _ := config.GetString("aws.region"); r != "" {
		opts = append(opts, aws.WithRegion(r))
	}
	cfg, err := aws.LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	endpoint, _ := config.GetString("aws.endpoint")
	return aws.NewS3(cfg, aws.WithEndpoint(endpoint)), nil
}

// Load returns the raw document named by src.
func (l *Loader) Load(ctx context.Context, src string) ([]byte, error) {
	switch {
	case src == "":
		return nil, fmt.Errorf("no dataset source")
	case src == Stdin:
		if l.Stdin == nil {
			return nil, fmt.Errorf("stdin is not available")
		}
		data, err := io.ReadAll(l.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	case aws.IsURL(src):
		return l.loadS3(ctx, src)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	log.Debugf("file read: path=%s, bytes=%d", src, len(data))
	return data, nil
}

func (l *Loader) loadS3(ctx context.Context, src string) ([]byte, error) {
	loc, err := aws.ParseURL(src)
	if err != nil {
		return nil, err
	}

	sub := []string{"s3", loc.Bucket}
	if entry, ok := cacheutil.Read(sub, loc.Key, l.MaxAge); ok {
		return entry.Data, nil
	}

	if l.S3 == nil {
		return nil, fmt.Errorf("no s3 client for %s", src)
	}
	svc, err := l.S3(ctx)
	if err != nil {
		return nil, err
	}
	data, err := aws.Fetch(ctx, svc, loc)
	if err != nil {
		return nil, err
	}

	if err := cacheutil.Write(sub, loc.Key, data); err != nil {
		log.WithError(err).Warnf("error writing to cache")
	}
	return data, nil
}
