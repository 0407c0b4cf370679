// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws loads AWS SDK v2 configuration and fetches dataset objects from
// S3 or an S3-compatible store for s3:// sources.
package aws
