// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cacheutil keeps downloaded datasets on disk so repeated queries
// against the same remote source do not refetch it.
package cacheutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/tfctl/assetq/internal/log"
)

const (
	// EnvDir overrides the base cache directory.
	EnvDir = "ASSETQ_CACHE_DIR"
	// EnvEnabled disables the cache when set to "0" or "false".
	EnvEnabled = "ASSETQ_CACHE"
)

// Entry is a cached dataset. Key is the clear-text key, Path the hashed file.
type Entry struct {
	Key     string
	Path    string
	Data    []byte
	ModTime time.Time
}

// Dir resolves the base cache directory: ASSETQ_CACHE_DIR when set, else
// os.UserCacheDir()/assetq. ok is false when neither resolves.
func Dir() (string, bool) {
	if c := os.Getenv(EnvDir); c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "assetq"), true
	}
	return "", false
}

// Enabled returns true unless ASSETQ_CACHE explicitly disables it.
func Enabled() bool {
	v := os.Getenv(EnvEnabled)
	return v != "0" && v != "false"
}

// EntryPath returns where the entry for key beneath subdirs lives and whether
// a file exists there.
func EntryPath(subdirs []string, key string) (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	p := filepath.Join(append(append([]string{base}, subdirs...), encodeKey(key))...)
	_, err := os.Stat(p)
	return p, err == nil
}

// Read returns the cached entry for key if caching is enabled and the entry
// is no older than maxAge. A zero maxAge accepts any age.
func Read(subdirs []string, key string, maxAge time.Duration) (*Entry, bool) {
	if !Enabled() {
		return nil, false
	}
	p, ok := EntryPath(subdirs, key)
	if !ok {
		return nil, false
	}

	info, err := os.Stat(p)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && time.Since(info.ModTime()) > maxAge {
		log.Debugf("cache stale: key=%s, age=%s", key, time.Since(info.ModTime()))
		return nil, false
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	log.Debugf("cache hit: key=%s", key)
	return &Entry{Key: key, Path: p, Data: data, ModTime: info.ModTime()}, true
}

// Write stores data for key beneath subdirs, creating directories as needed.
// It is a no-op when caching is disabled.
func Write(subdirs []string, key string, data []byte) error {
	if !Enabled() {
		return nil
	}
	p, ok := EntryPath(subdirs, key)
	if !ok {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	log.Debugf("cache write: key=%s, bytes=%d", key, len(data))
	return nil
}

// Purge removes cached files older than maxAge. A non-positive maxAge or an
// unresolvable cache dir is a no-op.
func Purge(maxAge time.Duration) error {
	if maxAge <= 0 {
		return nil
	}
	base, ok := Dir()
	if !ok {
		return nil
	}

	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if time.Since(info.ModTime()) > maxAge {
			if err := os.Remove(path); err != nil {
				log.WithError(err).Warnf("failed to remove cache file %s", path)
			} else {
				log.Debugf("removed cache file %s", path)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return nil
}

func encodeKey(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}
