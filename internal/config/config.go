// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	// EnvFile names the env variable holding an explicit config file path.
	EnvFile = "ASSETQ_CFG_FILE"
	// FileName is the config file looked up in os.UserConfigDir.
	FileName = "assetq.yaml"
)

// ErrNotFound is returned by getters for keys missing from the config.
var ErrNotFound = errors.New("config key not found")

// Type is the in-memory representation of the loaded configuration.
//
// Fields:
//   - Source: absolute path of the YAML file loaded.
//   - Namespace: optional dot-prefixed keyspace used to prefer namespaced
//     lookups (e.g. "aq.padding" over "padding").
//   - Data: raw key/value tree unmarshaled from YAML.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config holds the global, lazily-initialized configuration instance.
var Config Type

// init attempts to load configuration at process start. Errors are ignored so
// the application can still run without a config file.
func init() {
	_, _ = Load()
}

// SetNamespace makes subsequent lookups prefer keys under ns.
func SetNamespace(ns string) {
	Config.Namespace = ns
}

// GetInt returns the integer value for the given dotted key path. A single
// defaultValue may be provided and is returned when the key is missing.
// YAML numbers may decode as int, int64, or float64; common cases are handled.
func GetInt(key string, defaultValue ...int) (int, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return 0, err
	}

	switch v := val.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("%s: value is not an int", key)
	}
}

// GetBool returns the boolean value for the given dotted key path.
func GetBool(key string, defaultValue ...bool) (bool, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return false, err
	}

	b, ok := val.(bool)
	if !ok {
		return false, fmt.Errorf("%s: value is not a bool", key)
	}
	return b, nil
}

// GetString returns the string value for the given dotted key path. If the key
// is not found and a single defaultValue is provided, the default is returned.
// Returns an error if the value exists but is not a string.
func GetString(key string, defaultValue ...string) (string, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return "", err
	}

	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s: value is not a string", key)
	}

	return s, nil
}

// GetStringSlice returns the string slice value for the given dotted key path.
// If the key is not found and a single default slice is provided, that default
// is returned. A scalar string is a one-element slice.
func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	val, err := Config.lookup(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		return nil, err
	}

	switch v := val.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []interface{}:
		result := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: slice element is not a string", key)
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%s: value is not a slice", key)
	}
}

// Keys returns the sorted child keys of the map at key, or nil.
func Keys(key string) []string {
	val, err := Config.lookup(key)
	if err != nil {
		return nil
	}
	m, ok := val.(map[string]interface{})
	if !ok {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Load reads the YAML configuration file and populates the global Config. The
// current Namespace survives a reload.
//
// Returns the loaded Type or an error if the file could not be located or
// parsed.
func Load() (Type, error) {
	path, err := getConfigFile()
	if err != nil {
		return Type{}, err
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return Type{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// lookup loads the config on first use, then resolves key.
func (cfg *Type) lookup(key string) (any, error) {
	if len(cfg.Data) == 0 && cfg == &Config {
		_, _ = Load()
	}
	return cfg.get(key)
}

// get traverses the configuration tree using a dotted key path (e.g.
// "aq.sets.minerals"). If Namespace is set, a namespaced candidate key is
// attempted first (Namespace + "." + kspec), then the unnamespaced key.
// Returns the raw value (any) if found.
func (cfg *Type) get(kspec string) (any, error) {
	candidateKeys := []string{kspec}
	if cfg.Namespace != "" {
		candidateKeys = []string{cfg.Namespace + "." + kspec, kspec}
	}

	for _, key := range candidateKeys {
		var current interface{} = cfg.Data

		success := true
		for _, part := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				success = false
				break
			}
			current, ok = m[part]
			if !ok {
				success = false
				break
			}
		}

		if success {
			return current, nil
		}
	}

	return nil, fmt.Errorf("%w: tried %v", ErrNotFound, candidateKeys)
}

// getConfigFile returns the absolute path to the YAML config file. If the
// ASSETQ_CFG_FILE environment variable is set, it is treated as the full path
// to the config file. Otherwise, the OS-specific user configuration directory
// returned by os.UserConfigDir is used with the filename "assetq.yaml". The
// file must exist and not be a directory.
func getConfigFile() (string, error) {
	if cfgPath := os.Getenv(EnvFile); cfgPath != "" {
		if fileInfo, err := os.Stat(cfgPath); err == nil {
			if !fileInfo.IsDir() {
				log.Debugf("using config file from %s: %s", EnvFile, cfgPath)
				return cfgPath, nil
			}
			return "", fmt.Errorf("%s points to a directory: %s", EnvFile, cfgPath)
		}
		return "", fmt.Errorf("config file not found at %s path: %s", EnvFile, cfgPath)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	file := filepath.Join(dir, FileName)
	if fileInfo, err := os.Stat(file); err == nil {
		if !fileInfo.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}

	return "", fmt.Errorf("no config file found in standard locations")
}
