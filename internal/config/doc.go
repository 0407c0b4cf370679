// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for assetq's user
// configuration. The configuration is a YAML document located by
// ASSETQ_CFG_FILE or in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/assetq.yaml or $HOME/.config/assetq.yaml
//   - Windows: %APPDATA%/assetq.yaml
//
// Keys are dotted paths. When a Namespace is set (the running command, e.g.
// "aq"), "aq.padding" is preferred over "padding". Named clause sets live
// under "<command>.sets.<name>" or "sets.<name>".
package config
