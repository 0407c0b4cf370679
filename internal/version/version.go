// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other assetq packages to avoid import cycles.

package version

import "runtime/debug"

// Version is the module version, or "dev" for local builds.
var Version = "dev"

// Revision is the short VCS revision the binary was built from, if known.
var Revision = ""

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			Revision = s.Value[:7]
		}
	}
}

// String returns the version followed by the revision when there is one.
func String() string {
	if Revision == "" {
		return Version
	}
	return Version + " (" + Revision + ")"
}
