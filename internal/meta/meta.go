// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"time"

	"github.com/tfctl/assetq/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context, the reference instant of the filtering pass,
// and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Now         time.Time
	StartingDir string
}
