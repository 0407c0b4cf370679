// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/dataset"
	"github.com/tfctl/assetq/internal/meta"
)

// QueryCommandBuilder is a helper that constructs a cli.Command for query
// subcommands (aq, oq, spq) using a consistent pattern. The builder wires
// metadata, adds tldr/schema flags, applies global flags sourced from the
// config file, sets up validators and runs a QueryActionRunner for Kind.
type QueryCommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	Kind      dataset.Kind
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	runner := NewQueryActionRunner(qcb.Name, qcb.Kind)
	return &cli.Command{
		Name:      qcb.Name,
		Usage:     qcb.Usage,
		UsageText: qcb.UsageText,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			newTLDRFlag(),
			newSchemaFlag(),
		}, NewGlobalFlags(qcb.Name, qcb.Meta.Config.Source)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: runner.Run,
	}
}
