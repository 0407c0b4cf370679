// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/config"
	"github.com/tfctl/assetq/internal/dataset"
	"github.com/tfctl/assetq/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the assetq
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.SetNamespace(ns)

	// A missing config file is fine; every flag has a default.
	cfg, _ := config.Load() //nolint
	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		Now:         time.Now(),
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "assetq",
		Usage: "filter asset, market order and stockpile datasets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "assetq version info",
				HideDefault: true,
			},
		},
		// --where values routinely contain commas.
		DisableSliceFlagSeparator: true,
	}

	app.Commands = append(app.Commands,
		aqCommandBuilder(meta),
		oqCommandBuilder(meta),
		spqCommandBuilder(meta),
		cqCommandBuilder(meta),
		opsCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

func aqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "aq",
		Usage:     "asset query",
		UsageText: "assetq aq SOURCE [@set...] [flags]",
		Kind:      dataset.Assets,
		Meta:      meta,
	}).Build()
}

func oqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "oq",
		Usage:     "market order query",
		UsageText: "assetq oq SOURCE [@set...] [flags]",
		Kind:      dataset.Orders,
		Meta:      meta,
	}).Build()
}

func spqCommandBuilder(meta meta.Meta) *cli.Command {
	return (&QueryCommandBuilder{
		Name:      "spq",
		Usage:     "stockpile query",
		UsageText: "assetq spq SOURCE [@set...] [flags]",
		Kind:      dataset.Stockpiles,
		Meta:      meta,
	}).Build()
}
