// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/dataset"
	"github.com/tfctl/assetq/internal/log"
	"github.com/tfctl/assetq/internal/meta"
	"github.com/tfctl/assetq/internal/output"
)

func cqCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "cq") {
		return nil
	}

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("usage: assetq cq KIND (one of %v)", dataset.Kinds())
	}
	kind, err := dataset.ParseKind(cmd.Args().First())
	if err != nil {
		return err
	}
	log.Debugf("cq: kind=%s", kind)

	al, err := BuildAttrs(cmd, kind)
	if err != nil {
		return err
	}
	return output.DumpSchema(writer(cmd), al)
}

func cqCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "cq",
		Usage:     "column query: list the columns of a dataset kind and their operators",
		UsageText: "assetq cq KIND [--columns spec]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			newTLDRFlag(),
			&cli.StringFlag{
				Name:    "columns",
				Aliases: []string{"a"},
				Usage:   "comma-separated list of columns to add or change",
			},
		},
		Action: cqCommandAction,
	}
}

func opsCommandAction(ctx context.Context, cmd *cli.Command) error {
	if ShortCircuitTLDR(ctx, cmd, "ops") {
		return nil
	}
	output.DumpOperators(writer(cmd))
	return nil
}

func opsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "ops",
		Usage:     "list the clause operators",
		UsageText: "assetq ops",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{newTLDRFlag()},
		Action: opsCommandAction,
	}
}
