// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the columns of the dataset kind",
		HideDefault: true,
	}
}

func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by the query commands. params[0] is
// the command namespace and params[1] the config file. When both are given,
// flags without a command line value fall back to <ns>.<flag> and then
// <flag> in the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	color := &cli.BoolFlag{
		Name:    "color",
		Aliases: []string{"c"},
		Usage:   "enable colored text output",
		Sources: cli.NewValueSourceChain(cli.EnvVar("ASSETQ_COLOR")),
		Value:   false,
	}
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format (text, json, yaml, raw)",
		Sources: cli.NewValueSourceChain(cli.EnvVar("ASSETQ_OUTPUT")),
		Value:   "text",
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}
	padding := &cli.IntFlag{
		Name:    "padding",
		Aliases: []string{"p"},
		Usage:   "cell padding for text output",
		Sources: cli.NewValueSourceChain(cli.EnvVar("ASSETQ_PADDING")),
		Value:   1,
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}
	titles := &cli.BoolFlag{
		Name:    "titles",
		Aliases: []string{"t"},
		Usage:   "show titles with text output",
		Value:   false,
	}
	workers := &cli.IntFlag{
		Name:    "workers",
		Usage:   "filter with this many workers when greater than 1",
		Sources: cli.NewValueSourceChain(cli.EnvVar("ASSETQ_WORKERS")),
		Value:   1,
		Validator: func(value int) error {
			return FlagValidators(value, NonNegativeValidator)
		},
	}

	if len(params) == 2 && params[1] != "" {
		color.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], color.Name, color.Sources)
		output.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], output.Name, output.Sources)
		padding.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], padding.Name, padding.Sources)
		titles.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], titles.Name, titles.Sources)
		workers.Sources = NameSpacedValueChainFromConfigFile(params[0], params[1], workers.Name, workers.Sources)
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "browse",
			Aliases: []string{"b"},
			Usage:   "browse the results interactively",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "clauses",
			Aliases: []string{"f"},
			Usage:   "YAML, JSON or HCL file of clauses to apply",
		},
		color,
		&cli.StringFlag{
			Name:    "columns",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of columns to add or change (path[:name[:domain[:transform]]])",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:  "now",
			Usage: "reference time for relative clauses (YYYY-MM-DD HH:MM, UTC)",
			Validator: func(value string) error {
				return FlagValidators(value, DateValidator)
			},
		},
		output,
		padding,
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by, - for descending",
		},
		titles,
		&cli.StringSliceFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   "clause to apply: [GROUP[:and|:or]] COLUMN OPERATOR [VALUE], # prefix disables",
		},
		workers,
	}

	return
}

// NameSpacedValueChainFromConfigFile appends namespaced and global config file
// sources for the named flag to chain.
func NameSpacedValueChainFromConfigFile(ns string, path string, name string, chain cli.ValueSourceChain) cli.ValueSourceChain {
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))
	return chain
}

// pathHas checks if the given executable is on the PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
