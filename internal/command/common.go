// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/attrs"
	"github.com/tfctl/assetq/internal/clauses"
	"github.com/tfctl/assetq/internal/dataset"
	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
	"github.com/tfctl/assetq/internal/meta"
	"github.com/tfctl/assetq/internal/output"
)

// BuildAttrs constructs the AttrList of a dataset kind, applies --columns and
// --local, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, kind dataset.Kind) (attrs.AttrList, error) {
	al := dataset.Schema(kind)
	if extras := cmd.String("columns"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, err
		}
	}
	if cmd.Bool("local") {
		spec := "t"
		if g, ok := al.Lookup(filters.AllColumns); ok {
			spec = g.TransformSpec + spec
		}
		if err := al.Set(filters.AllColumns + ":::" + spec); err != nil {
			return nil, err
		}
	}
	if err := al.SetGlobalTransformSpec(); err != nil {
		return nil, err
	}
	return al, nil
}

// BuildClauses collects the clauses of --clauses, each @set and --where, in
// that order.
func BuildClauses(cmd *cli.Command, now time.Time, sets []string) ([]filters.Clause, error) {
	b := clauses.NewBuilder(now)

	if path := cmd.String("clauses"); path != "" {
		if err := b.AddFile(path); err != nil {
			return nil, err
		}
	}
	for _, set := range sets {
		if err := b.AddSet(set); err != nil {
			return nil, err
		}
	}
	if err := b.AddWhere(cmd.StringSlice("where")...); err != nil {
		return nil, err
	}

	return b.Clauses(), nil
}

// DumpSchemaIfRequested writes the columns of al to the command's writer when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, al attrs.AttrList) (bool, error) {
	if cmd.Bool("schema") {
		return true, output.DumpSchema(writer(cmd), al)
	}
	return false, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ReferenceTime returns --now when given, otherwise the instant captured when
// the app started.
func ReferenceTime(cmd *cli.Command) time.Time {
	if s := cmd.String("now"); s != "" {
		if t, ok := filters.ParseDate(s); ok {
			return t
		}
	}
	if now := GetMeta(cmd).Now; !now.IsZero() {
		return now
	}
	return time.Now()
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr assetq <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "assetq", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// splitArgs separates the dataset source from @set arguments.
func splitArgs(args []string) (src string, sets []string, err error) {
	for _, a := range args {
		if strings.HasPrefix(a, "@") {
			if len(a) == 1 {
				return "", nil, fmt.Errorf("empty clause set name")
			}
			sets = append(sets, a[1:])
			continue
		}
		if src != "" {
			return "", nil, fmt.Errorf("more than one source: %s and %s", src, a)
		}
		src = a
	}
	if src == "" {
		return "", nil, fmt.Errorf("no dataset source (a path, - for stdin or s3://bucket/key)")
	}
	log.Debugf("args split: src=%s, sets=%v", src, sets)
	return src, sets, nil
}

// writer returns where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if cmd != nil {
		if w := cmd.Root().Writer; w != nil {
			return w
		}
	}
	return os.Stdout
}
