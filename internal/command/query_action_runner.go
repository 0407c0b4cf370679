// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/assetq/internal/browse"
	"github.com/tfctl/assetq/internal/dataset"
	"github.com/tfctl/assetq/internal/filters"
	"github.com/tfctl/assetq/internal/log"
	"github.com/tfctl/assetq/internal/output"
	"github.com/tfctl/assetq/internal/source"
)

// newLoader is swapped by tests that feed stdin.
var newLoader = source.NewLoader

// QueryActionRunner encapsulates the query action shared by the aq, oq and
// spq commands. Only the dataset kind differs between them.
type QueryActionRunner struct {
	CommandName string
	Kind        dataset.Kind
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(
	ctx context.Context,
	cmd *cli.Command,
) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	if len(m.Args) > 1 {
		log.Debugf("Executing action for %v", m.Args[1:])
	}

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}

	// Step 3: Columns, which are the schema the clauses are checked against.
	al, err := BuildAttrs(cmd, qar.Kind)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())
	if done, err := DumpSchemaIfRequested(cmd, al); done {
		return err
	}
	table, err := dataset.Table(al)
	if err != nil {
		return err
	}

	// Step 4: Clauses. They are compiled before any data is read so a bad
	// clause fails fast.
	src, sets, err := splitArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}
	now := ReferenceTime(cmd)
	cs, err := BuildClauses(cmd, now, sets)
	if err != nil {
		return err
	}
	pass, err := filters.NewPass(table, cs, filters.WithNow(now))
	if err != nil {
		return err
	}
	log.Debugf("pass: now=%s, where=%s", pass.Now().Format(filters.DateLayout), pass.Predicate())

	// Step 5: Fetch and filter.
	data, err := newLoader().Load(ctx, src)
	if err != nil {
		return err
	}
	rows, err := dataset.Decode(qar.Kind, data)
	if err != nil {
		return err
	}
	total := len(rows)

	rows, err = filterRows(ctx, pass, rows, cmd.Int("workers"))
	if err != nil {
		return err
	}
	log.Debugf("filtered: kept=%d, total=%d", len(rows), total)

	if err := output.SortRows(table, rows, cmd.String("sort")); err != nil {
		return err
	}

	// Step 6: Emit.
	if cmd.Bool("browse") {
		return browse.Run(browse.View{
			Table:    table,
			Attrs:    al,
			Rows:     rows,
			Now:      pass.Now(),
			Total:    total,
			Describe: pass.Predicate().String(),
		})
	}

	opts := output.Options{
		Format:  cmd.String("output"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
		Now:     pass.Now(),
	}
	if opts.Titles {
		opts.Footer = fmt.Sprintf("%d of %d rows", len(rows), total)
	}
	records := output.Project(table, al, rows, pass.Now())
	return output.Render(writer(cmd), records, al, opts)
}

// filterRows runs the pass sequentially or, with more than one worker, in
// parallel.
func filterRows(ctx context.Context, pass *filters.Pass, rows []gjson.Result, workers int) ([]gjson.Result, error) {
	if workers > 1 {
		return filters.FilterParallel(ctx, pass, rows, workers)
	}
	return filters.Filter(pass, rows), nil
}

// NewQueryActionRunner creates a QueryActionRunner for a dataset kind.
func NewQueryActionRunner(commandName string, kind dataset.Kind) *QueryActionRunner {
	return &QueryActionRunner{
		CommandName: commandName,
		Kind:        kind,
	}
}
