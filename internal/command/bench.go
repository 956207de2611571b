// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/keydiff/internal/batch"
	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
	"github.com/tfctl/keydiff/internal/snapshot"
)

// benchTotals accumulates results across workers.
type benchTotals struct {
	pairs    atomic.Int64
	sections atomic.Int64
	cells    atomic.Int64
	edits    atomic.Int64
}

// benchPair generates pair i from seed, diffs it and checks the plan.
func benchPair(seed uint64, i int, limits snapshot.Limits, totals *benchTotals) error {
	r := snapshot.NewRand(seed + uint64(i))
	oldSections := snapshot.Generate(r, limits)
	newSections := snapshot.Generate(r, limits)
	snapshot.Shuffle(r, newSections)

	oldItems := snapshot.Flatten(oldSections)
	newItems := snapshot.Flatten(newSections)

	changes, err := differ.Diff(oldItems, newItems, differ.WithDuplicatePolicy(differ.FirstWins))
	if err != nil {
		return fmt.Errorf("pair %d: %w", i, err)
	}
	if err := batch.Validate(batch.Plan(changes)); err != nil {
		return fmt.Errorf("pair %d: %w", i, err)
	}

	cells := 0
	for _, s := range oldItems {
		cells += len(s.Cells)
	}
	for _, s := range newItems {
		cells += len(s.Cells)
	}

	totals.pairs.Add(1)
	totals.sections.Add(int64(len(oldItems) + len(newItems)))
	totals.cells.Add(int64(cells))
	totals.edits.Add(int64(changes.Len()))
	return nil
}

// benchCommandAction is the action handler for the "bench" subcommand. It
// diffs --pairs generated snapshot pairs on --workers goroutines.
func benchCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "bench"

	limits := genLimits(cmd)
	seed := genSeed(cmd)
	pairs := cmd.Int("pairs")
	workers := cmd.Int("workers")
	log.Debugf("bench: pairs=%d workers=%d seed=%d limits=%+v", pairs, workers, seed, limits)

	var totals benchTotals
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < pairs; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return benchPair(seed, i, limits, &totals)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	w := writer(cmd)
	fmt.Fprintf(w, "pairs:    %s\n", humanize.Comma(totals.pairs.Load()))
	fmt.Fprintf(w, "sections: %s\n", humanize.Comma(totals.sections.Load()))
	fmt.Fprintf(w, "cells:    %s\n", humanize.Comma(totals.cells.Load()))
	fmt.Fprintf(w, "edits:    %s\n", humanize.Comma(totals.edits.Load()))
	fmt.Fprintf(w, "elapsed:  %s\n", elapsed.Round(time.Microsecond))
	if n := totals.pairs.Load(); n > 0 {
		fmt.Fprintf(w, "per pair: %s\n", (elapsed / time.Duration(n)).Round(time.Nanosecond))
	}
	return nil
}

// benchCommandBuilder constructs the "bench" subcommand.
func benchCommandBuilder(meta meta.Meta) *cli.Command {
	positive := func(value int) error {
		return FlagValidators(value, PositiveValidator)
	}

	return &cli.Command{
		Name:      "bench",
		Usage:     "diff many random snapshot pairs concurrently",
		UsageText: "keydiff bench [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(limitFlags(),
			&cli.IntFlag{
				Name:      "pairs",
				Usage:     "number of snapshot pairs to diff",
				Value:     1000,
				Validator: positive,
			},
			&cli.IntFlag{
				Name:      "workers",
				Usage:     "concurrent workers",
				Value:     runtime.NumCPU(),
				Validator: positive,
			},
		),
		Action: benchCommandAction,
	}
}
