// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/batch"
	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/filters"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
	"github.com/tfctl/keydiff/internal/output"
)

// planCommandAction is the action handler for the "plan" subcommand. It diffs
// like "diff" but renders the edits as the ordered steps of one batch update.
func planCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for plan %v", cmd.Args().Slice())

	config.Config.Namespace = "plan"

	oldArg, newArg, err := snapshotArgs(cmd)
	if err != nil {
		return err
	}

	oldDoc, newDoc, err := loadPair(ctx, cmd, oldArg, newArg)
	if err != nil {
		return err
	}

	changes, err := computeChanges(cmd, oldDoc, newDoc)
	if err != nil {
		return err
	}

	steps := batch.Plan(changes)
	if err := batch.Validate(steps); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	if len(steps) == 0 {
		cmd.Metadata["header"] = "Nothing to do."
	} else {
		cmd.Metadata["header"] = fmt.Sprintf("%d steps:", len(steps))
	}

	dataset := filters.FilterDataset(output.PlanDataset(steps), cmd.String("filter"))
	return output.Spit(writer(cmd), cmd, steps, dataset, output.PlanColumns)
}

// planCommandBuilder constructs the "plan" subcommand.
func planCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile, _ := config.File()

	return &cli.Command{
		Name:      "plan",
		Usage:     "ordered batch update steps between two snapshots",
		UsageText: "keydiff plan OLD NEW [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     append(NewGlobalFlags("plan", cfgFile), NewDiffFlags("plan", cfgFile)...),
		Action:    planCommandAction,
	}
}
