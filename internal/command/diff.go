// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/filters"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
	"github.com/tfctl/keydiff/internal/output"
	"github.com/tfctl/keydiff/internal/snapshot"
)

// diffCommandAction is the action handler for the "diff" subcommand. It loads
// the OLD and NEW snapshots, computes the keyed edit set and renders it.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for diff %v", cmd.Args().Slice())

	config.Config.Namespace = "diff"

	oldArg, newArg, err := resolvePair(cmd)
	if err != nil || oldArg == "" {
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

	w := writer(cmd)

	if cmd.Bool("raw-diff") {
		if err := writeRawDiff(cmd, oldDoc, newDoc); err != nil {
			return err
		}
	}

	if changes.IsEmpty() {
		cmd.Metadata["header"] = "No differences."
	} else {
		cmd.Metadata["header"] = fmt.Sprintf("%s edits from %s to %s:",
			humanize.Comma(int64(changes.Len())), oldArg, newArg)
	}

	dataset := filters.FilterDataset(output.ChangeDataset(changes), cmd.String("filter"))
	return output.Spit(w, cmd, changes, dataset, output.ChangeColumns)
}

// resolvePair returns the snapshots named on the command line or, with
// --pick, the two chosen interactively. An empty oldArg with a nil error means
// the picker was abandoned.
func resolvePair(cmd *cli.Command) (string, string, error) {
	dir := cmd.String("pick")
	if dir == "" {
		return snapshotArgs(cmd)
	}

	candidates, err := listCandidates(dir)
	if err != nil {
		return "", "", err
	}
	if len(candidates) < 2 {
		return "", "", fmt.Errorf("need at least two snapshots in %s, found %d", dir, len(candidates))
	}

	selected := differ.SelectSnapshots(candidates)
	if len(selected) != 2 {
		return "", "", nil
	}
	return selected[0].Path, selected[1].Path, nil
}

// listCandidates returns the JSON and YAML files in dir, newest first.
func listCandidates(dir string) ([]differ.Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var candidates []differ.Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, differ.Candidate{
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ModTime.After(candidates[j].ModTime)
	})
	return candidates, nil
}

// writeRawDiff prints the unkeyed document delta ahead of the edit set.
func writeRawDiff(cmd *cli.Command, oldDoc, newDoc document) error {
	oldJSON, err := snapshot.ToJSON(oldDoc.Raw)
	if err != nil {
		return err
	}
	newJSON, err := snapshot.ToJSON(newDoc.Raw)
	if err != nil {
		return err
	}
	var filter []string
	for key := range strings.SplitSeq(cmd.String("raw-filter"), ",") {
		if key = strings.TrimSpace(key); key != "" {
			filter = append(filter, key)
		}
	}

	_, err = differ.RawDiff(oldJSON, newJSON, filter, cmd.Bool("color"), writer(cmd))
	return err
}

// diffCommandBuilder constructs the "diff" subcommand.
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile, _ := config.File()

	return &cli.Command{
		Name:      "diff",
		Usage:     "keyed edit set between two snapshots",
		UsageText: "keydiff diff OLD NEW [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(append(NewGlobalFlags("diff", cfgFile), NewDiffFlags("diff", cfgFile)...),
			&cli.StringFlag{
				Name:  "pick",
				Usage: "choose OLD and NEW interactively from the snapshots in this directory",
			},
			&cli.BoolFlag{
				Name:  "raw-diff",
				Usage: "also show the unkeyed document delta",
			},
			&cli.StringFlag{
				Name:  "raw-filter",
				Usage: "comma-separated top-level keys to hide from --raw-diff",
			},
		),
		Action: diffCommandAction,
	}
}
