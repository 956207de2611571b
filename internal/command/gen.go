// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
	"github.com/tfctl/keydiff/internal/snapshot"
)

// genCommandAction is the action handler for the "gen" subcommand. It writes
// one random snapshot document.
func genCommandAction(ctx context.Context, cmd *cli.Command) error {
	config.Config.Namespace = "gen"

	limits := genLimits(cmd)
	seed := genSeed(cmd)
	log.Debugf("generating snapshot: limits=%+v seed=%d", limits, seed)

	sections := snapshot.Generate(snapshot.NewRand(seed), limits)
	if cmd.Bool("shuffle") {
		snapshot.Shuffle(snapshot.NewRand(seed+1), sections)
	}

	data, err := snapshot.Marshal(sections, cmd.String("output"))
	if err != nil {
		return err
	}

	if p := cmd.String("passphrase"); p != "" {
		if data, err = snapshot.Encrypt(data, p, cmd.Int("iterations"), rand.Reader); err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
	}

	w := writer(cmd)
	if _, err := w.Write(data); err != nil {
		return err
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		fmt.Fprintln(w)
	}
	return nil
}

// genLimits resolves generator limits from flags, then the gen.* config keys,
// then the defaults.
func genLimits(cmd *cli.Command) snapshot.Limits {
	d := snapshot.DefaultLimits()
	get := func(name string, def int) int {
		if cmd.IsSet(name) {
			return cmd.Int(name)
		}
		v, _ := config.GetInt("gen."+name, def)
		return v
	}
	return snapshot.Limits{
		Sections: get("sections", d.Sections),
		Cells:    get("cells", d.Cells),
		Values:   get("values", d.Values),
	}
}

// genSeed returns --seed, or a time based seed when it is zero.
func genSeed(cmd *cli.Command) uint64 {
	if s := cmd.Int("seed"); s != 0 {
		return uint64(s)
	}
	return uint64(time.Now().UnixNano())
}

// limitFlags are the generator bounds shared by gen and bench.
func limitFlags() []cli.Flag {
	d := snapshot.DefaultLimits()
	positive := func(value int) error {
		return FlagValidators(value, PositiveValidator)
	}
	return []cli.Flag{
		&cli.IntFlag{
			Name:      "sections",
			Usage:     "upper bound on sections per snapshot",
			Value:     d.Sections,
			Validator: positive,
		},
		&cli.IntFlag{
			Name:      "cells",
			Usage:     "upper bound on cells per section",
			Value:     d.Cells,
			Validator: positive,
		},
		&cli.IntFlag{
			Name:      "values",
			Usage:     "number of distinct cell values",
			Value:     d.Values,
			Validator: positive,
		},
		&cli.IntFlag{
			Name:  "seed",
			Usage: "random seed, 0 for time based",
		},
	}
}

// genCommandBuilder constructs the "gen" subcommand.
func genCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "write a random snapshot",
		UsageText: "keydiff gen [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags: append(limitFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "snapshot format, json or yaml",
				Value:   "json",
				Validator: func(value string) error {
					return FlagValidators(value, SnapshotFormatValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "shuffle",
				Usage: "shuffle section and cell order",
			},
			&cli.StringFlag{
				Name:    "passphrase",
				Usage:   "encrypt the snapshot with this passphrase",
				Sources: cli.NewValueSourceChain(cli.EnvVar("KEYDIFF_PASSPHRASE")),
			},
			&cli.IntFlag{
				Name:  "iterations",
				Usage: "pbkdf2 iterations for --passphrase",
				Value: snapshot.DefaultIterations,
			},
		),
		Action: genCommandAction,
	}
}
