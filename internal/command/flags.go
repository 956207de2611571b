// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the output flags shared by the commands that render
// results. params[0] is the command namespace and params[1] the config file;
// when both are given, values may also come from the config file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	output := &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output format",
		Value:   "text",
		Sources: cli.NewValueSourceChain(cli.EnvVar("KEYDIFF_OUTPUT")),
		Validator: func(value string) error {
			return FlagValidators(value, OutputValidator)
		},
	}

	padding := &cli.IntFlag{
		Name:    "padding",
		Usage:   "spaces between text output columns",
		Value:   2,
		Sources: cli.NewValueSourceChain(),
	}

	if len(params) == 2 {
		output = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], output)
		padding.Sources.Chain = append(padding.Sources.Chain, configSources(params[0], padding.Name, params[1])...)
	}

	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to text rows",
		},
		output,
		padding,
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of columns to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	return
}

// NewDiffFlags returns the flags that control loading and diffing a pair of
// snapshots. params are as for NewGlobalFlags.
func NewDiffFlags(params ...string) []cli.Flag {
	duplicates := &cli.StringFlag{
		Name:    "duplicates",
		Usage:   "duplicate key policy, fail or first",
		Value:   "fail",
		Sources: cli.NewValueSourceChain(cli.EnvVar("KEYDIFF_DUPLICATES")),
		Validator: func(value string) error {
			return FlagValidators(value, DuplicatesValidator)
		},
	}
	path := &cli.StringFlag{
		Name:    "path",
		Aliases: []string{"p"},
		Usage:   "gjson path to the sections array inside each document",
		Sources: cli.NewValueSourceChain(),
	}

	if len(params) == 2 {
		duplicates = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], duplicates)
		path = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], path)
	}

	return append([]cli.Flag{
		duplicates,
		path,
		&cli.BoolFlag{
			Name:  "empty-sections",
			Usage: "report sections that gain their first or lose their last cell as inserted or deleted",
		},
		&cli.BoolFlag{
			Name:  "cache",
			Usage: "reuse a cached result for identical inputs",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("KEYDIFF_RESULT_CACHE"),
			),
		},
		&cli.BoolFlag{
			Name:  "time",
			Usage: "log how long the diff took",
		},
	}, NewSourceFlags()...)
}

// NewSourceFlags returns the flags used to fetch and decrypt snapshot
// documents.
func NewSourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "passphrase",
			Usage:   "passphrase for encrypted snapshots",
			Sources: cli.NewValueSourceChain(cli.EnvVar("KEYDIFF_PASSPHRASE")),
		},
		&cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS profile for s3:// snapshots",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region for s3:// snapshots",
		},
	}
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	flag.Sources.Chain = append(flag.Sources.Chain, configSources(ns, flag.Name, path)...)
	return flag
}

// configSources returns the <ns>.<name> and <name> keys of the config file at
// path as value sources.
func configSources(ns string, name string, path string) []cli.ValueSource {
	return []cli.ValueSource{
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	}
}
