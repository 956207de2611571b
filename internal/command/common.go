// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/aws"
	"github.com/tfctl/keydiff/internal/cacheutil"
	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
	"github.com/tfctl/keydiff/internal/snapshot"
	"github.com/tfctl/keydiff/internal/util"
)

// document is one loaded snapshot argument.
type document struct {
	Source   string
	Path     string
	Raw      []byte
	Sections []snapshot.Section
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

// writer returns where command output goes.
func writer(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// reader returns where "-" snapshots are read from.
func reader(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}

// snapshotArgs returns exactly two snapshot arguments, old first.
func snapshotArgs(cmd *cli.Command) (string, string, error) {
	args := cmd.Args().Slice()
	if len(args) != 2 {
		return "", "", fmt.Errorf("expected OLD and NEW snapshots, got %d argument(s)", len(args))
	}
	if args[0] == util.Stdin && args[1] == util.Stdin {
		return "", "", errors.New("only one snapshot can be read from stdin")
	}
	return args[0], args[1], nil
}

// loadPair loads the old and new snapshots named by args.
func loadPair(ctx context.Context, cmd *cli.Command, oldArg, newArg string) (document, document, error) {
	oldDoc, err := loadDocument(ctx, cmd, oldArg)
	if err != nil {
		return document{}, document{}, err
	}
	newDoc, err := loadDocument(ctx, cmd, newArg)
	if err != nil {
		return document{}, document{}, err
	}
	return oldDoc, newDoc, nil
}

// loadDocument fetches, decrypts and parses one snapshot argument: a file, "-"
// or an s3:// URL, each optionally followed by ::path.
func loadDocument(ctx context.Context, cmd *cli.Command, arg string) (document, error) {
	var (
		data []byte
		path string
		err  error
	)

	if aws.IsObjectURL(arg) {
		var src string
		src, path, _ = strings.Cut(arg, "::")
		data, err = fetchObject(ctx, cmd, src)
	} else {
		var file string
		file, path, err = util.ParseInput(arg, GetMeta(cmd).StartingDir)
		if err != nil {
			return document{}, fmt.Errorf("failed to resolve snapshot (%s): %w", arg, err)
		}
		data, err = snapshot.Read(file, reader(cmd))
	}
	if err != nil {
		return document{}, err
	}

	if snapshot.IsEncrypted(data) {
		passphrase, err := getPassphrase(cmd)
		if err != nil {
			return document{}, err
		}
		if data, err = snapshot.Decrypt(data, passphrase); err != nil {
			return document{}, fmt.Errorf("failed to decrypt %s: %w", arg, err)
		}
	}

	if path == "" {
		path = cmd.String("path")
	}
	sections, err := snapshot.Parse(data, path)
	if err != nil {
		return document{}, fmt.Errorf("failed to parse %s: %w", arg, err)
	}

	log.Debugf("loaded %s: sections=%d size=%s", arg, len(sections), humanize.Bytes(uint64(len(data))))
	return document{Source: arg, Path: path, Raw: data, Sections: sections}, nil
}

func fetchObject(ctx context.Context, cmd *cli.Command, url string) ([]byte, error) {
	o, err := aws.ParseObjectURL(url)
	if err != nil {
		return nil, err
	}
	client, err := aws.NewClient(ctx, aws.OptionsFromConfig(cmd.String("profile"), cmd.String("region"))...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return aws.FetchObject(ctx, client, o)
}

// getPassphrase returns --passphrase (or KEYDIFF_PASSPHRASE) and otherwise
// prompts for it.
func getPassphrase(cmd *cli.Command) (string, error) {
	if p := cmd.String("passphrase"); p != "" {
		return p, nil
	}
	return GetPassphrase()
}

// diffOptions builds differ options from flags, falling back to the config
// file for settings that were not given on the command line.
func diffOptions(cmd *cli.Command) ([]differ.Option, error) {
	policy, err := differ.ParseDuplicatePolicy(cmd.String("duplicates"))
	if err != nil {
		return nil, err
	}

	empty := cmd.Bool("empty-sections")
	if !cmd.IsSet("empty-sections") {
		empty, _ = config.GetBool("diff.empty_sections", false)
	}

	return []differ.Option{
		differ.WithDuplicatePolicy(policy),
		differ.WithEmptySectionEdits(empty),
	}, nil
}

// computeChanges diffs a loaded pair, honoring --cache and --time.
func computeChanges(cmd *cli.Command, oldDoc, newDoc document) (differ.SectionChanges, error) {
	opts, err := diffOptions(cmd)
	if err != nil {
		return differ.SectionChanges{}, err
	}

	useCache := cmd.Bool("cache")
	key := cacheutil.ResultKey(oldDoc.Raw, newDoc.Raw,
		fmt.Sprintf("%s,paths=%s|%s", differ.Fingerprint(opts...), oldDoc.Path, newDoc.Path))
	if useCache {
		if err := cacheutil.PurgeCache(); err != nil {
			log.WithError(err).Warn("failed to purge cache")
		}
		if changes, ok := cacheutil.ReadResult(key); ok {
			return changes, nil
		}
	}

	var hook differ.Hook
	if cmd.Bool("time") {
		hook = timingHook
	}
	diff := differ.Timed[string](differ.Diff[string], hook)

	changes, err := diff(snapshot.Flatten(oldDoc.Sections), snapshot.Flatten(newDoc.Sections), opts...)
	if err != nil {
		return differ.SectionChanges{}, err
	}

	if useCache {
		if err := cacheutil.WriteResult(key, changes); err != nil {
			log.WithError(err).Warnf("failed to cache result")
		}
	}
	return changes, nil
}

// timingHook reports a timed diff on stderr.
func timingHook(s differ.Stats) {
	fmt.Fprintf(os.Stderr, "diffed %s+%s sections, %s+%s cells in %s: %s edits\n",
		humanize.Comma(int64(s.OldSections)), humanize.Comma(int64(s.NewSections)),
		humanize.Comma(int64(s.OldCells)), humanize.Comma(int64(s.NewCells)),
		s.Elapsed, humanize.Comma(int64(s.Edits)))
}
