// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/meta"
)

// runDiffFlags runs a throwaway command carrying the diff flags.
func runDiffFlags(t *testing.T, args []string, action func(*cli.Command) error) {
	t.Helper()
	isolate(t)
	cmd := &cli.Command{
		Name:     "test",
		Flags:    NewDiffFlags(),
		Metadata: map[string]any{"meta": meta.Meta{}},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return action(cmd)
		},
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"test"}, args...)))
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": "nope"}}))

	m := meta.Meta{StartingDir: "/tmp"}
	assert.Equal(t, m, GetMeta(&cli.Command{Metadata: map[string]any{"meta": m}}))
}

func TestSnapshotArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"two files", []string{"a.json", "b.json"}, false},
		{"one stdin", []string{"-", "b.json"}, false},
		{"both stdin", []string{"-", "-"}, true},
		{"none", nil, true},
		{"three", []string{"a", "b", "c"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runDiffFlags(t, tt.args, func(cmd *cli.Command) error {
				oldArg, newArg, err := snapshotArgs(cmd)
				if tt.wantErr {
					assert.Error(t, err)
					return nil
				}
				require.NoError(t, err)
				assert.Equal(t, tt.args[0], oldArg)
				assert.Equal(t, tt.args[1], newArg)
				return nil
			})
		})
	}
}

func TestDiffOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []differ.Option
	}{
		{
			name: "defaults",
			want: []differ.Option{differ.WithDuplicatePolicy(differ.FailFast), differ.WithEmptySectionEdits(false)},
		},
		{
			name: "first wins",
			args: []string{"--duplicates", "first"},
			want: []differ.Option{differ.WithDuplicatePolicy(differ.FirstWins), differ.WithEmptySectionEdits(false)},
		},
		{
			name: "empty sections",
			args: []string{"--empty-sections"},
			want: []differ.Option{differ.WithDuplicatePolicy(differ.FailFast), differ.WithEmptySectionEdits(true)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runDiffFlags(t, tt.args, func(cmd *cli.Command) error {
				opts, err := diffOptions(cmd)
				require.NoError(t, err)
				assert.Equal(t, differ.Fingerprint(tt.want...), differ.Fingerprint(opts...))
				return nil
			})
		})
	}
}

func TestLoadDocument(t *testing.T) {
	runDiffFlags(t, nil, func(cmd *cli.Command) error {
		doc, err := loadDocument(context.Background(), cmd, "testdata/wrapped.yaml::snapshot.sections")
		require.NoError(t, err)
		assert.Equal(t, "snapshot.sections", doc.Path)
		require.Len(t, doc.Sections, 2)
		assert.Equal(t, "A", doc.Sections[0].ID)

		_, err = loadDocument(context.Background(), cmd, "testdata/wrapped.yaml::nothing.here")
		assert.Error(t, err)
		return nil
	})
}

func TestLoadDocument_PathFlag(t *testing.T) {
	runDiffFlags(t, []string{"--path", "snapshot.sections"}, func(cmd *cli.Command) error {
		doc, err := loadDocument(context.Background(), cmd, "testdata/wrapped.yaml")
		require.NoError(t, err)
		assert.Len(t, doc.Sections, 2)
		return nil
	})
}

func TestGetPassphrase_Flag(t *testing.T) {
	runDiffFlags(t, []string{"--passphrase", "s3cret"}, func(cmd *cli.Command) error {
		p, err := getPassphrase(cmd)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", p)
		return nil
	})
}

func TestListCandidates(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	files := map[string]time.Duration{
		"old.json":  -2 * time.Hour,
		"new.yaml":  -1 * time.Hour,
		"mid.yml":   -90 * time.Minute,
		"notes.txt": 0,
	}
	for name, age := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("[]"), 0o600))
		require.NoError(t, os.Chtimes(path, now.Add(age), now.Add(age)))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o700))

	got, err := listCandidates(dir)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "new.yaml", filepath.Base(got[0].Path))
	assert.Equal(t, "mid.yml", filepath.Base(got[1].Path))
	assert.Equal(t, "old.json", filepath.Base(got[2].Path))

	_, err = listCandidates(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
