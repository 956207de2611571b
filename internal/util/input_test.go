// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) (input string, base string)
		wantFile string
		wantPath string
		wantErr  bool
		errIs    error
	}{
		{
			name: "absolute_file_no_path",
			setup: func(t *testing.T) (string, string) {
				return writeFile(t, t.TempDir(), "old.json"), ""
			},
			wantFile: "old.json",
		},
		{
			name: "absolute_file_with_path",
			setup: func(t *testing.T) (string, string) {
				return writeFile(t, t.TempDir(), "old.json") + "::data.table", ""
			},
			wantFile: "old.json",
			wantPath: "data.table",
		},
		{
			name: "relative_to_base",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				writeFile(t, dir, "new.yaml")
				return "new.yaml::sections", dir
			},
			wantFile: "new.yaml",
			wantPath: "sections",
		},
		{
			name: "relative_to_cwd",
			setup: func(t *testing.T) (string, string) {
				dir := t.TempDir()
				writeFile(t, dir, "snap.json")
				oldCwd, err := os.Getwd()
				if err != nil {
					t.Fatalf("failed to get cwd: %v", err)
				}
				if err := os.Chdir(dir); err != nil {
					t.Fatalf("failed to chdir: %v", err)
				}
				t.Cleanup(func() {
					_ = os.Chdir(oldCwd)
				})
				return "snap.json", ""
			},
			wantFile: "snap.json",
		},
		{
			name: "stdin",
			setup: func(t *testing.T) (string, string) {
				return "-", ""
			},
			wantFile: "-",
		},
		{
			name: "stdin_with_path",
			setup: func(t *testing.T) (string, string) {
				return "-::items", ""
			},
			wantFile: "-",
			wantPath: "items",
		},
		{
			name: "nonexistent_file",
			setup: func(t *testing.T) (string, string) {
				return "/nonexistent/path/old.json", ""
			},
			wantErr: true,
			errIs:   os.ErrNotExist,
		},
		{
			name: "directory_not_file",
			setup: func(t *testing.T) (string, string) {
				return t.TempDir(), ""
			},
			wantErr: true,
			errIs:   os.ErrInvalid,
		},
		{
			name: "empty_input",
			setup: func(t *testing.T) (string, string) {
				return "", ""
			},
			wantErr: true,
		},
		{
			name: "multiple_colons_separator",
			setup: func(t *testing.T) (string, string) {
				return writeFile(t, t.TempDir(), "old.json") + "::a::b", ""
			},
			wantFile: "old.json",
			wantPath: "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, base := tt.setup(t)

			file, path, err := ParseInput(input, base)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			if tt.wantFile == Stdin {
				assert.Equal(t, Stdin, file)
				return
			}
			assert.True(t, filepath.IsAbs(file))
			assert.Equal(t, tt.wantFile, filepath.Base(file))
		})
	}
}

func writeFile(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("[]"), 0600); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return p
}
