// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/keydiff/internal/keyed"
)

func readTestdata(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		path      string
		wantIDs   []string
		wantCells []int
	}{
		{
			name:      "json array",
			file:      "initial.json",
			wantIDs:   []string{"1", "2", "3"},
			wantCells: []int{2, 2, 2},
		},
		{
			name:      "yaml array",
			file:      "initial.yaml",
			wantIDs:   []string{"1", "2", "3"},
			wantCells: []int{2, 2, 2},
		},
		{
			name:      "json with path",
			file:      "nested.json",
			path:      "data.table",
			wantIDs:   []string{"1"},
			wantCells: []int{1},
		},
		{
			name:      "yaml object with sections member",
			file:      "wrapped.yaml",
			wantIDs:   []string{"a", "b"},
			wantCells: []int{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := Parse(readTestdata(t, tt.file), tt.path)
			require.NoError(t, err)
			require.Len(t, sections, len(tt.wantIDs))
			for i, s := range sections {
				assert.Equal(t, tt.wantIDs[i], s.ID)
				assert.Len(t, s.Cells, tt.wantCells[i])
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		_, err := Parse(readTestdata(t, "nested.json"), "data.nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("object without sections", func(t *testing.T) {
		_, err := Parse(readTestdata(t, "nested.json"), "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := Parse([]byte(`{"sections": "nope"}`), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected an array")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Parse([]byte("- id: [unterminated"), "")
		assert.Error(t, err)
	})
}

func TestParse_ScalarKeys(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "yaml", doc: "- id: 1\n  cells:\n    - id: 2\n      value: 5\n    - id: on\n      value: true\n"},
		{name: "json", doc: `[{"id":1,"cells":[{"id":2,"value":5},{"id":"on","value":true}]}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := Parse([]byte(tt.doc), "")
			require.NoError(t, err)
			require.Len(t, sections, 1)
			assert.Equal(t, "1", sections[0].ID)
			require.Len(t, sections[0].Cells, 2)
			assert.Equal(t, Item{ID: "2", Value: "5"}, sections[0].Cells[0])
			assert.Equal(t, "true", sections[0].Cells[1].Value)
		})
	}
}

func TestParse_BadShapes(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "section not an object", doc: `[1]`, wantErr: "section 0: expected an object"},
		{name: "cells not an array", doc: `[{"id":"a","cells":"x"}]`, wantErr: "cells must be an array"},
		{name: "cell not an object", doc: `[{"id":"a","cells":[3]}]`, wantErr: "section 0 cell 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), "")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "null", "[]"} {
		sections, err := Parse([]byte(doc), "")
		require.NoError(t, err, "doc %q", doc)
		assert.Empty(t, sections)
	}
}

func TestToJSON(t *testing.T) {
	js := []byte(`[{"id":"x"}]`)
	out, err := ToJSON(js)
	require.NoError(t, err)
	assert.Equal(t, js, out)

	out, err = ToJSON(readTestdata(t, "wrapped.yaml"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"sections":[{"id":"a","cells":[]},{"id":"b","cells":[{"id":"k","value":"v"}]}]}`, string(out))
}

func TestFlatten(t *testing.T) {
	sections, err := Parse(readTestdata(t, "initial.json"), "")
	require.NoError(t, err)

	flat := Flatten(sections)

	require.Len(t, flat, 3)
	assert.Equal(t, keyed.Section[string]{
		Key:   "2",
		Index: 1,
		Cells: []keyed.Cell[string]{
			{Key: "key3", Value: "value3", Index: 0},
			{Key: "key4", Value: "value4", Index: 1},
		},
	}, flat[1])

	assert.Empty(t, Flatten(nil))
}

func TestRead(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		data, err := Read(filepath.Join("testdata", "initial.json"), nil)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	})

	t.Run("stdin", func(t *testing.T) {
		data, err := Read("-", strings.NewReader("[]"))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})

	t.Run("missing", func(t *testing.T) {
		_, err := Read(filepath.Join(t.TempDir(), "nope.json"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("directory", func(t *testing.T) {
		_, err := Read(t.TempDir(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "directory")
	})
}

func TestMarshal_RoundTripsThroughParse(t *testing.T) {
	in := []Section{{ID: "s", Cells: []Item{{ID: "k", Value: "v"}}}}

	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			data, err := Marshal(in, format)
			require.NoError(t, err)
			out, err := Parse(data, "")
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}

	_, err := Marshal(in, "toml")
	assert.Error(t, err)
}
