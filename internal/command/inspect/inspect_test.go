// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package inspect

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/snapshot"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	oldSections := []snapshot.Section{
		{ID: "S0", Cells: []snapshot.Item{{ID: "a", Value: "1"}, {ID: "b", Value: "2"}}},
		{ID: "S1", Cells: []snapshot.Item{{ID: "x", Value: "1"}}},
	}
	newSections := []snapshot.Section{
		{ID: "S1", Cells: []snapshot.Item{{ID: "x", Value: "1"}}},
		{ID: "S0", Cells: []snapshot.Item{{ID: "b", Value: "2"}, {ID: "a", Value: "1"}}},
		{ID: "S2", Cells: []snapshot.Item{{ID: "z", Value: "9"}}},
	}

	changes, err := differ.Diff(snapshot.Flatten(oldSections), snapshot.Flatten(newSections))
	require.NoError(t, err)

	s, err := NewSession(oldSections, newSections, changes)
	require.NoError(t, err)
	return s
}

func TestSections(t *testing.T) {
	s := newTestSession(t)

	assert.Equal(t, []SectionStatus{
		{Key: "S0", Status: "changed", OldIndex: 0, NewIndex: 1},
		{Key: "S1", Status: "moved", OldIndex: 1, NewIndex: 0},
		{Key: "S2", Status: "added", OldIndex: -1, NewIndex: 2},
	}, s.Sections())
}

func TestSections_Removed(t *testing.T) {
	s, err := NewSession([]snapshot.Section{{ID: "gone"}}, nil, differ.SectionChanges{Deletes: []int{0}})
	require.NoError(t, err)

	assert.Equal(t, []SectionStatus{{Key: "gone", Status: "removed", OldIndex: 0, NewIndex: -1}}, s.Sections())
}

func TestProcessQuery(t *testing.T) {
	s := newTestSession(t)

	tests := []struct {
		name     string
		query    string
		want     string
		contains []string
	}{
		{
			name:     "sections",
			query:    "sections",
			contains: []string{"changed  S0 (0 -> 1)", "moved    S1 (1 -> 0)", "added    S2 (- -> 2)"},
		},
		{
			name:     "section present on one side",
			query:    "section S2",
			contains: []string{"old: absent", "new: 1 cells", "z"},
		},
		{
			name:  "section missing",
			query: "section nope",
			want:  "section \"nope\" not found\n",
		},
		{
			name:     "plan",
			query:    "plan",
			contains: []string{"section-insert 2"},
		},
		{
			name:     "counts",
			query:    "counts",
			contains: []string{"section-insert", "total"},
		},
		{
			name:  "function with slash",
			query: "/length(new)",
			want:  "3\n",
		},
		{
			name:  "function by parens",
			query: "length(old)",
			want:  "2\n",
		},
		{
			name:  "function over session path",
			query: "/upper(new[2].id)",
			want:  "S2\n",
		},
		{
			name:  "empty edit list is a list",
			query: "/length(changes.cells.deletes) >= 0",
			want:  "true\n",
		},
		{
			name:     "function error",
			query:    "/nosuch(1)",
			contains: []string{"Error"},
		},
		{
			name:     "json path",
			query:    ".new.2",
			contains: []string{`"id": "S2"`},
		},
		{
			name:  "text path over array",
			query: "new.#.id",
			want:  "S1\nS0\nS2\n",
		},
		{
			name:  "missing path prints nothing",
			query: "no.such.path",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s.ProcessQuery(&buf, tt.query)

			if tt.contains == nil {
				assert.Equal(t, tt.want, buf.String())
			}
			for _, c := range tt.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

func TestHasBalancedParens(t *testing.T) {
	assert.True(t, hasBalancedParens("length(old)"))
	assert.True(t, hasBalancedParens("max(length(old), 1)"))
	assert.False(t, hasBalancedParens("sections"))
	assert.False(t, hasBalancedParens("length(old"))
}

func TestFormatCtyValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "null"},
		{true, "true"},
		{float64(3), "3"},
		{1.5, "1.5"},
		{"s", "s"},
		{[]interface{}{"a", float64(1)}, `["a",1]`},
		{map[string]interface{}{"k": "v"}, `{"k":"v"}`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatCtyValue(convertToCtyValue(tt.in)))
	}
}
