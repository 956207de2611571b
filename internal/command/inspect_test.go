// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/keydiff/internal/command/inspect"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/snapshot"
)

func newTestModel(t *testing.T) (inspectModel, string) {
	t.Helper()
	oldSections := []snapshot.Section{{ID: "A", Cells: []snapshot.Item{{ID: "a1", Value: "1"}}}}
	newSections := []snapshot.Section{
		{ID: "A", Cells: []snapshot.Item{{ID: "a1", Value: "1"}}},
		{ID: "B", Cells: []snapshot.Item{{ID: "b1", Value: "1"}}},
	}
	changes, err := differ.Diff(snapshot.Flatten(oldSections), snapshot.Flatten(newSections))
	require.NoError(t, err)

	session, err := inspect.NewSession(oldSections, newSections, changes)
	require.NoError(t, err)

	hist := filepath.Join(t.TempDir(), "history")
	return initialInspectModel(session, hist), hist
}

func typeLine(m inspectModel, line string) inspectModel {
	m.input.SetValue(line)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(inspectModel)
}

func TestInspectModel_Query(t *testing.T) {
	m, hist := newTestModel(t)
	assert.Contains(t, m.View(), "1 edits")

	m = typeLine(m, "sections")
	require.Len(t, m.results, 1)
	assert.Contains(t, m.results[0], "B")
	assert.Contains(t, m.results[0], "added")

	m = typeLine(m, "help")
	assert.Equal(t, inspectHelp, m.results[1])

	m = typeLine(m, "   ")
	assert.Len(t, m.results, 2)

	data, err := os.ReadFile(hist)
	require.NoError(t, err)
	assert.Equal(t, "sections\nhelp\n", string(data))
	assert.Contains(t, m.View(), "> sections")
}

func TestInspectModel_NoResults(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeLine(m, "no.such.path")
	assert.Equal(t, "No results found.", m.results[0])
}

func TestInspectModel_History(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeLine(m, "counts")
	m = typeLine(m, "plan")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(inspectModel)
	assert.Equal(t, "plan", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(inspectModel)
	assert.Equal(t, "counts", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(inspectModel)
	assert.Equal(t, "plan", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(inspectModel)
	assert.Equal(t, "", m.input.Value())
}

func TestInspectModel_Quit(t *testing.T) {
	for _, key := range []tea.KeyMsg{{Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		m, _ := newTestModel(t)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}

	m, _ := newTestModel(t)
	m.input.SetValue("exit")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestHistory_KeepsLastEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	var history []string
	for i := 0; i < maxHistory+5; i++ {
		history = append(history, fmt.Sprintf("q%d", i))
	}
	saveHistory(path, history)

	got := loadHistory(path)
	require.Len(t, got, maxHistory)
	assert.Equal(t, "q5", got[0])
	assert.True(t, strings.HasPrefix(got[len(got)-1], "q1004"))
}
