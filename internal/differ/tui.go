// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Candidate is a snapshot document offered by the picker.
type Candidate struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// SelectSnapshots lets the user pick two candidates, old first. It returns nil
// if the picker was abandoned.
func SelectSnapshots(items []Candidate) []Candidate {
	p := tea.NewProgram(model{items: items})
	m, err := p.Run()
	if err != nil {
		return nil
	}
	return m.(model).selected
}

type model struct {
	items    []Candidate
	cursor   int
	selected []Candidate
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.selected = nil
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) == 0 {
			break
		}
		current := m.items[m.cursor]
		if i := indexOf(m.selected, current); i >= 0 {
			m.selected = append(m.selected[:i:i], m.selected[i+1:]...)
		} else if len(m.selected) < 2 {
			m.selected = append(m.selected, current)
		}
	case "enter":
		if len(m.selected) == 2 {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	s := "Select the old snapshot, then the new one:\n\n"
	for i, c := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		switch indexOf(m.selected, c) {
		case 0:
			mark = "o"
		case 1:
			mark = "n"
		}

		s += fmt.Sprintf("%s [%s] %-40s %8s %s\n", cursor, mark, c.Path,
			humanize.Bytes(uint64(c.Size)), humanize.Time(c.ModTime))
	}
	return s + "\nSPACE: toggle, ENTER: go, Q/ESCAPE: quit\n"
}

func indexOf(selected []Candidate, c Candidate) int {
	for i, v := range selected {
		if v.Path == c.Path {
			return i
		}
	}
	return -1
}
