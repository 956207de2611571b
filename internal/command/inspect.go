// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/keydiff/internal/command/inspect"
	"github.com/tfctl/keydiff/internal/config"
	"github.com/tfctl/keydiff/internal/log"
	"github.com/tfctl/keydiff/internal/meta"
)

const maxHistory = 1000

// inspectCommandAction is the action handler for the "inspect" subcommand. It
// diffs two snapshots and opens an interactive console over the result.
func inspectCommandAction(ctx context.Context, cmd *cli.Command) error {
	log.Debugf("Executing action for inspect %v", cmd.Args().Slice())

	config.Config.Namespace = "inspect"

	oldArg, newArg, err := snapshotArgs(cmd)
	if err != nil {
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

	session, err := inspect.NewSession(oldDoc.Sections, newDoc.Sections, changes)
	if err != nil {
		return err
	}

	p := tea.NewProgram(initialInspectModel(session, historyFile()))
	_, err = p.Run()
	return err
}

// inspectModel is the bubbletea model of the inspect console.
type inspectModel struct {
	input   textinput.Model
	session *inspect.Session
	// history spans sessions; entries pairs this session's queries with
	// their output.
	history     []string
	histIndex   int
	histFile    string
	banner      []string
	entries     []string
	results     []string
	promptStyle lipgloss.Style
}

func initialInspectModel(session *inspect.Session, histFile string) inspectModel {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 2048
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	return inspectModel{
		input:     ti,
		session:   session,
		history:   loadHistory(histFile),
		histIndex: -1,
		histFile:  histFile,
		banner: []string{
			fmt.Sprintf("Diff loaded. %d old sections, %d new sections, %d edits.",
				len(session.Old), len(session.New), session.Changes.Len()),
			"Type 'help' for syntax, 'exit' or Ctrl+C to quit.",
		},
		promptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#623CE4")),
	}
}

func (m inspectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := strings.TrimSpace(m.input.Value())
			m.input.SetValue("")
			if entry == "" {
				return m, nil
			}
			if entry == "exit" || entry == "quit" {
				return m, tea.Quit
			}

			var result string
			if entry == "help" {
				result = inspectHelp
			} else {
				result = m.query(entry)
			}

			m.history = append(m.history, entry)
			m.histIndex = -1
			m.entries = append(m.entries, entry)
			m.results = append(m.results, result)
			saveHistory(m.histFile, m.history)
			return m, nil

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m inspectModel) View() string {
	prompt := m.promptStyle.Render("> ")

	lines := append([]string{}, m.banner...)
	for i, entry := range m.entries {
		lines = append(lines, prompt+entry, m.results[i])
	}
	lines = append(lines, prompt+m.input.View())

	return strings.Join(lines, "\n")
}

// query runs one console query and returns its output.
func (m inspectModel) query(q string) string {
	var sb strings.Builder
	m.session.ProcessQuery(&sb, q)
	if sb.Len() == 0 {
		return "No results found."
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

const inspectHelp = `Query syntax:
  Summaries
     sections                         - Every section key with its status
     counts                           - Plan step counts per kind
     plan                             - The ordered batch update steps
     section KEY                      - Cells of KEY in both snapshots

  JSON output (queries starting with '.')
     .changes.cells.moves             - Cell moves as JSON
     .old.0.cells                     - Cells of the first old section
     .plan.#                          - Number of plan steps

  Text output (queries not starting with '.')
     new.#.id                         - New section keys
     changes.sections.inserts         - Inserted section positions

  Expressions (queries starting with '/' or wrapped in parentheses)
     /length(new)                     - Number of new sections
     /keys(changes.cells)             - Cell change kinds
     (upper(old[0].id))               - First old section key, upper cased

  Navigation:
     ↑/↓ arrows                       - Navigate command history
     Ctrl+C                           - Exit`

// historyFile returns the path to the inspect history file.
func historyFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".keydiff_history"
	}
	return filepath.Join(homeDir, ".keydiff_history")
}

func loadHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			history = append(history, line)
		}
	}

	return history
}

// saveHistory writes the last maxHistory entries. Failures are logged and
// otherwise ignored.
func saveHistory(filename string, history []string) {
	start := 0
	if len(history) > maxHistory {
		start = len(history) - maxHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		log.WithError(err).Debugf("failed to save history")
		return
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := start; i < len(history); i++ {
		fmt.Fprintln(w, history[i])
	}
	w.Flush()
}

// inspectCommandBuilder constructs the "inspect" subcommand.
func inspectCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile, _ := config.File()

	return &cli.Command{
		Name:      "inspect",
		Usage:     "interactive console over a diff",
		UsageText: "keydiff inspect OLD NEW [options]",
		Metadata:  map[string]any{"meta": meta},
		Flags:     NewDiffFlags("inspect", cfgFile),
		Action:    inspectCommandAction,
	}
}
