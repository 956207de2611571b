// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package batch

import (
	"fmt"

	"github.com/tfctl/keydiff/internal/differ"
)

// Kind is the type of a batch step. The declaration order is the order in
// which a renderer must apply them.
type Kind int

const (
	SectionDelete Kind = iota
	SectionInsert
	CellReload
	CellInsert
	CellDelete
	CellMove
	SectionMove
)

var kindNames = [...]string{
	SectionDelete: "section-delete",
	SectionInsert: "section-insert",
	CellReload:    "cell-reload",
	CellInsert:    "cell-insert",
	CellDelete:    "cell-delete",
	CellMove:      "cell-move",
	SectionMove:   "section-move",
}

// Kinds lists every kind in application order.
var Kinds = []Kind{SectionDelete, SectionInsert, CellReload, CellInsert, CellDelete, CellMove, SectionMove}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsSection reports whether the step addresses a whole section, in which case
// only the Section fields of At and To are meaningful.
func (k Kind) IsSection() bool {
	return k == SectionDelete || k == SectionInsert || k == SectionMove
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Step is a single renderer operation. To is set only for moves.
type Step struct {
	Kind Kind             `json:"kind" yaml:"kind"`
	At   differ.Position  `json:"at" yaml:"at"`
	To   *differ.Position `json:"to,omitempty" yaml:"to,omitempty"`
}

func (s Step) String() string {
	at, to := s.At.String(), ""
	if s.Kind.IsSection() {
		at = fmt.Sprint(s.At.Section)
		if s.To != nil {
			to = fmt.Sprint(s.To.Section)
		}
	} else if s.To != nil {
		to = s.To.String()
	}
	if to != "" {
		return fmt.Sprintf("%s %s -> %s", s.Kind, at, to)
	}
	return fmt.Sprintf("%s %s", s.Kind, at)
}

// Plan orders the edits for a single batch update: section deletes, section
// inserts, cell reloads, cell inserts, cell deletes, cell moves and finally
// section moves. Within a kind the edit set's order is kept.
func Plan(c differ.SectionChanges) []Step {
	steps := make([]Step, 0, c.Len())

	for _, s := range c.Deletes {
		steps = append(steps, Step{Kind: SectionDelete, At: differ.Position{Section: s}})
	}
	for _, s := range c.Inserts {
		steps = append(steps, Step{Kind: SectionInsert, At: differ.Position{Section: s}})
	}
	for _, p := range c.Cells.Reloads {
		steps = append(steps, Step{Kind: CellReload, At: p})
	}
	for _, p := range c.Cells.Inserts {
		steps = append(steps, Step{Kind: CellInsert, At: p})
	}
	for _, p := range c.Cells.Deletes {
		steps = append(steps, Step{Kind: CellDelete, At: p})
	}
	for _, m := range c.Cells.Moves {
		to := m.To
		steps = append(steps, Step{Kind: CellMove, At: m.From, To: &to})
	}
	for _, m := range c.Moves {
		to := differ.Position{Section: m.To}
		steps = append(steps, Step{Kind: SectionMove, At: differ.Position{Section: m.From}, To: &to})
	}

	return steps
}

// Counts tallies steps per kind.
func Counts(steps []Step) map[Kind]int {
	counts := make(map[Kind]int, len(Kinds))
	for _, s := range steps {
		counts[s.Kind]++
	}
	return counts
}

// Validate checks that steps follow the application order and that moves,
// and only moves, carry a destination.
func Validate(steps []Step) error {
	for i, s := range steps {
		if i > 0 && s.Kind < steps[i-1].Kind {
			return fmt.Errorf("step %d (%s) follows %s", i, s.Kind, steps[i-1].Kind)
		}
		isMove := s.Kind == CellMove || s.Kind == SectionMove
		if isMove != (s.To != nil) {
			return fmt.Errorf("step %d (%s): destination mismatch", i, s.Kind)
		}
	}
	return nil
}
