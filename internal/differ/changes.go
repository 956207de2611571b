// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "fmt"

// Position is a section-qualified cell position.
type Position struct {
	Section int `json:"section" yaml:"section"`
	Row     int `json:"row" yaml:"row"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d.%d", p.Section, p.Row)
}

// Move relocates an unchanged cell.
type Move struct {
	From Position `json:"from" yaml:"from"`
	To   Position `json:"to" yaml:"to"`
}

// SectionMove relocates an unchanged section.
type SectionMove struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// CellChanges is the set of cell level edits. Each list keeps the order in
// which edits were discovered. Deletes and the From side of moves use old
// snapshot positions; inserts and the To side of moves use new ones. Reloads
// address a position that is the same in both.
type CellChanges struct {
	Inserts []Position `json:"inserts" yaml:"inserts"`
	Deletes []Position `json:"deletes" yaml:"deletes"`
	Reloads []Position `json:"reloads" yaml:"reloads"`
	Moves   []Move     `json:"moves" yaml:"moves"`
}

// SectionChanges is the result of a diff: section level edits plus every cell
// level edit across all sections.
type SectionChanges struct {
	Inserts []int         `json:"inserts" yaml:"inserts"`
	Deletes []int         `json:"deletes" yaml:"deletes"`
	Moves   []SectionMove `json:"moves" yaml:"moves"`
	Cells   CellChanges   `json:"cells" yaml:"cells"`
}

// Len returns the number of cell edits.
func (c CellChanges) Len() int {
	return len(c.Inserts) + len(c.Deletes) + len(c.Reloads) + len(c.Moves)
}

// IsEmpty reports whether there are no cell edits.
func (c CellChanges) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the number of section and cell edits.
func (s SectionChanges) Len() int {
	return len(s.Inserts) + len(s.Deletes) + len(s.Moves) + s.Cells.Len()
}

// IsEmpty reports whether the two snapshots were structurally identical.
func (s SectionChanges) IsEmpty() bool {
	return s.Len() == 0
}

// Clone returns a deep copy that shares no backing arrays with c.
func (c CellChanges) Clone() CellChanges {
	return CellChanges{
		Inserts: append([]Position(nil), c.Inserts...),
		Deletes: append([]Position(nil), c.Deletes...),
		Reloads: append([]Position(nil), c.Reloads...),
		Moves:   append([]Move(nil), c.Moves...),
	}
}

// Clone returns a deep copy that shares no backing arrays with s.
func (s SectionChanges) Clone() SectionChanges {
	return SectionChanges{
		Inserts: append([]int(nil), s.Inserts...),
		Deletes: append([]int(nil), s.Deletes...),
		Moves:   append([]SectionMove(nil), s.Moves...),
		Cells:   s.Cells.Clone(),
	}
}

// Equal compares inserts, deletes and reloads as sets. Moves are compared as
// two independent sequences, the From positions and the To positions, so the
// pairing between them is not checked.
func (c CellChanges) Equal(other CellChanges) bool {
	if !sameSet(c.Inserts, other.Inserts) ||
		!sameSet(c.Deletes, other.Deletes) ||
		!sameSet(c.Reloads, other.Reloads) {
		return false
	}
	if len(c.Moves) != len(other.Moves) {
		return false
	}
	for i := range c.Moves {
		if c.Moves[i].From != other.Moves[i].From {
			return false
		}
	}
	for i := range c.Moves {
		if c.Moves[i].To != other.Moves[i].To {
			return false
		}
	}
	return true
}

// Equal compares two results the same way CellChanges.Equal does, with the
// section inserts and deletes treated as sets and section moves compared by
// their From and To sequences.
func (s SectionChanges) Equal(other SectionChanges) bool {
	if !sameSet(s.Inserts, other.Inserts) || !sameSet(s.Deletes, other.Deletes) {
		return false
	}
	if len(s.Moves) != len(other.Moves) {
		return false
	}
	for i := range s.Moves {
		if s.Moves[i].From != other.Moves[i].From {
			return false
		}
	}
	for i := range s.Moves {
		if s.Moves[i].To != other.Moves[i].To {
			return false
		}
	}
	return s.Cells.Equal(other.Cells)
}

func sameSet[T comparable](a, b []T) bool {
	as := make(map[T]struct{}, len(a))
	for _, v := range a {
		as[v] = struct{}{}
	}
	bs := make(map[T]struct{}, len(b))
	for _, v := range b {
		bs[v] = struct{}{}
	}
	if len(as) != len(bs) {
		return false
	}
	for v := range as {
		if _, ok := bs[v]; !ok {
			return false
		}
	}
	return true
}
