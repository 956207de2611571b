// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"fmt"
	"math/rand/v2"
)

// Limits bounds a generated snapshot. Each is an exclusive upper bound on a
// random draw: a snapshot gets between 1 and Sections sections, each section
// between 1 and Cells cells, and each value is drawn from Values choices.
type Limits struct {
	Sections int `yaml:"sections"`
	Cells    int `yaml:"cells"`
	Values   int `yaml:"values"`
}

// DefaultLimits are the bounds used when none are configured.
func DefaultLimits() Limits {
	return Limits{Sections: 5, Cells: 10, Values: 20}
}

// Generate builds a random snapshot. Section keys are "Section N", cell keys
// "keyN" and values "value N", so two snapshots from the same limits share
// most keys and differ in length and values, which exercises every kind of
// edit.
func Generate(r *rand.Rand, l Limits) []Section {
	l = l.normalized()

	nSections := r.IntN(l.Sections) + 1
	sections := make([]Section, 0, nSections)

	for s := 0; s < nSections; s++ {
		nCells := r.IntN(l.Cells) + 1
		cells := make([]Item, 0, nCells)
		for c := 0; c < nCells; c++ {
			cells = append(cells, Item{
				ID:    fmt.Sprintf("key%d", c),
				Value: fmt.Sprintf("value %d", r.IntN(l.Values)),
			})
		}
		sections = append(sections, Section{ID: fmt.Sprintf("Section %d", s), Cells: cells})
	}

	return sections
}

// Shuffle permutes the order of sections and of the cells inside each section
// in place. Applied to one side of a generated pair it produces moves.
func Shuffle(r *rand.Rand, sections []Section) {
	r.Shuffle(len(sections), func(i, j int) {
		sections[i], sections[j] = sections[j], sections[i]
	})
	for _, s := range sections {
		cells := s.Cells
		r.Shuffle(len(cells), func(i, j int) {
			cells[i], cells[j] = cells[j], cells[i]
		})
	}
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (l Limits) normalized() Limits {
	d := DefaultLimits()
	if l.Sections <= 0 {
		l.Sections = d.Sections
	}
	if l.Cells <= 0 {
		l.Cells = d.Cells
	}
	if l.Values <= 0 {
		l.Values = d.Values
	}
	return l
}
