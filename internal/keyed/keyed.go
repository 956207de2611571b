// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package keyed

import "sort"

// Cell is a single keyed row within a Section.
type Cell[V comparable] struct {
	Key   string `json:"key" yaml:"key"`
	Value V      `json:"value" yaml:"value"`
	Index int    `json:"index" yaml:"index"`
}

// Same reports whether two cells are content-equal. Index is not compared.
func (c Cell[V]) Same(other Cell[V]) bool {
	return c.Key == other.Key && c.Value == other.Value
}

// Section is a keyed, ordered group of cells.
type Section[V comparable] struct {
	Key   string    `json:"key" yaml:"key"`
	Cells []Cell[V] `json:"cells" yaml:"cells"`
	Index int       `json:"index" yaml:"index"`
}

// Same reports whether two sections are content-equal: same key and the same
// ordered cells, where each cell must match on key, value and index. The
// section's own Index is not compared.
func (s Section[V]) Same(other Section[V]) bool {
	if s.Key != other.Key || len(s.Cells) != len(other.Cells) {
		return false
	}
	for i := range s.Cells {
		if s.Cells[i] != other.Cells[i] {
			return false
		}
	}
	return true
}

// SortedCells returns a copy of cells ordered by ascending Index. Cells that
// share an Index keep their relative order. The input is not modified.
func SortedCells[V comparable](cells []Cell[V]) []Cell[V] {
	sorted := make([]Cell[V], len(cells))
	copy(sorted, cells)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Index < sorted[j].Index
	})
	return sorted
}

// IndexSections builds a lookup over sections keyed by Section.Key and
// Section.Index.
func IndexSections[V comparable](sections []Section[V]) *Index[Section[V]] {
	return NewIndex(sections,
		func(s Section[V]) string { return s.Key },
		func(s Section[V]) int { return s.Index })
}

// IndexCells builds a lookup over cells keyed by Cell.Key and Cell.Index.
func IndexCells[V comparable](cells []Cell[V]) *Index[Cell[V]] {
	return NewIndex(cells,
		func(c Cell[V]) string { return c.Key },
		func(c Cell[V]) int { return c.Index })
}
