// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/keydiff/internal/keyed"
)

// diffCells appends the cell edits between two versions of one section to
// acc. Both versions are sorted by cell index first. Edits for cells found in
// both versions are qualified by the shared section index; a cell only in old
// is qualified by the old section index and a cell only in new by the new one.
func diffCells[V comparable](oldSection, newSection keyed.Section[V], acc *CellChanges) {
	oldCells := keyed.IndexCells(keyed.SortedCells(oldSection.Cells))
	newCells := keyed.IndexCells(keyed.SortedCells(newSection.Cells))

	section := oldSection.Index

	for _, key := range keyed.UnionKeys(oldCells.Keys(), newCells.Keys()) {
		oldCell, inOld := oldCells.ByKey(key)
		newCell, inNew := newCells.ByKey(key)

		switch {
		case inOld && inNew && oldCell.Index == newCell.Index:
			if !oldCell.Same(newCell) {
				acc.Reloads = append(acc.Reloads, Position{Section: section, Row: oldCell.Index})
			}

		case inOld && inNew:
			from := Position{Section: section, Row: oldCell.Index}
			to := Position{Section: section, Row: newCell.Index}
			if oldCell.Same(newCell) {
				acc.Moves = append(acc.Moves, Move{From: from, To: to})
			} else {
				// Changed and relocated: never a move.
				acc.Deletes = append(acc.Deletes, from)
				acc.Inserts = append(acc.Inserts, to)
			}

		case inOld:
			acc.Deletes = append(acc.Deletes, Position{Section: oldSection.Index, Row: oldCell.Index})

		default:
			acc.Inserts = append(acc.Inserts, Position{Section: newSection.Index, Row: newCell.Index})
		}
	}
}
