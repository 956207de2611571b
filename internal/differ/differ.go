// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/apex/log"

	"github.com/tfctl/keydiff/internal/keyed"
)

// Diff computes the edits that turn the old sections into the new ones.
// Sections and cells are matched by key; Index only tells where an element
// sits in its own snapshot. The inputs are not modified and the result shares
// no memory with them.
//
// Per section key, in first-seen order over old then new:
//   - present in both at the same index: nothing if content-equal, otherwise
//     the cells are diffed (see WithEmptySectionEdits for sections where one
//     side has no cells).
//   - present in both at different indices: a move if content-equal, otherwise
//     a delete at the old index and an insert at the new one.
//   - only in old: a delete. Only in new: an insert.
//
// Cell edits are reconciled before returning, see Reconcile.
func Diff[V comparable](oldItems, newItems []keyed.Section[V], opts ...Option) (SectionChanges, error) {
	o := newOptions(opts...)

	if err := checkDuplicates("old", oldItems, o.duplicates); err != nil {
		return SectionChanges{}, err
	}
	if err := checkDuplicates("new", newItems, o.duplicates); err != nil {
		return SectionChanges{}, err
	}

	oldSections := keyed.IndexSections(oldItems)
	newSections := keyed.IndexSections(newItems)

	var (
		changes SectionChanges
		cells   CellChanges
	)

	for _, key := range keyed.UnionKeys(oldSections.Keys(), newSections.Keys()) {
		oldSection, inOld := oldSections.ByKey(key)
		newSection, inNew := newSections.ByKey(key)

		switch {
		case inOld && inNew && oldSection.Index == newSection.Index:
			if oldSection.Same(newSection) {
				continue
			}
			switch {
			case len(oldSection.Cells) > 0 && len(newSection.Cells) > 0:
				diffCells(oldSection, newSection, &cells)
			case !o.emptySectionEdits:
				log.Debugf("section %q at %d changed between empty and non-empty; no edits recorded", key, oldSection.Index)
			case len(oldSection.Cells) == 0:
				changes.Inserts = append(changes.Inserts, newSection.Index)
			default:
				changes.Deletes = append(changes.Deletes, oldSection.Index)
			}

		case inOld && inNew:
			if oldSection.Same(newSection) {
				changes.Moves = append(changes.Moves, SectionMove{From: oldSection.Index, To: newSection.Index})
			} else {
				changes.Deletes = append(changes.Deletes, oldSection.Index)
				changes.Inserts = append(changes.Inserts, newSection.Index)
			}

		case inOld:
			changes.Deletes = append(changes.Deletes, oldSection.Index)

		default:
			changes.Inserts = append(changes.Inserts, newSection.Index)
		}
	}

	changes.Cells = Reconcile(cells)

	log.Debugf("diff: sections +%d -%d ~%d, cells %d",
		len(changes.Inserts), len(changes.Deletes), len(changes.Moves), changes.Cells.Len())

	return changes, nil
}

// checkDuplicates enforces key uniqueness per container under FailFast and
// logs what will be ignored under FirstWins.
func checkDuplicates[V comparable](side string, sections []keyed.Section[V], policy DuplicatePolicy) error {
	report := func(e *DuplicateKeyError) error {
		if policy == FailFast {
			return e
		}
		log.Warnf("%v; using first occurrence", e)
		return nil
	}

	if dups := keyed.IndexSections(sections).Duplicates(); len(dups) > 0 {
		if err := report(&DuplicateKeyError{Side: side, Level: LevelSection, Key: dups[0]}); err != nil {
			return err
		}
	}

	for _, s := range sections {
		if dups := keyed.IndexCells(s.Cells).Duplicates(); len(dups) > 0 {
			if err := report(&DuplicateKeyError{Side: side, Level: LevelCell, Section: s.Key, Key: dups[0]}); err != nil {
				return err
			}
		}
	}

	return nil
}
