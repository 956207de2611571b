// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

// Reconcile folds every position that is both deleted and inserted into a
// single reload: a row vanished from a position and a row appeared at the
// same position, which a position addressed view renders as an in place
// update. Moves are left alone. The input is not modified. Reconcile is
// idempotent.
func Reconcile(c CellChanges) CellChanges {
	inserted := make(map[Position]struct{}, len(c.Inserts))
	for _, p := range c.Inserts {
		inserted[p] = struct{}{}
	}

	both := make(map[Position]struct{})
	for _, p := range c.Deletes {
		if _, ok := inserted[p]; ok {
			both[p] = struct{}{}
		}
	}

	out := CellChanges{
		Reloads: append([]Position(nil), c.Reloads...),
		Moves:   append([]Move(nil), c.Moves...),
	}

	reloaded := make(map[Position]struct{}, len(c.Reloads))
	for _, p := range c.Reloads {
		reloaded[p] = struct{}{}
	}

	for _, p := range c.Deletes {
		if _, ok := both[p]; !ok {
			out.Deletes = append(out.Deletes, p)
			continue
		}
		if _, ok := reloaded[p]; !ok {
			reloaded[p] = struct{}{}
			out.Reloads = append(out.Reloads, p)
		}
	}

	for _, p := range c.Inserts {
		if _, ok := both[p]; !ok {
			out.Inserts = append(out.Inserts, p)
		}
	}

	return out
}
