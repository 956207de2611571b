// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strconv"

	"github.com/tfctl/keydiff/internal/batch"
	"github.com/tfctl/keydiff/internal/differ"
)

// ChangeColumns are the table columns of ChangeDataset rows.
var ChangeColumns = []string{"level", "op", "at", "to"}

// PlanColumns are the table columns of PlanDataset rows.
var PlanColumns = []string{"step", "kind", "at", "to"}

// ChangeDataset flattens an edit set into one row per edit. Besides the
// displayed columns each row carries numeric "section" and "row" fields so
// that --sort can order by position.
func ChangeDataset(c differ.SectionChanges) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, c.Len())

	section := func(op string, at int, to string) map[string]interface{} {
		return map[string]interface{}{
			"level":   "section",
			"op":      op,
			"at":      strconv.Itoa(at),
			"to":      to,
			"section": at,
			"row":     -1,
		}
	}
	cell := func(op string, at differ.Position, to string) map[string]interface{} {
		return map[string]interface{}{
			"level":   "cell",
			"op":      op,
			"at":      at.String(),
			"to":      to,
			"section": at.Section,
			"row":     at.Row,
		}
	}

	for _, s := range c.Deletes {
		rows = append(rows, section("delete", s, ""))
	}
	for _, s := range c.Inserts {
		rows = append(rows, section("insert", s, ""))
	}
	for _, m := range c.Moves {
		rows = append(rows, section("move", m.From, strconv.Itoa(m.To)))
	}
	for _, p := range c.Cells.Deletes {
		rows = append(rows, cell("delete", p, ""))
	}
	for _, p := range c.Cells.Inserts {
		rows = append(rows, cell("insert", p, ""))
	}
	for _, p := range c.Cells.Reloads {
		rows = append(rows, cell("reload", p, ""))
	}
	for _, m := range c.Cells.Moves {
		rows = append(rows, cell("move", m.From, m.To.String()))
	}

	return rows
}

// PlanDataset turns batch steps into numbered rows.
func PlanDataset(steps []batch.Step) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(steps))
	for i, s := range steps {
		at, to := s.At.String(), ""
		if s.Kind.IsSection() {
			at = strconv.Itoa(s.At.Section)
			if s.To != nil {
				to = strconv.Itoa(s.To.Section)
			}
		} else if s.To != nil {
			to = s.To.String()
		}
		rows = append(rows, map[string]interface{}{
			"step":    i + 1,
			"kind":    s.Kind.String(),
			"at":      at,
			"to":      to,
			"section": s.At.Section,
			"row":     s.At.Row,
		})
	}
	return rows
}
