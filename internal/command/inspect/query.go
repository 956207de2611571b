// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tfctl/keydiff/internal/batch"
	"github.com/tfctl/keydiff/internal/snapshot"
)

// ProcessQuery routes a console query to its handler and writes the result to
// w. Queries starting with "/" or containing balanced parentheses are
// expressions; a leading "." selects JSON output of a session path.
func (s *Session) ProcessQuery(w io.Writer, query string) {
	query = strings.TrimSpace(query)

	if strings.HasPrefix(query, "/") {
		fmt.Fprintln(w, s.evaluateFunction(strings.TrimPrefix(query, "/")))
		return
	}
	if hasBalancedParens(query) {
		fmt.Fprintln(w, s.evaluateFunction(query))
		return
	}

	switch {
	case query == "sections":
		s.printSections(w)
		return
	case query == "counts":
		s.printCounts(w)
		return
	case query == "plan":
		for i, step := range s.Plan {
			fmt.Fprintf(w, "%3d %s\n", i+1, step)
		}
		return
	case strings.HasPrefix(query, "section "):
		s.printSection(w, strings.TrimSpace(strings.TrimPrefix(query, "section ")))
		return
	}

	jsonMode := strings.HasPrefix(query, ".")
	if jsonMode {
		query = strings.TrimPrefix(query, ".")
	}

	var result gjson.Result
	if query == "" {
		result = gjson.ParseBytes(s.doc)
	} else {
		result = gjson.GetBytes(s.doc, query)
	}
	if !result.Exists() {
		return
	}

	if jsonMode {
		printJSON(w, result.Value())
		return
	}
	if result.IsArray() {
		for _, r := range result.Array() {
			fmt.Fprintln(w, r.String())
		}
		return
	}
	fmt.Fprintln(w, result.String())
}

func (s *Session) printSections(w io.Writer) {
	for _, st := range s.Sections() {
		fmt.Fprintf(w, "%-8s %s (%s -> %s)\n", st.Status, st.Key, position(st.OldIndex), position(st.NewIndex))
	}
}

func (s *Session) printCounts(w io.Writer) {
	counts := batch.Counts(s.Plan)
	for _, k := range batch.Kinds {
		if counts[k] > 0 {
			fmt.Fprintf(w, "%-15s %d\n", k, counts[k])
		}
	}
	fmt.Fprintf(w, "%-15s %d\n", "total", len(s.Plan))
}

func (s *Session) printSection(w io.Writer, key string) {
	oldSection, newSection := s.Section(key)
	if oldSection == nil && newSection == nil {
		fmt.Fprintf(w, "section %q not found\n", key)
		return
	}

	for _, side := range []struct {
		label   string
		section *snapshot.Section
	}{{"old", oldSection}, {"new", newSection}} {
		if side.section == nil {
			fmt.Fprintf(w, "%s: absent\n", side.label)
			continue
		}
		fmt.Fprintf(w, "%s: %d cells\n", side.label, len(side.section.Cells))
		for i, c := range side.section.Cells {
			fmt.Fprintf(w, "  %3d %-20s %s\n", i, c.ID, c.Value)
		}
	}
}

// position renders an index, or "-" when absent.
func position(i int) string {
	if i < 0 {
		return "-"
	}
	return fmt.Sprint(i)
}

// hasBalancedParens checks if a string has balanced parentheses.
func hasBalancedParens(s string) bool {
	openCount := 0
	closeCount := 0

	for _, char := range s {
		switch char {
		case '(':
			openCount++
		case ')':
			closeCount++
		}
	}

	// Must have at least one pair of parens and they must be balanced
	return openCount > 0 && openCount == closeCount
}

func printJSON(w io.Writer, data interface{}) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "Error: %s\n", err)
		return
	}
	fmt.Fprintln(w, string(b))
}
