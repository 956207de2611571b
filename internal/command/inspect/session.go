// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"encoding/json"
	"fmt"

	"github.com/tfctl/keydiff/internal/batch"
	"github.com/tfctl/keydiff/internal/differ"
	"github.com/tfctl/keydiff/internal/keyed"
	"github.com/tfctl/keydiff/internal/snapshot"
)

// Session is everything a console query can look at.
type Session struct {
	Old     []snapshot.Section    `json:"old"`
	New     []snapshot.Section    `json:"new"`
	Changes differ.SectionChanges `json:"changes"`
	Plan    []batch.Step          `json:"plan"`

	doc  []byte
	data map[string]interface{}
}

// NewSession captures a finished diff. The session is also kept as a JSON
// document for path queries and as generic data for expressions.
func NewSession(oldSections, newSections []snapshot.Section, changes differ.SectionChanges) (*Session, error) {
	if oldSections == nil {
		oldSections = []snapshot.Section{}
	}
	if newSections == nil {
		newSections = []snapshot.Section{}
	}
	s := &Session{
		Old:     oldSections,
		New:     newSections,
		Changes: nonNil(changes),
		Plan:    batch.Plan(changes),
	}

	doc, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(doc, &data); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	s.doc = doc
	s.data = data
	return s, nil
}

// SectionStatus describes what happened to one section key.
type SectionStatus struct {
	Key      string
	Status   string
	OldIndex int
	NewIndex int
}

// Sections reports every section key, old snapshot first, with its status.
// Missing indexes are -1.
func (s *Session) Sections() []SectionStatus {
	oldIdx := keyed.IndexSections(snapshot.Flatten(s.Old))
	newIdx := keyed.IndexSections(snapshot.Flatten(s.New))

	var out []SectionStatus
	for _, key := range keyed.UnionKeys(oldIdx.Keys(), newIdx.Keys()) {
		st := SectionStatus{Key: key, OldIndex: -1, NewIndex: -1}
		o, inOld := oldIdx.ByKey(key)
		n, inNew := newIdx.ByKey(key)
		if inOld {
			st.OldIndex = o.Index
		}
		if inNew {
			st.NewIndex = n.Index
		}

		switch {
		case !inNew:
			st.Status = "removed"
		case !inOld:
			st.Status = "added"
		case !o.Same(n):
			st.Status = "changed"
		case o.Index != n.Index:
			st.Status = "moved"
		default:
			st.Status = "same"
		}
		out = append(out, st)
	}
	return out
}

// Section returns the named section from each snapshot.
func (s *Session) Section(key string) (oldSection, newSection *snapshot.Section) {
	for i := range s.Old {
		if s.Old[i].ID == key {
			oldSection = &s.Old[i]
			break
		}
	}
	for i := range s.New {
		if s.New[i].ID == key {
			newSection = &s.New[i]
			break
		}
	}
	return
}

// nonNil replaces nil edit lists with empty ones so that expressions such as
// length(changes.cells.moves) see a list rather than null.
func nonNil(c differ.SectionChanges) differ.SectionChanges {
	c = c.Clone()
	if c.Inserts == nil {
		c.Inserts = []int{}
	}
	if c.Deletes == nil {
		c.Deletes = []int{}
	}
	if c.Moves == nil {
		c.Moves = []differ.SectionMove{}
	}
	if c.Cells.Inserts == nil {
		c.Cells.Inserts = []differ.Position{}
	}
	if c.Cells.Deletes == nil {
		c.Cells.Deletes = []differ.Position{}
	}
	if c.Cells.Reloads == nil {
		c.Cells.Reloads = []differ.Position{}
	}
	if c.Cells.Moves == nil {
		c.Cells.Moves = []differ.Move{}
	}
	return c
}
