// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package keyed

// OrderedSet is a set of strings that remembers insertion order. The zero
// value is ready to use.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

// NewOrderedSet returns a set holding keys, duplicates dropped.
func NewOrderedSet(keys ...string) *OrderedSet {
	s := &OrderedSet{}
	for _, k := range keys {
		s.Add(k)
	}
	return s
}

// Add inserts key and reports whether it was not already present.
func (s *OrderedSet) Add(key string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	s.items = append(s.items, key)
	return true
}

// Has reports whether key is in the set.
func (s *OrderedSet) Has(key string) bool {
	_, ok := s.seen[key]
	return ok
}

// Len returns the number of distinct keys.
func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items returns a copy of the keys in insertion order.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// UnionKeys concatenates the key lists and drops repeats, keeping the first
// occurrence. Passing old keys before new keys yields the iteration order the
// differ uses.
func UnionKeys(lists ...[]string) []string {
	var s OrderedSet
	for _, keys := range lists {
		for _, k := range keys {
			s.Add(k)
		}
	}
	return s.Items()
}
