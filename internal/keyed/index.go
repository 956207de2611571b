// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package keyed

// Index is a read-only lookup over an ordered sequence of keyed elements. It
// resolves an element by key or by index in O(1). When a key or an index
// repeats in the input, the first occurrence wins; Duplicates reports the keys
// for which that fallback was taken so callers can reject such input.
type Index[E any] struct {
	items   []E
	byKey   map[string]int
	byIndex map[int]int
	keys    OrderedSet
	dups    OrderedSet
}

// NewIndex builds an Index over items. keyOf and indexOf extract the key and
// the snapshot position of an element.
func NewIndex[E any](items []E, keyOf func(E) string, indexOf func(E) int) *Index[E] {
	x := &Index[E]{
		items:   items,
		byKey:   make(map[string]int, len(items)),
		byIndex: make(map[int]int, len(items)),
	}

	for i, item := range items {
		key := keyOf(item)
		if !x.keys.Add(key) {
			x.dups.Add(key)
		} else {
			x.byKey[key] = i
		}

		idx := indexOf(item)
		if _, ok := x.byIndex[idx]; !ok {
			x.byIndex[idx] = i
		}
	}

	return x
}

// ByKey returns the first element carrying key.
func (x *Index[E]) ByKey(key string) (E, bool) {
	i, ok := x.byKey[key]
	if !ok {
		var zero E
		return zero, false
	}
	return x.items[i], true
}

// ByIndex returns the first element whose snapshot position is idx.
func (x *Index[E]) ByIndex(idx int) (E, bool) {
	i, ok := x.byIndex[idx]
	if !ok {
		var zero E
		return zero, false
	}
	return x.items[i], true
}

// Len returns the number of elements indexed, duplicates included.
func (x *Index[E]) Len() int {
	return len(x.items)
}

// Keys returns the distinct keys in encounter order.
func (x *Index[E]) Keys() []string {
	return x.keys.Items()
}

// Duplicates returns the keys seen more than once, in the order their first
// repeat was encountered.
func (x *Index[E]) Duplicates() []string {
	return x.dups.Items()
}
