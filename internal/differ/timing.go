// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"time"

	"github.com/tfctl/keydiff/internal/keyed"
)

// Func has the signature of Diff for a given value type.
type Func[V comparable] func(oldItems, newItems []keyed.Section[V], opts ...Option) (SectionChanges, error)

// Stats describes one diff call.
type Stats struct {
	Elapsed     time.Duration
	OldSections int
	NewSections int
	OldCells    int
	NewCells    int
	Edits       int
	Err         error
}

// Hook receives Stats after each call made through Timed.
type Hook func(Stats)

// Timed wraps fn so that hook is called with timing and size information
// after every call. The result and error of fn are returned unchanged.
func Timed[V comparable](fn Func[V], hook Hook) Func[V] {
	if hook == nil {
		return fn
	}
	return func(oldItems, newItems []keyed.Section[V], opts ...Option) (SectionChanges, error) {
		start := time.Now()
		changes, err := fn(oldItems, newItems, opts...)
		hook(Stats{
			Elapsed:     time.Since(start),
			OldSections: len(oldItems),
			NewSections: len(newItems),
			OldCells:    countCells(oldItems),
			NewCells:    countCells(newItems),
			Edits:       changes.Len(),
			Err:         err,
		})
		return changes, err
	}
}

func countCells[V comparable](sections []keyed.Section[V]) (n int) {
	for _, s := range sections {
		n += len(s.Cells)
	}
	return
}
