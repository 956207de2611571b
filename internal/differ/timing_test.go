// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/keydiff/internal/keyed"
)

func TestTimed(t *testing.T) {
	var got []Stats
	diff := Timed[string](Diff[string], func(s Stats) { got = append(got, s) })

	old := flatten(initialData()...)
	changes, err := diff(old, flatten(initialData()[:2]...))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].OldSections)
	assert.Equal(t, 2, got[0].NewSections)
	assert.Equal(t, 6, got[0].OldCells)
	assert.Equal(t, 4, got[0].NewCells)
	assert.Equal(t, changes.Len(), got[0].Edits)
	assert.GreaterOrEqual(t, int64(got[0].Elapsed), int64(0))
	assert.NoError(t, got[0].Err)
}

func TestTimed_PassesErrorThrough(t *testing.T) {
	boom := errors.New("boom")
	var seen error
	fn := func(_, _ []keyed.Section[string], _ ...Option) (SectionChanges, error) {
		return SectionChanges{}, boom
	}

	_, err := Timed[string](fn, func(s Stats) { seen = s.Err })(nil, nil)

	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, seen, boom)
}

func TestTimed_NilHook(t *testing.T) {
	diff := Timed[string](Diff[string], nil)
	changes, err := diff(nil, nil)
	require.NoError(t, err)
	assert.True(t, changes.IsEmpty())
}
