// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawDiff(t *testing.T) {
	oldDoc := []byte(`[{"id":"1","cells":[{"id":"key1","value":"value1"}]}]`)
	newDoc := []byte(`[{"id":"1","cells":[{"id":"key1","value":"value2"}]}]`)

	t.Run("identical", func(t *testing.T) {
		var buf bytes.Buffer
		modified, err := RawDiff(oldDoc, oldDoc, nil, false, &buf)
		require.NoError(t, err)
		assert.False(t, modified)
		assert.Contains(t, buf.String(), "identical")
	})

	t.Run("modified", func(t *testing.T) {
		var buf bytes.Buffer
		modified, err := RawDiff(oldDoc, newDoc, nil, false, &buf)
		require.NoError(t, err)
		assert.True(t, modified)
		assert.Contains(t, buf.String(), "value2")
	})

	t.Run("filtered keys are hidden", func(t *testing.T) {
		oldObj := []byte(`{"serial":1,"sections":[{"id":"1"}]}`)
		newObj := []byte(`{"serial":2,"sections":[{"id":"2"}]}`)

		var buf bytes.Buffer
		modified, err := RawDiff(oldObj, newObj, []string{"serial"}, false, &buf)
		require.NoError(t, err)
		assert.True(t, modified)
		assert.NotContains(t, buf.String(), "serial")
		assert.Contains(t, buf.String(), "sections")
	})

	t.Run("empty document", func(t *testing.T) {
		var buf bytes.Buffer
		modified, err := RawDiff(nil, newDoc, nil, false, &buf)
		require.NoError(t, err)
		assert.False(t, modified)
		assert.Empty(t, buf.String())
	})

	t.Run("invalid json", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := RawDiff([]byte("{"), newDoc, nil, false, &buf)
		assert.Error(t, err)
	})
}

func TestAsObject(t *testing.T) {
	obj, raw, err := asObject([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Contains(t, obj, "sections")
	assert.JSONEq(t, `{"sections":[1,2]}`, string(raw))

	obj, _, err = asObject([]byte(`{"a":1}`))
	require.NoError(t, err)
	assert.Contains(t, obj, "a")
}
