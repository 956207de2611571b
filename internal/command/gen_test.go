// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/keydiff/internal/snapshot"
)

func TestGen_Deterministic(t *testing.T) {
	a, err := runApp(t, "", "gen", "--seed", "42")
	require.NoError(t, err)
	b, err := runApp(t, "", "gen", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	sections, err := snapshot.Parse([]byte(a), "")
	require.NoError(t, err)
	assert.NotEmpty(t, sections)
}

func TestGen_ConfigLimits(t *testing.T) {
	// testdata/keydiff.yaml caps gen at 3 sections of 4 cells.
	for seed := 1; seed <= 20; seed++ {
		out, err := runApp(t, "", "gen", "--seed", itoa(seed))
		require.NoError(t, err)

		sections, err := snapshot.Parse([]byte(out), "")
		require.NoError(t, err)
		assert.LessOrEqual(t, len(sections), 3)
		for _, s := range sections {
			assert.LessOrEqual(t, len(s.Cells), 4)
		}
	}
}

func TestGen_FlagsOverrideConfig(t *testing.T) {
	out, err := runApp(t, "", "gen", "--seed", "7", "--sections", "1", "--cells", "1")
	require.NoError(t, err)

	sections, err := snapshot.Parse([]byte(out), "")
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Len(t, sections[0].Cells, 1)
}

func TestGen_YAML(t *testing.T) {
	out, err := runApp(t, "", "gen", "--seed", "3", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "- id: Section 0")
}

func TestGen_Encrypted(t *testing.T) {
	out, err := runApp(t, "", "gen", "--seed", "3", "--passphrase", "secret", "--iterations", "1000")
	require.NoError(t, err)
	require.True(t, snapshot.IsEncrypted([]byte(out)))

	plain, err := snapshot.Decrypt([]byte(out), "secret")
	require.NoError(t, err)
	sections, err := snapshot.Parse(plain, "")
	require.NoError(t, err)
	assert.NotEmpty(t, sections)
}

func TestGen_RejectsNonPositiveLimits(t *testing.T) {
	_, err := runApp(t, "", "gen", "--sections", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "greater than zero")
}

func TestDiff_EncryptedSnapshot(t *testing.T) {
	enc, err := runApp(t, "", "gen", "--seed", "9", "--passphrase", "secret", "--iterations", "1000")
	require.NoError(t, err)

	out, err := runApp(t, enc, "diff", "--passphrase", "secret", "-o", "json", "-", "testdata/old.json")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = runApp(t, enc, "diff", "--passphrase", "wrong", "-", "testdata/old.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decrypt")
}
