// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "fmt"

// Level names the snapshot level a key belongs to.
type Level string

const (
	LevelSection Level = "section"
	LevelCell    Level = "cell"
)

// DuplicateKeyError reports a key that appears more than once within one
// container of one snapshot. Section is empty for section level duplicates.
type DuplicateKeyError struct {
	Side    string
	Level   Level
	Section string
	Key     string
}

func (e *DuplicateKeyError) Error() string {
	if e.Level == LevelCell {
		return fmt.Sprintf("duplicate cell key %q in section %q of %s snapshot", e.Key, e.Section, e.Side)
	}
	return fmt.Sprintf("duplicate section key %q in %s snapshot", e.Key, e.Side)
}

// DuplicatePolicy selects how Diff treats repeated keys.
type DuplicatePolicy int

const (
	// FailFast rejects the input with a *DuplicateKeyError.
	FailFast DuplicatePolicy = iota
	// FirstWins matches only the first element carrying a repeated key; later
	// ones are ignored. The result is well defined but rarely what the caller
	// meant.
	FirstWins
)

func (p DuplicatePolicy) String() string {
	switch p {
	case FirstWins:
		return "first"
	default:
		return "fail"
	}
}

// ParseDuplicatePolicy maps "fail" and "first" to a policy.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "fail":
		return FailFast, nil
	case "first":
		return FirstWins, nil
	default:
		return FailFast, fmt.Errorf("unknown duplicate policy %q: must be one of [fail first]", s)
	}
}
