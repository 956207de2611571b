// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "fmt"

type options struct {
	duplicates        DuplicatePolicy
	emptySectionEdits bool
}

// Option tunes a single Diff call.
type Option func(*options)

// WithDuplicatePolicy sets how repeated keys are handled. The default is
// FailFast.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *options) {
		o.duplicates = p
	}
}

// WithEmptySectionEdits changes how a section that keeps its key and index but
// goes from zero cells to some, or from some to zero, is reported. By default
// nothing is recorded for it and the renderer is left to reload the section.
// When enabled, the section is reported as inserted (it had no cells) or
// deleted (it has no cells now).
func WithEmptySectionEdits(enabled bool) Option {
	return func(o *options) {
		o.emptySectionEdits = enabled
	}
}

func newOptions(opts ...Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Fingerprint returns a stable string describing the effective options, for
// use in cache keys.
func Fingerprint(opts ...Option) string {
	o := newOptions(opts...)
	return fmt.Sprintf("dup=%s,empty=%t", o.duplicates, o.emptySectionEdits)
}
