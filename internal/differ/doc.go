// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ computes the structural edits between two keyed, two level
// snapshots: section inserts, deletes and moves, and cell inserts, deletes,
// moves and reloads. It also carries the raw document delta and the
// interactive snapshot picker used by the diff command.
//
// Diff is a pure function of its inputs. It does no I/O and holds no shared
// state, so independent pairs may be diffed concurrently.
package differ
