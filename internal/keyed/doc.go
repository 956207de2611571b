// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package keyed holds the keyed, indexed views of a two level snapshot
// (sections containing cells) that the differ compares, along with the lookup
// structures used to match elements by key across snapshots.
//
// Every element carries a Key, which identifies it across snapshots, and an
// Index, which is its position in the one snapshot it was taken from. Values
// built here are read-only for the duration of a single diff.
package keyed
