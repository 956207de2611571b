// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of an output dataset.
//
// Filters are specified as key-operator-target expressions and combined with a
// delimiter (default: comma, override with KEYDIFF_FILTER_DELIM). A row is
// kept when it matches every expression. Keys are dataset columns, including
// the numeric "section" and "row" columns that are not displayed.
//
// Operators:
//
//   - = : exact match (negate with !=)
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than (numeric for numeric columns)
//   - > : greater than (numeric for numeric columns)
//   - @ : contains substring or member
//   - / : regular expression match
//
// Examples:
//
//   - "op=reload" : cell reloads only
//   - "level=cell,op!=move" : cell edits other than moves
//   - "section>1" : edits past the second section
//   - "kind^section" : plan steps addressing whole sections
//
// A key without an operator keeps rows where that column is non-empty, so
// "to" selects moves.
package filters
