// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package batch turns an edit set into the ordered list of steps a position
// addressed list view applies inside one batch update.
package batch
