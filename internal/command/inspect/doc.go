// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package inspect answers console queries about a finished diff: section
// status, plan steps, gjson paths into the session and HCL expressions
// evaluated with the cty standard library.
package inspect
