// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package snapshot reads, writes and generates the business model documents
// keydiff compares, and flattens them into keyed sections for the differ.
//
// Encrypted documents in the OpenTofu pbkdf2/AES-GCM envelope are supported
// through Encrypt and Decrypt.
//
// A snapshot is an ordered list of sections, each an id and an ordered list of
// id/value cells, stored as JSON or YAML:
//
//	- id: "Section 0"
//	  cells:
//	    - id: key0
//	      value: value 7
package snapshot
