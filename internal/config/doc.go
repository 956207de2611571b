// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for keydiff's user
// configuration. The configuration is a YAML document located by
// KEYDIFF_CFG_FILE or in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/keydiff.yaml or $HOME/.config/keydiff.yaml
//   - macOS: $HOME/Library/Application Support/keydiff.yaml
//   - Windows: %APPDATA%/keydiff.yaml
//
// Recognized keys include diff.duplicates (fail|first), diff.empty_sections,
// colors.title/even/odd, gen.sections/cells/values and <command>.defaults
// argument sets expanded by @set on the command line.
package config
