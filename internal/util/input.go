// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"os"
	"path/filepath"
	"strings"
)

// Stdin is the input argument that selects standard input.
const Stdin = "-"

// ParseInput parses a snapshot argument of the form file[::path] and returns
// the absolute file and the optional gjson path selecting the sections array
// inside it. Relative files are resolved against base, or the working
// directory when base is empty. It returns an error if the file does not exist
// or is a directory. "-" is returned unchanged and selects stdin.
func ParseInput(input string, base string) (string, string, error) {

	if input == "" {
		return "", "", os.ErrInvalid
	}

	var file, path string

	// First, split the argument to see if there is a ::path selector.
	parts := strings.Split(input, "::")
	if len(parts) > 1 {
		path = parts[1]
	}

	if parts[0] == Stdin {
		return Stdin, path, nil
	}

	// Now determine if the file is absolute or relative. If it is relative,
	// make it absolute.
	if filepath.IsAbs(parts[0]) {
		file = parts[0]
	} else {
		if base == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return "", "", err
			}
			base = cwd
		}
		file = filepath.Join(base, parts[0])
	}

	if r, err := os.Stat(file); err != nil {
		return "", "", err
	} else if r.IsDir() {
		return "", "", os.ErrInvalid
	}

	return file, path, nil
}
