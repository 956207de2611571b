// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tfctl/keydiff/internal/differ"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, "text", "json", "raw", "yaml")
}

// SnapshotFormatValidator accepts the formats gen can write.
func SnapshotFormatValidator(value any) error {
	return oneOf(value, "json", "yaml")
}

func DuplicatesValidator(value any) error {
	s, _ := value.(string)
	if _, err := differ.ParseDuplicatePolicy(s); err != nil {
		return err
	}
	return nil
}

// PositiveValidator rejects zero and negative counts.
func PositiveValidator(value any) error {
	var n int64
	switch v := value.(type) {
	case int:
		n = int64(v)
	case int64:
		n = v
	default:
		return fmt.Errorf("not an integer: %v", value)
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func oneOf(value any, valid ...string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
