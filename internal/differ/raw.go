// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"
)

// RawDiff writes a document level delta between two JSON documents to w. It
// is the unkeyed, positional view of the same change and complements the
// keyed edit set computed by Diff. Top level keys named in filter are dropped
// from the rendering. It reports whether the documents differ.
func RawDiff(oldDoc, newDoc []byte, filter []string, coloring bool, w io.Writer) (bool, error) {
	log.Debugf(">> RawDiff()")

	if len(oldDoc) == 0 || len(newDoc) == 0 {
		return false, nil
	}

	log.Debugf("len(docs): %d %d", len(oldDoc), len(newDoc))

	left, leftBytes, err := asObject(oldDoc)
	if err != nil {
		return false, fmt.Errorf("failed to parse old document: %w", err)
	}
	_, rightBytes, err := asObject(newDoc)
	if err != nil {
		return false, fmt.Errorf("failed to parse new document: %w", err)
	}

	delta, err := gojsondiff.New().Compare(leftBytes, rightBytes)
	if err != nil {
		return false, fmt.Errorf("failed to compare documents: %w", err)
	}

	if !delta.Modified() {
		fmt.Fprintln(w, "The documents are identical.")
		return false, nil
	}

	for _, key := range filter {
		if key != "" {
			delete(left, key)
		}
	}

	config := formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       coloring,
	}

	out, err := formatter.NewAsciiFormatter(left, config).Format(delta)
	if err != nil {
		return true, err
	}

	fmt.Fprintln(w, out)
	return true, nil
}

// asObject decodes doc and wraps a bare array under a "sections" key, since
// the delta is computed between objects.
func asObject(doc []byte) (map[string]interface{}, []byte, error) {
	var v interface{}
	if err := json.Unmarshal(doc, &v); err != nil {
		return nil, nil, err
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		obj = map[string]interface{}{"sections": v}
	}

	b, err := json.Marshal(obj)
	if err != nil {
		return nil, nil, err
	}
	return obj, b, nil
}
