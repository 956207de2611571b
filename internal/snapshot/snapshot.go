// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/keydiff/internal/keyed"
)

// Item is a single cell of a section.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Value string `json:"value" yaml:"value"`
}

// Section is an id and its ordered cells.
type Section struct {
	ID    string `json:"id" yaml:"id"`
	Cells []Item `json:"cells" yaml:"cells"`
}

// ErrNotFound is returned when a selection path matches nothing.
var ErrNotFound = errors.New("path not found in document")

// Flatten converts sections into keyed sections, setting every Index to the
// element's position.
func Flatten(sections []Section) []keyed.Section[string] {
	out := make([]keyed.Section[string], len(sections))
	for i, s := range sections {
		cells := make([]keyed.Cell[string], len(s.Cells))
		for j, c := range s.Cells {
			cells[j] = keyed.Cell[string]{Key: c.ID, Value: c.Value, Index: j}
		}
		out[i] = keyed.Section[string]{Key: s.ID, Cells: cells, Index: i}
	}
	return out
}

// ToJSON returns data as JSON. JSON input is returned as is; anything else is
// decoded as YAML and re-encoded.
func ToJSON(data []byte) ([]byte, error) {
	if gjson.ValidBytes(data) {
		return data, nil
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document is neither JSON nor YAML: %w", err)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert YAML document: %w", err)
	}
	return b, nil
}

// Parse decodes a snapshot document. path is a gjson path selecting the
// sections array inside the document; when empty, the document itself must be
// the array, or an object with a "sections" member.
func Parse(data []byte, path string) ([]Section, error) {
	doc, err := ToJSON(data)
	if err != nil {
		return nil, err
	}

	var selected gjson.Result
	switch {
	case path != "":
		selected = gjson.GetBytes(doc, path)
		if !selected.Exists() {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	default:
		selected = gjson.ParseBytes(doc)
		if selected.IsObject() {
			selected = selected.Get("sections")
			if !selected.Exists() {
				return nil, fmt.Errorf("%w: sections", ErrNotFound)
			}
		}
	}

	if selected.Type == gjson.Null || !selected.Exists() {
		// An empty document is an empty snapshot.
		return []Section{}, nil
	}
	if !selected.IsArray() {
		return nil, fmt.Errorf("expected an array of sections, got %s", selected.Type)
	}

	sections, err := decodeSections(selected)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sections: %w", err)
	}

	log.Debugf("parsed %d sections", len(sections))
	return sections, nil
}

// decodeSections reads sections through gjson so that scalar ids and values
// of any type (numbers, booleans) are taken as their string form.
func decodeSections(arr gjson.Result) ([]Section, error) {
	elems := arr.Array()
	sections := make([]Section, 0, len(elems))
	for i, elem := range elems {
		if !elem.IsObject() {
			return nil, fmt.Errorf("section %d: expected an object, got %s", i, elem.Type)
		}

		cells := elem.Get("cells")
		if cells.Exists() && cells.Type != gjson.Null && !cells.IsArray() {
			return nil, fmt.Errorf("section %d: cells must be an array, got %s", i, cells.Type)
		}

		section := Section{ID: elem.Get("id").String(), Cells: []Item{}}
		for j, cell := range cells.Array() {
			if !cell.IsObject() {
				return nil, fmt.Errorf("section %d cell %d: expected an object, got %s", i, j, cell.Type)
			}
			section.Cells = append(section.Cells, Item{
				ID:    cell.Get("id").String(),
				Value: cell.Get("value").String(),
			})
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// Read loads a snapshot document from a file, or from r when file is "-".
func Read(file string, r io.Reader) ([]byte, error) {
	if file == "-" {
		return io.ReadAll(r)
	}

	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("snapshot does not exist: %s", file)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("snapshot cannot be a directory: %s", file)
	}

	return os.ReadFile(file)
}

// Marshal encodes sections as "json" or "yaml".
func Marshal(sections []Section, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(sections, "", "  ")
	case "yaml":
		return yaml.Marshal(sections)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", format)
	}
}
