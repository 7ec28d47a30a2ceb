/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metadata interprets the column metadata supplied by a data
// binding into the ordered list of columns a table displays.
package metadata

import "github.com/pkg/errors"

// ErrEmptySchema is returned by Interpret when the metadata has neither
// dimensions nor measures. It is a state, not a failure: callers render a
// placeholder instead of a table.
var ErrEmptySchema = errors.New("no dimensions or measures configured")

// Kind tells how a column's cells are displayed.
type Kind int

const (
	Dimension Kind = iota
	Measure
)

// String returns the feed name of the kind.
func (k Kind) String() string {
	switch k {
	case Dimension:
		return "dimension"
	case Measure:
		return "measure"
	default:
		return "unknown"
	}
}

// ColumnSpec describes one displayed column. It is derived on every
// render and never stored.
type ColumnSpec struct {
	Key          string
	Kind         Kind
	DisplayLabel string
}

// Metadata is the binding's column description: the keys assigned to the
// dimension and measure feeds, in feed order, plus their labels.
type Metadata struct {
	DimensionKeys   []string
	MeasureKeys     []string
	DimensionLabels map[string]string
	MeasureLabels   map[string]string
}

// IsEmpty reports whether no column is assigned to either feed.
func (m *Metadata) IsEmpty() bool {
	return len(m.DimensionKeys) == 0 && len(m.MeasureKeys) == 0
}

// Interpret returns the columns in logical order: dimensions first, then
// measures, each in feed order. Labels missing from the mappings, or
// mapped to "", fall back to the key.
func Interpret(m *Metadata) ([]ColumnSpec, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrEmptySchema
	}

	specs := make([]ColumnSpec, 0, len(m.DimensionKeys)+len(m.MeasureKeys))
	for _, key := range m.DimensionKeys {
		specs = append(specs, ColumnSpec{
			Key:          key,
			Kind:         Dimension,
			DisplayLabel: resolveLabel(m.DimensionLabels, key),
		})
	}
	for _, key := range m.MeasureKeys {
		specs = append(specs, ColumnSpec{
			Key:          key,
			Kind:         Measure,
			DisplayLabel: resolveLabel(m.MeasureLabels, key),
		})
	}
	return specs, nil
}

func resolveLabel(labels map[string]string, key string) string {
	if label := labels[key]; label != "" {
		return label
	}
	return key
}
