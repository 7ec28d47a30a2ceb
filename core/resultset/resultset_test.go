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

package resultset

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/google/rtltable/core/metadata"
)

func TestCellDisplay(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		kind metadata.Kind
		want string
	}{
		{"dimension label", Cell{Label: String("W1"), Raw: "w1"}, metadata.Dimension, "W1"},
		{"dimension ignores raw", Cell{Raw: "w1"}, metadata.Dimension, ""},
		{"dimension empty label", Cell{Label: String("")}, metadata.Dimension, ""},
		{"measure formatted", Cell{Formatted: String("$100"), Raw: 100.0}, metadata.Measure, "$100"},
		{"measure empty formatted wins", Cell{Formatted: String(""), Raw: 100.0}, metadata.Measure, ""},
		{"measure raw float", Cell{Raw: 1234.5}, metadata.Measure, "1234.5"},
		{"measure raw whole float", Cell{Raw: 7.0}, metadata.Measure, "7"},
		{"measure raw string", Cell{Raw: "n/a"}, metadata.Measure, "n/a"},
		{"measure raw int", Cell{Raw: 42}, metadata.Measure, "42"},
		{"measure null", Cell{}, metadata.Measure, ""},
		{"measure ignores label", Cell{Label: String("x")}, metadata.Measure, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cell.Display(tt.kind))
		})
	}
}

func TestRowResolveMissingKey(t *testing.T) {
	row := Row{"week": {Label: String("W1")}}

	assert.Equal(t, "W1", row.Resolve(metadata.ColumnSpec{Key: "week", Kind: metadata.Dimension}))
	assert.Equal(t, "", row.Resolve(metadata.ColumnSpec{Key: "year", Kind: metadata.Dimension}))
	assert.Equal(t, "", row.Resolve(metadata.ColumnSpec{Key: "sales", Kind: metadata.Measure}))
}
