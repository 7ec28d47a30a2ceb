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

package datasources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/rtltable/core/metadata"
)

const weeklyPayload = `{
  "metadata": {
    "feeds": {
      "dimensions": {"values": ["week", "year"]},
      "measures": {"values": ["sales"]}
    },
    "dimensions": {
      "week": {"description": "Week"},
      "year": {"description": "Year"}
    },
    "mainStructureMembers": {
      "sales": {"label": "Sales"}
    }
  },
  "data": [
    {"week": {"label": "W1"}, "year": {"label": "2021"}, "sales": {"raw": 100, "formatted": "$100"}},
    {"week": {"label": "W2"}, "year": {"label": "2021"}, "sales": {"raw": 250.5, "formatted": null}},
    {"week": {"label": "W3"}, "sales": 7}
  ]
}`

func TestParseBinding(t *testing.T) {
	binding, err := ParseBinding([]byte(weeklyPayload))
	require.NoError(t, err)

	md, ok := binding.GetMetadata()
	require.True(t, ok)
	assert.Equal(t, []string{"week", "year"}, md.DimensionKeys)
	assert.Equal(t, []string{"sales"}, md.MeasureKeys)
	assert.Equal(t, map[string]string{"week": "Week", "year": "Year"}, md.DimensionLabels)
	assert.Equal(t, map[string]string{"sales": "Sales"}, md.MeasureLabels)

	rows, ok := binding.GetResultSet()
	require.True(t, ok)
	require.Len(t, rows, 3)

	sales := metadata.ColumnSpec{Key: "sales", Kind: metadata.Measure}
	year := metadata.ColumnSpec{Key: "year", Kind: metadata.Dimension}
	assert.Equal(t, "$100", rows[0].Resolve(sales))
	assert.Equal(t, "250.5", rows[1].Resolve(sales))
	assert.Equal(t, "7", rows[2].Resolve(sales))
	assert.Equal(t, "2021", rows[0].Resolve(year))
	assert.Equal(t, "", rows[2].Resolve(year))
}

func TestParseBindingAbsentParts(t *testing.T) {
	tests := []struct {
		name        string
		payload     string
		hasMetadata bool
		hasRows     bool
	}{
		{"empty object", `{}`, false, false},
		{"null members", `{"metadata": null, "data": null}`, false, false},
		{"metadata only", `{"metadata": {}}`, true, false},
		{"data only", `{"data": []}`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			binding, err := ParseBinding([]byte(tt.payload))
			require.NoError(t, err)

			_, ok := binding.GetMetadata()
			assert.Equal(t, tt.hasMetadata, ok)
			rows, ok := binding.GetResultSet()
			assert.Equal(t, tt.hasRows, ok)
			if ok {
				assert.NotNil(t, rows)
			}
		})
	}
}

func TestParseBindingEmptyFeeds(t *testing.T) {
	binding, err := ParseBinding([]byte(`{"metadata": {"feeds": {}}, "data": []}`))
	require.NoError(t, err)

	md, ok := binding.GetMetadata()
	require.True(t, ok)
	assert.True(t, md.IsEmpty())

	_, err = metadata.Interpret(md)
	assert.ErrorIs(t, err, metadata.ErrEmptySchema)
}

func TestParseBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"invalid json", `{"metadata": `},
		{"not an object", `[1, 2]`},
		{"metadata not object", `{"metadata": "x"}`},
		{"data not array", `{"data": {}}`},
		{"row not object", `{"data": [1]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBinding([]byte(tt.payload))
			assert.Error(t, err)
		})
	}
}
