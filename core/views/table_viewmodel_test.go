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

package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
	"github.com/google/rtltable/core/selection"
)

func weeklySales(t *testing.T) ([]metadata.ColumnSpec, resultset.ResultSet) {
	t.Helper()
	columns, err := metadata.Interpret(&metadata.Metadata{
		DimensionKeys:   []string{"week", "year"},
		MeasureKeys:     []string{"sales"},
		DimensionLabels: map[string]string{"week": "Week", "year": "Year"},
		MeasureLabels:   map[string]string{"sales": "Sales"},
	})
	require.NoError(t, err)

	rows := resultset.ResultSet{
		{
			"week":  {Label: resultset.String("W1")},
			"year":  {Label: resultset.String("2021")},
			"sales": {Formatted: resultset.String("$100")},
		},
		{
			"week":  {Label: resultset.String("W2")},
			"year":  {Label: resultset.String("2021")},
			"sales": {Raw: 250.0},
		},
		{
			"week": {Label: resultset.String("W3")},
		},
	}
	return columns, rows
}

func TestBuildTableReversesColumns(t *testing.T) {
	columns, rows := weeklySales(t)

	table := BuildTable(columns, rows[:1], selection.None)

	assert.Equal(t, []string{"Sales", "Year", "Week"}, table.Headers)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"$100", "2021", "W1"}, table.Rows[0].Cells)
	assert.False(t, table.HasPlaceholder())
}

func TestBuildTableKeepsRowOrder(t *testing.T) {
	columns, rows := weeklySales(t)

	table := BuildTable(columns, rows, selection.None)

	require.Len(t, table.Rows, 3)
	for i, row := range table.Rows {
		assert.Equal(t, i, row.Index)
		assert.Len(t, row.Cells, len(table.Headers))
	}
	assert.Equal(t, []string{"250", "2021", "W2"}, table.Rows[1].Cells)
	assert.Equal(t, []string{"", "", "W3"}, table.Rows[2].Cells)
}

func TestBuildTableHeaderIsReverseOfLogicalOrder(t *testing.T) {
	columns := []metadata.ColumnSpec{
		{Key: "d1", Kind: metadata.Dimension, DisplayLabel: "Same"},
		{Key: "d2", Kind: metadata.Dimension, DisplayLabel: "Same"},
		{Key: "m1", Kind: metadata.Measure, DisplayLabel: "M"},
		{Key: "m2", Kind: metadata.Measure, DisplayLabel: "N"},
	}
	row := resultset.Row{
		"d1": {Label: resultset.String("a")},
		"d2": {Label: resultset.String("b")},
		"m1": {Raw: 1.0},
		"m2": {Raw: 2.0},
	}

	table := BuildTable(columns, resultset.ResultSet{row}, selection.None)

	assert.Equal(t, []string{"N", "M", "Same", "Same"}, table.Headers)
	assert.Equal(t, []string{"2", "1", "b", "a"}, table.Rows[0].Cells)
}

func TestBuildTableIsIdempotent(t *testing.T) {
	columns, rows := weeklySales(t)

	first := BuildTable(columns, rows, 1)
	second := BuildTable(columns, rows, 1)

	assert.Equal(t, first, second)
}

func TestBuildTableHighlightsSelectedRow(t *testing.T) {
	columns, rows := weeklySales(t)

	table := BuildTable(columns, rows, 2)
	assert.Equal(t, 2, table.HighlightedIndex())

	table.Highlight(0)
	assert.True(t, table.Rows[0].Highlighted)
	assert.False(t, table.Rows[2].Highlighted)

	table.Highlight(selection.None)
	assert.Equal(t, selection.None, table.HighlightedIndex())
}

func TestBuildTableNoRows(t *testing.T) {
	columns, _ := weeklySales(t)

	table := BuildTable(columns, resultset.ResultSet{}, selection.None)

	assert.Equal(t, []string{"Sales", "Year", "Week"}, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestBuildEmptySchema(t *testing.T) {
	table := BuildEmptySchema(Options{ShowEmptySchemaPlaceholder: true})
	assert.True(t, table.HasPlaceholder())
	assert.Equal(t, EmptySchemaMessage, table.Placeholder)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)

	table = BuildEmptySchema(Options{})
	assert.False(t, table.HasPlaceholder())
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestRtlOrder(t *testing.T) {
	assert.Equal(t, []int{}, rtlOrder(0))
	assert.Equal(t, []int{0}, rtlOrder(1))
	assert.Equal(t, []int{3, 2, 1, 0}, rtlOrder(4))
}
