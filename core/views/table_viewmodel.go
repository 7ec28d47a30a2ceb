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
	"github.com/google/safehtml"

	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
	"github.com/google/rtltable/core/selection"
)

// EmptySchemaMessage is the text of the placeholder row shown when the
// binding has no dimensions or measures.
const EmptySchemaMessage = "No dimensions or measures configured"

// Direction is the layout direction of every rendered table.
const Direction = "rtl"

// Options controls how the renderer treats an empty schema.
type Options struct {
	ShowEmptySchemaPlaceholder bool
}

// RenderedTable is the complete content of one render, formatted for
// template consumption. Headers and cells are already in display (RTL)
// order.
type RenderedTable struct {
	Title       string
	CSSClass    string        // Host class, already validated
	Headers     []string      // Column display labels, right to left
	Rows        []RenderedRow // Body rows in result set order
	Placeholder string        // Non-empty for the empty-schema row
	Sample      bool          // True when showing design-time sample data
}

// TablePage is a rendered table committed as a standalone page.
type TablePage struct {
	RenderedTable
	WidgetPath string // Base path of the widget's HTTP endpoints
}

// RenderedRow is one body row.
type RenderedRow struct {
	Index       int      // Position in the result set, used as click target
	Cells       []string // Display values, right to left
	Highlighted bool
}

// HasPlaceholder reports whether the table shows the empty-schema row.
func (t *RenderedTable) HasPlaceholder() bool {
	return t.Placeholder != ""
}

// Highlight marks row index as the only highlighted row. selection.None
// clears all highlighting.
func (t *RenderedTable) Highlight(index int) {
	for i := range t.Rows {
		t.Rows[i].Highlighted = t.Rows[i].Index == index
	}
}

// HighlightedIndex returns the highlighted row or selection.None.
func (t *RenderedTable) HighlightedIndex() int {
	for _, row := range t.Rows {
		if row.Highlighted {
			return row.Index
		}
	}
	return selection.None
}

// BuildTable builds a fresh table from the interpreted columns and the
// rows. The column reversal is computed once and applied to the header
// and to every row, so header and body stay aligned. selected is the row
// to highlight, or selection.None.
func BuildTable(columns []metadata.ColumnSpec, rows resultset.ResultSet, selected int) RenderedTable {
	order := rtlOrder(len(columns))

	headers := make([]string, len(order))
	for pos, col := range order {
		headers[pos] = columns[col].DisplayLabel
	}

	body := make([]RenderedRow, len(rows))
	for i, row := range rows {
		cells := make([]string, len(order))
		for pos, col := range order {
			cells[pos] = row.Resolve(columns[col])
		}
		body[i] = RenderedRow{
			Index:       i,
			Cells:       cells,
			Highlighted: i == selected,
		}
	}

	return RenderedTable{
		Headers: headers,
		Rows:    body,
	}
}

// BuildEmptySchema builds the table shown when no columns are configured:
// a single placeholder row and no header, or nothing at all when the
// placeholder is disabled.
func BuildEmptySchema(opts Options) RenderedTable {
	if !opts.ShowEmptySchemaPlaceholder {
		return RenderedTable{}
	}
	return RenderedTable{Placeholder: EmptySchemaMessage}
}

// rtlOrder returns the display position -> logical column permutation.
func rtlOrder(n int) []int {
	order := make([]int, n)
	for pos := range order {
		order[pos] = n - 1 - pos
	}
	return order
}

// LandingViewModel lists the widgets served by the host.
type LandingViewModel struct {
	Title   string
	Widgets []WidgetInfo
}

// WidgetInfo describes one widget on the landing page.
type WidgetInfo struct {
	Name        string
	Title       string
	URL         safehtml.URL
	RowCount    int
	ColumnCount int
	Selected    int
}
