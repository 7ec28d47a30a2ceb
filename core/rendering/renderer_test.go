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

package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/safehtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/google/rtltable/core/views"
)

func sampleTable() views.RenderedTable {
	return views.RenderedTable{
		Title:   "Weekly sales",
		Headers: []string{"Sales", "Year", "Week"},
		Rows: []views.RenderedRow{
			{Index: 0, Cells: []string{"$100", "2021", "W1"}},
			{Index: 1, Cells: []string{"$150", "2021", "<W2>"}, Highlighted: true},
		},
	}
}

func TestRenderTable(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Table(&buf, views.TablePage{RenderedTable: sampleTable(), WidgetPath: "/widgets/sales"})
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, `<html dir="rtl">`)
	assert.Contains(t, html, `data-widget-path="/widgets/sales"`)
	assert.Contains(t, html, `<tr><th>Sales</th><th>Year</th><th>Week</th></tr>`)
	assert.Contains(t, html, `<tr data-index="0" class=""><td>$100</td><td>2021</td><td>W1</td></tr>`)
	assert.Contains(t, html, `data-index="1" class="highlighted"`)
	assert.Contains(t, html, "&lt;W2&gt;")
	assert.NotContains(t, html, "<W2>")
	assert.NotContains(t, html, `class="placeholder"`)

	// Header comes before the body and keeps the RTL order.
	assert.Less(t, strings.Index(html, "<th>Sales</th>"), strings.Index(html, "<th>Week</th>"))
	assert.Less(t, strings.Index(html, "<th>Week</th>"), strings.Index(html, "<td>$100</td>"))
}

func TestRenderPlaceholder(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	page := views.TablePage{RenderedTable: views.BuildEmptySchema(views.Options{ShowEmptySchemaPlaceholder: true})}
	require.NoError(t, renderer.Table(&buf, page))
	html := buf.String()

	assert.Contains(t, html, `<tr class="placeholder"><td>`+views.EmptySchemaMessage+`</td></tr>`)
	assert.NotContains(t, html, "<th>")
	assert.NotContains(t, html, "data-index=")
}

func TestRenderHostCSSClassAndSample(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	table := sampleTable()
	table.CSSClass = "compact"
	table.Sample = true

	var buf bytes.Buffer
	require.NoError(t, renderer.Table(&buf, views.TablePage{RenderedTable: table}))
	assert.Contains(t, buf.String(), `class="rtl-table compact"`)
	assert.Contains(t, buf.String(), "Sample data")
}

func TestRenderLanding(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = renderer.Landing(&buf, views.LandingViewModel{
		Title: "Widgets",
		Widgets: []views.WidgetInfo{
			{Name: "sales", Title: "Weekly sales", URL: safehtml.URLSanitized("/widgets/sales"), RowCount: 2, ColumnCount: 3, Selected: 1},
			{Name: "empty", URL: safehtml.URLSanitized("/widgets/empty"), Selected: -1},
		},
	})
	require.NoError(t, err)
	html := buf.String()

	assert.Contains(t, html, `<a href="/widgets/sales">Weekly sales</a>`)
	assert.Contains(t, html, `<a href="/widgets/empty">empty</a>`)
	assert.Contains(t, html, "3 columns, 2 rows, row 1 selected")
	assert.Equal(t, 1, strings.Count(html, "selected"))

	buf.Reset()
	require.NoError(t, renderer.Landing(&buf, views.LandingViewModel{Title: "Widgets"}))
	assert.Contains(t, buf.String(), "No widgets configured.")
}

func TestRenderText(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	renderer.Text(&buf, sampleTable())
	text := buf.String()

	lines := strings.Split(text, "\n")
	var header, highlighted string
	for _, line := range lines {
		if strings.Contains(line, "Sales") {
			header = line
		}
		if strings.Contains(line, "$150") {
			highlighted = line
		}
	}
	require.NotEmpty(t, header)
	assert.Less(t, strings.Index(header, "Sales"), strings.Index(header, "Week"))
	assert.Contains(t, highlighted, HighlightMarker)
	assert.Contains(t, text, "Weekly sales")
}

func TestRenderTextPlaceholderAndEmpty(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	renderer.Text(&buf, views.BuildEmptySchema(views.Options{ShowEmptySchemaPlaceholder: true}))
	assert.Contains(t, buf.String(), views.EmptySchemaMessage)

	buf.Reset()
	renderer.Text(&buf, views.BuildEmptySchema(views.Options{}))
	assert.Empty(t, buf.String())
}
