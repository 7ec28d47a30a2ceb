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

// Package rendering turns rendered tables into HTML pages or plain text.
package rendering

import (
	"embed"
	"io"

	"github.com/google/safehtml/template"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/google/rtltable/core/views"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page templates, named after their files.
const (
	tablePage   = "table.html"
	landingPage = "landing.html"
)

// HighlightMarker flags the selected row in text output. It is written in
// an extra rightmost column, where an RTL reader starts.
const HighlightMarker = "*"

// Renderer writes widget tables and the landing page. It is safe for
// concurrent use once created.
type Renderer struct {
	pages *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	pages, err := template.ParseFS(template.TrustedFSFromEmbed(templateFS), "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse page templates")
	}
	for _, name := range []string{tablePage, landingPage} {
		if pages.Lookup(name) == nil {
			return nil, errors.Errorf("missing page template %s", name)
		}
	}
	return &Renderer{pages: pages}, nil
}

// Table writes page as a right-to-left HTML document.
func (r *Renderer) Table(w io.Writer, page views.TablePage) error {
	return r.pages.ExecuteTemplate(w, tablePage, page)
}

// Landing writes the list of hosted widgets.
func (r *Renderer) Landing(w io.Writer, vm views.LandingViewModel) error {
	return r.pages.ExecuteTemplate(w, landingPage, vm)
}

// Text writes the table right-aligned. Columns keep their RTL order, so
// the first logical column is the rightmost one. A table without headers
// or placeholder writes nothing.
func (r *Renderer) Text(w io.Writer, table views.RenderedTable) {
	out := tablewriter.NewWriter(w)
	out.SetAutoFormatHeaders(false)
	out.SetAutoWrapText(false)
	out.SetAlignment(tablewriter.ALIGN_RIGHT)
	out.SetHeaderAlignment(tablewriter.ALIGN_RIGHT)
	if table.Title != "" {
		out.SetCaption(true, table.Title)
	}

	switch {
	case table.HasPlaceholder():
		out.Append([]string{table.Placeholder})
	case len(table.Headers) == 0:
		return
	default:
		out.SetHeader(withMarkerColumn(table.Headers, ""))
		for _, row := range table.Rows {
			marker := ""
			if row.Highlighted {
				marker = HighlightMarker
			}
			out.Append(withMarkerColumn(row.Cells, marker))
		}
	}
	out.Render()
}

func withMarkerColumn(cells []string, marker string) []string {
	return append(append(make([]string, 0, len(cells)+1), cells...), marker)
}
