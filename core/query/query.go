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

package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/google/safehtml"
	"github.com/pkg/errors"

	"github.com/google/rtltable/core/selection"
)

// Output formats of a widget view.
const (
	FormatHTML = "html"
	FormatText = "text"
	FormatJSON = "json"
)

// WidgetsPrefix is the path every widget route lives under.
const WidgetsPrefix = "/widgets/"

var (
	// ErrInvalidRow is returned for a row parameter that is not a number.
	ErrInvalidRow = errors.New("row must be an integer")
	// ErrInvalidFormat is returned for an unknown format parameter.
	ErrInvalidFormat = errors.New("format must be html, text or json")
)

// Query represents the parsed state of a widget request URL
type Query struct {
	// Base path (e.g., "/widgets/sales")
	Path string

	Widget string // Widget name taken from the route
	Format string // One of the Format constants
	Row    int    // Requested row, selection.None when absent

	hasRow bool
}

// NewQuery creates a Query for widget from a URL. Unknown or malformed
// parameters are reported as errors so handlers can answer 400.
func NewQuery(u *url.URL, widget string) (*Query, error) {
	state := &Query{
		Path:   WidgetPath(widget),
		Widget: widget,
		Format: FormatHTML,
		Row:    selection.None,
	}

	q := u.Query()

	if f := q.Get("format"); f != "" {
		switch f {
		case FormatHTML, FormatText, FormatJSON:
			state.Format = f
		default:
			return nil, errors.Wrap(ErrInvalidFormat, f)
		}
	}

	if rowStr := q.Get("row"); rowStr != "" {
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, errors.Wrap(ErrInvalidRow, rowStr)
		}
		state.Row = row
		state.hasRow = true
	}

	return state, nil
}

// HasRow reports whether a row parameter was given. Any integer counts,
// including negative ones.
func (s *Query) HasRow() bool {
	return s.hasRow
}

// Clone creates a copy of the Query
func (s *Query) Clone() *Query {
	clone := *s
	return &clone
}

// ToURL converts the Query to a URL string, leaving out defaults.
func (s *Query) ToURL() string {
	params := url.Values{}
	if s.Format != "" && s.Format != FormatHTML {
		params.Set("format", s.Format)
	}
	if s.HasRow() {
		params.Set("row", strconv.Itoa(s.Row))
	}
	if len(params) == 0 {
		return s.Path
	}
	return s.Path + "?" + params.Encode()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// WithFormat returns the URL of the same view in another format.
func (s *Query) WithFormat(format string) safehtml.URL {
	clone := s.Clone()
	clone.Format = format
	return clone.ToSafeURL()
}

// WithRow returns the URL with row set.
func (s *Query) WithRow(row int) safehtml.URL {
	clone := s.Clone()
	clone.Row = row
	clone.hasRow = true
	return clone.ToSafeURL()
}

// WidgetPath returns the path of the named widget.
func WidgetPath(name string) string {
	return WidgetsPrefix + url.PathEscape(name)
}

// WidgetURL returns the link to the named widget.
func WidgetURL(name string) safehtml.URL {
	return safehtml.URLSanitized(WidgetPath(name))
}
