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

// Package resultset holds the pre-computed rows a data binding delivers
// and the rules for turning a cell into display text.
package resultset

import (
	"fmt"
	"strconv"

	"github.com/google/rtltable/core/metadata"
)

// Cell is one value of a row. Raw is nil, a string or a number.
// Formatted and Label are nil when the binding did not provide them.
type Cell struct {
	Raw       any
	Formatted *string
	Label     *string
}

// Row maps column keys to cells. A missing key behaves like an empty cell.
type Row map[string]Cell

// ResultSet is the ordered list of rows. The order is never changed.
type ResultSet []Row

// String returns a pointer to s, for building cells.
func String(s string) *string {
	return &s
}

// Display returns the text shown for the cell in a column of the given
// kind. Dimensions show the label; measures show the formatted value,
// then the raw value. Empty strings count as values.
func (c Cell) Display(kind metadata.Kind) string {
	if kind == metadata.Dimension {
		if c.Label != nil {
			return *c.Label
		}
		return ""
	}
	if c.Formatted != nil {
		return *c.Formatted
	}
	return FormatRaw(c.Raw)
}

// FormatRaw renders a raw value. Floats use the shortest representation
// that round-trips.
func FormatRaw(v any) string {
	switch raw := v.(type) {
	case nil:
		return ""
	case string:
		return raw
	case float64:
		return strconv.FormatFloat(raw, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(raw), 'f', -1, 32)
	case int:
		return strconv.Itoa(raw)
	case int64:
		return strconv.FormatInt(raw, 10)
	case fmt.Stringer:
		return raw.String()
	default:
		return fmt.Sprint(raw)
	}
}

// Resolve returns the display text of the column in this row.
func (r Row) Resolve(col metadata.ColumnSpec) string {
	return r[col.Key].Display(col.Kind)
}
