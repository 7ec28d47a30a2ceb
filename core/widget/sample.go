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

package widget

import (
	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
	"github.com/google/rtltable/datasources"
)

// SampleBinding returns the design-time data shown by widgets with
// ShowSampleOnEmptyMetadata while the host has not bound any columns.
func SampleBinding() *datasources.StaticBinding {
	md := &metadata.Metadata{
		DimensionKeys:   []string{"week", "year"},
		MeasureKeys:     []string{"sales"},
		DimensionLabels: map[string]string{"week": "Week", "year": "Year"},
		MeasureLabels:   map[string]string{"sales": "Sales"},
	}

	sampleRow := func(week, year, sales string) resultset.Row {
		return resultset.Row{
			"week":  {Label: resultset.String(week)},
			"year":  {Label: resultset.String(year)},
			"sales": {Formatted: resultset.String(sales)},
		}
	}

	rows := resultset.ResultSet{
		sampleRow("W1", "2021", "$100"),
		sampleRow("W2", "2021", "$150"),
		sampleRow("W3", "2021", "$90"),
	}
	return datasources.NewStaticBinding(md, rows)
}
