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

// Package demo provides bindings for trying the widget without a host.
package demo

import (
	_ "embed"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/rtltable/datasources"
)

//go:embed data/weekly_sales.json
var weeklySalesJSON []byte

//go:embed data/regions.csv
var regionsCSV string

// Table is one demo widget with its data.
type Table struct {
	Name    string
	Title   string
	Binding *datasources.StaticBinding
}

// WeeklySalesPayload returns the host payload of the weekly sales demo.
func WeeklySalesPayload() []byte {
	return append([]byte(nil), weeklySalesJSON...)
}

// Tables returns the demo tables. The weekly sales table uses the host
// payload format; the regions table is a CSV sample with Arabic labels.
func Tables() ([]Table, error) {
	weekly, err := datasources.ParseBinding(weeklySalesJSON)
	if err != nil {
		return nil, errors.Wrap(err, "failed to import weekly sales")
	}

	regions, err := datasources.NewCsvLoader().Parse(strings.NewReader(regionsCSV), ',')
	if err != nil {
		return nil, errors.Wrap(err, "failed to import regions")
	}

	return []Table{
		{Name: "demo-weekly-sales", Title: "Weekly sales", Binding: weekly},
		{Name: "demo-regions", Title: "المناطق", Binding: regions},
	}, nil
}
