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
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
)

// Paths into the host binding payload:
//
//	{
//	  "metadata": {
//	    "feeds": {"dimensions": {"values": [...]}, "measures": {"values": [...]}},
//	    "dimensions": {"<key>": {"description": "..."}},
//	    "mainStructureMembers": {"<key>": {"label": "..."}}
//	  },
//	  "data": [{"<key>": {"raw": ..., "formatted": "...", "label": "..."}}]
//	}
const (
	pathMetadata        = "metadata"
	pathDimensionFeed   = "feeds.dimensions.values"
	pathMeasureFeed     = "feeds.measures.values"
	pathDimensionLabels = "dimensions"
	pathMeasureLabels   = "mainStructureMembers"
	pathData            = "data"
)

// ParseBinding decodes a host binding payload. A missing or null
// "metadata" or "data" member yields a binding with that part absent.
func ParseBinding(payload []byte) (*StaticBinding, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errors.New("binding payload is not valid JSON")
	}
	root := gjson.ParseBytes(payload)
	if !root.IsObject() {
		return nil, errors.Errorf("binding payload must be an object, got %s", root.Type)
	}

	binding := &StaticBinding{}

	if md := root.Get(pathMetadata); present(md) {
		if !md.IsObject() {
			return nil, errors.Errorf("binding metadata must be an object, got %s", md.Type)
		}
		binding.Metadata = parseMetadata(md)
	}

	if data := root.Get(pathData); present(data) {
		if !data.IsArray() {
			return nil, errors.Errorf("binding data must be an array, got %s", data.Type)
		}
		rows, err := parseRows(data)
		if err != nil {
			return nil, err
		}
		binding.ResultSet = rows
		binding.HasRows = true
	}

	return binding, nil
}

func parseMetadata(md gjson.Result) *metadata.Metadata {
	return &metadata.Metadata{
		DimensionKeys:   feedKeys(md.Get(pathDimensionFeed)),
		MeasureKeys:     feedKeys(md.Get(pathMeasureFeed)),
		DimensionLabels: memberLabels(md.Get(pathDimensionLabels), "description"),
		MeasureLabels:   memberLabels(md.Get(pathMeasureLabels), "label"),
	}
}

func feedKeys(values gjson.Result) []string {
	keys := []string{}
	for _, v := range values.Array() {
		keys = append(keys, v.String())
	}
	return keys
}

// memberLabels reads {key: {field: label}} into key -> label.
func memberLabels(members gjson.Result, field string) map[string]string {
	labels := make(map[string]string)
	members.ForEach(func(key, value gjson.Result) bool {
		if label := value.Get(field); label.Type == gjson.String {
			labels[key.String()] = label.Str
		}
		return true
	})
	return labels
}

func parseRows(data gjson.Result) (resultset.ResultSet, error) {
	rows := resultset.ResultSet{}
	for i, item := range data.Array() {
		if !item.IsObject() {
			return nil, errors.Errorf("binding row %d must be an object, got %s", i, item.Type)
		}
		row := make(resultset.Row)
		item.ForEach(func(key, value gjson.Result) bool {
			row[key.String()] = parseCell(value)
			return true
		})
		rows = append(rows, row)
	}
	return rows, nil
}

// parseCell accepts either a {raw, formatted, label} object or a bare
// scalar, which is taken as the raw value.
func parseCell(value gjson.Result) resultset.Cell {
	if !value.IsObject() {
		return resultset.Cell{Raw: scalar(value)}
	}
	return resultset.Cell{
		Raw:       scalar(value.Get("raw")),
		Formatted: optionalString(value.Get("formatted")),
		Label:     optionalString(value.Get("label")),
	}
}

func scalar(v gjson.Result) any {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		return v.Str
	case gjson.True, gjson.False:
		return v.String()
	case gjson.JSON:
		return v.Raw
	default:
		return nil
	}
}

func optionalString(v gjson.Result) *string {
	if !present(v) {
		return nil
	}
	return resultset.String(v.String())
}

func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}
