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
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
)

const (
	dimensionPrefix = "dim:"
	measurePrefix   = "measure:"
)

// CsvLoader builds bindings from CSV files, used for design-time sample
// data. The header row assigns every column to a feed:
//
//	dim:week=Week,dim:year=Year,measure:sales=Sales
//
// The "=Label" suffix is optional. Dimension cells become labels.
// Measure cells keep their text as the formatted value; the raw value is
// numeric when the text parses as a number.
//
// Required config keys:
//   - file_path: Path to the CSV file
//
// Optional config keys:
//   - delimiter: Field delimiter (default: ",")
type CsvLoader struct{}

// NewCsvLoader creates a new CSV loader.
func NewCsvLoader() *CsvLoader {
	return &CsvLoader{}
}

// SourceType returns "csv".
func (l *CsvLoader) SourceType() string {
	return "csv"
}

// Load reads the file named by config["file_path"].
func (l *CsvLoader) Load(config map[string]string) (*StaticBinding, error) {
	filePath := config["file_path"]
	if filePath == "" {
		return nil, errors.New("file_path is required")
	}

	delimiter := ','
	if d := config["delimiter"]; d != "" {
		delimiter = rune(d[0])
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	binding, err := l.Parse(file, delimiter)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load %s", filePath)
	}
	return binding, nil
}

// Parse reads a CSV sample from r.
func (l *CsvLoader) Parse(r io.Reader, delimiter rune) (*StaticBinding, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV")
	}
	if len(records) == 0 {
		return nil, errors.New("CSV file is empty")
	}

	md := &metadata.Metadata{
		DimensionKeys:   []string{},
		MeasureKeys:     []string{},
		DimensionLabels: make(map[string]string),
		MeasureLabels:   make(map[string]string),
	}

	header := records[0]
	kinds := make([]metadata.Kind, len(header))
	keys := make([]string, len(header))
	for i, name := range header {
		kind, key, label, err := parseHeaderColumn(name)
		if err != nil {
			return nil, errors.Wrapf(err, "column %d", i)
		}
		kinds[i], keys[i] = kind, key

		if kind == metadata.Dimension {
			md.DimensionKeys = append(md.DimensionKeys, key)
			if label != "" {
				md.DimensionLabels[key] = label
			}
		} else {
			md.MeasureKeys = append(md.MeasureKeys, key)
			if label != "" {
				md.MeasureLabels[key] = label
			}
		}
	}

	rows := resultset.ResultSet{}
	for _, record := range records[1:] {
		row := make(resultset.Row, len(keys))
		for i, key := range keys {
			if i >= len(record) {
				break
			}
			value := record[i]
			if kinds[i] == metadata.Dimension {
				row[key] = resultset.Cell{Raw: value, Label: resultset.String(value)}
			} else {
				row[key] = measureCell(value)
			}
		}
		rows = append(rows, row)
	}

	return NewStaticBinding(md, rows), nil
}

// parseHeaderColumn splits "dim:key=Label" into its parts.
func parseHeaderColumn(name string) (metadata.Kind, string, string, error) {
	var kind metadata.Kind
	var rest string
	switch {
	case strings.HasPrefix(name, dimensionPrefix):
		kind, rest = metadata.Dimension, strings.TrimPrefix(name, dimensionPrefix)
	case strings.HasPrefix(name, measurePrefix):
		kind, rest = metadata.Measure, strings.TrimPrefix(name, measurePrefix)
	default:
		return 0, "", "", errors.Errorf("header %q must start with %q or %q", name, dimensionPrefix, measurePrefix)
	}

	key, label, _ := strings.Cut(rest, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, "", "", errors.Errorf("header %q has an empty key", name)
	}
	return kind, key, strings.TrimSpace(label), nil
}

// measureCell keeps the file's text for display. An empty field is a
// missing value.
func measureCell(s string) resultset.Cell {
	if s == "" {
		return resultset.Cell{}
	}
	cell := resultset.Cell{Raw: s, Formatted: resultset.String(s)}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		cell.Raw = f
	}
	return cell
}
