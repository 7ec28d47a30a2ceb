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

// Package datasources provides the data bindings a table widget reads
// from: a named registry of bindings plus loaders that build them from
// host JSON payloads and CSV sample files.
package datasources

import (
	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
)

// Binding is the host data binding of one widget. Either part may be
// absent, in which case the widget has nothing to render.
type Binding interface {
	// GetMetadata returns the column metadata, or false when absent.
	GetMetadata() (*metadata.Metadata, bool)
	// GetResultSet returns the rows, or false when absent.
	GetResultSet() (resultset.ResultSet, bool)
}

// DataSourceLoader builds bindings for one source type.
type DataSourceLoader interface {
	// SourceType returns the identifier used in configuration (e.g. "csv").
	SourceType() string
	// Load builds a binding from loader-specific config keys.
	Load(config map[string]string) (*StaticBinding, error)
}

// StaticBinding is a Binding over values held in memory.
// A nil Metadata is absent metadata; rows are absent unless HasRows is set.
type StaticBinding struct {
	Metadata  *metadata.Metadata
	ResultSet resultset.ResultSet
	HasRows   bool
}

// NewStaticBinding creates a binding with both parts present.
func NewStaticBinding(md *metadata.Metadata, rows resultset.ResultSet) *StaticBinding {
	return &StaticBinding{Metadata: md, ResultSet: rows, HasRows: true}
}

// GetMetadata implements Binding.
func (b *StaticBinding) GetMetadata() (*metadata.Metadata, bool) {
	return b.Metadata, b.Metadata != nil
}

// GetResultSet implements Binding.
func (b *StaticBinding) GetResultSet() (resultset.ResultSet, bool) {
	if !b.HasRows {
		return nil, false
	}
	return b.ResultSet, true
}
