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
	"regexp"
	"strings"
)

// DefaultBindingName is the binding a widget reads when none is configured.
const DefaultBindingName = "mainBinding"

// Options selects the optional behaviours of a widget.
type Options struct {
	// Render built-in sample data while the binding has no metadata.
	ShowSampleOnEmptyMetadata bool `yaml:"show_sample_on_empty_metadata"`
	// Raise onSelect and onRowClick when a row is selected.
	EnableSelectionEvents bool `yaml:"enable_selection_events"`
	// Apply the host supplied CSS class to the table.
	AllowHostCSSClass bool `yaml:"allow_host_css_class"`
	// Show a placeholder row when no columns are configured.
	ShowEmptySchemaPlaceholder bool `yaml:"show_empty_schema_placeholder"`
}

// DefaultOptions returns the options of the interactive widget.
func DefaultOptions() Options {
	return Options{
		EnableSelectionEvents:      true,
		ShowEmptySchemaPlaceholder: true,
	}
}

// Properties are the host-controlled settings of a widget. A nil field is
// "not changed" when merging.
type Properties struct {
	Title       *string `json:"title,omitempty"`
	CSSClass    *string `json:"cssClass,omitempty"`
	BindingName *string `json:"bindingName,omitempty"`
}

// Merge returns p with every field set in changed replaced.
func (p Properties) Merge(changed Properties) Properties {
	if changed.Title != nil {
		p.Title = changed.Title
	}
	if changed.CSSClass != nil {
		p.CSSClass = changed.CSSClass
	}
	if changed.BindingName != nil {
		p.BindingName = changed.BindingName
	}
	return p
}

// IsEmpty reports whether no field is set.
func (p Properties) IsEmpty() bool {
	return p.Title == nil && p.CSSClass == nil && p.BindingName == nil
}

func (p Properties) title() string {
	if p.Title == nil {
		return ""
	}
	return *p.Title
}

func (p Properties) bindingName() string {
	if p.BindingName == nil || *p.BindingName == "" {
		return DefaultBindingName
	}
	return *p.BindingName
}

var cssClassPattern = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

// ValidCSSClass reports whether s is a space separated list of CSS class
// names.
func ValidCSSClass(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		if !cssClassPattern.MatchString(f) {
			return false
		}
	}
	return true
}
