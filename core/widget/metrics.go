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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Render outcomes.
const (
	outcomeRendered       = "rendered"
	outcomeEmptySchema    = "empty_schema"
	outcomeSample         = "sample"
	outcomeMissingBinding = "missing_binding"
)

var (
	renderCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtltable_renders_total",
			Help: "Count of widget renders by outcome.",
		},
		[]string{"widget", "outcome"},
	)

	selectionCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtltable_selections_total",
			Help: "Count of row selection requests, split by whether a row was selected.",
		},
		[]string{"widget", "accepted"},
	)

	eventCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rtltable_events_total",
			Help: "Count of events raised to listeners.",
		},
		[]string{"widget", "event"},
	)
)
