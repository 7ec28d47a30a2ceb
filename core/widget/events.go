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
	"time"

	"github.com/Velocidex/ordereddict"
)

// EventType names a notification raised to the host.
type EventType string

const (
	// EventSelect follows a successful row selection.
	EventSelect EventType = "onSelect"
	// EventRowClick is raised with EventSelect for older hosts.
	EventRowClick EventType = "onRowClick"
	// EventResultChanged follows a completed render.
	EventResultChanged EventType = "onResultChanged"
	// EventAfterDataEntryProcess is raised on host request.
	EventAfterDataEntryProcess EventType = "onAfterDataEntryProcess"
)

// Event is one notification. Row is the selected row at the time of the
// event, or selection.None.
type Event struct {
	Type     EventType
	Widget   string
	WidgetID string
	Row      int
	Time     time.Time
}

// Dict returns the event with its fields in a stable order, for
// serialisation.
func (e Event) Dict() *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("type", string(e.Type)).
		Set("widget", e.Widget).
		Set("widget_id", e.WidgetID).
		Set("row", e.Row).
		Set("time", e.Time.UTC().Format(time.RFC3339Nano))
}

// Listener receives events. It is called outside the widget lock and may
// call back into the widget.
type Listener func(Event)
