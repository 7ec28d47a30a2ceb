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

// Package widget implements the right-to-left table component: it reads
// its data binding, rebuilds the rendered table on every update, keeps
// the row selection and raises events to the host.
package widget

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/google/rtltable/core/metadata"
	"github.com/google/rtltable/core/resultset"
	"github.com/google/rtltable/core/selection"
	"github.com/google/rtltable/core/views"
	"github.com/google/rtltable/datasources"
)

// BindingSource looks up the binding a widget reads from.
type BindingSource interface {
	Binding(ctx context.Context, name string) (datasources.Binding, error)
}

// Component is one table widget. All methods are safe for concurrent
// use; renders and selections are applied one at a time in call order.
type Component struct {
	mu sync.Mutex

	name    string
	id      string
	options Options
	source  BindingSource
	logger  *logrus.Entry

	props     Properties
	sample    datasources.Binding
	selection selection.State
	table     views.RenderedTable
	rendered  bool

	listenersMu  sync.Mutex
	listeners    map[int]Listener
	nextListener int

	now func() time.Time
}

// New creates a widget reading from source. logger may be nil.
func New(name string, options Options, source BindingSource, logger *logrus.Entry) *Component {
	id := uuid.New().String()
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Component{
		name:      name,
		id:        id,
		options:   options,
		source:    source,
		logger:    logger.WithFields(logrus.Fields{"widget": name, "widget_id": id}),
		sample:    SampleBinding(),
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
}

// Name returns the widget name.
func (c *Component) Name() string {
	return c.name
}

// ID returns the unique id of this widget instance.
func (c *Component) ID() string {
	return c.id
}

// Options returns the options the widget was created with.
func (c *Component) Options() Options {
	return c.options
}

// SetSample replaces the design-time sample binding.
func (c *Component) SetSample(b datasources.Binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sample = b
}

// Properties returns the current properties.
func (c *Component) Properties() Properties {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props
}

// BindingName returns the name of the binding the widget reads.
func (c *Component) BindingName() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props.bindingName()
}

// BeforeUpdate merges changed properties into the widget state. It does
// not render; call AfterUpdate once all changes are applied.
func (c *Component) BeforeUpdate(changed Properties) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props = c.props.Merge(changed)
}

// AfterUpdate re-renders and raises onResultChanged when the render
// completed.
func (c *Component) AfterUpdate(ctx context.Context) bool {
	if !c.Render(ctx) {
		return false
	}
	c.emit(EventResultChanged, c.selectedIndex())
	return true
}

// Render rebuilds the table from the binding. When the binding, its
// metadata or its result set is missing the previous table is kept and
// Render returns false. Render never fails otherwise.
func (c *Component) Render(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	md, rows, sample, err := c.fetch(ctx)
	if err != nil {
		renderCounter.WithLabelValues(c.name, outcomeMissingBinding).Inc()
		c.logger.WithError(err).Debug("Nothing to render")
		return false
	}

	outcome := outcomeRendered
	var table views.RenderedTable
	if columns, err := metadata.Interpret(md); err != nil {
		outcome = outcomeEmptySchema
		c.selection.Clear()
		table = views.BuildEmptySchema(views.Options{
			ShowEmptySchemaPlaceholder: c.options.ShowEmptySchemaPlaceholder,
		})
	} else {
		c.selection.Retain(len(rows))
		table = views.BuildTable(columns, rows, c.selection.Index())
	}
	if sample {
		outcome = outcomeSample
	}

	table.Title = c.props.title()
	table.CSSClass = c.hostCSSClass()
	table.Sample = sample

	c.table = table
	c.rendered = true
	renderCounter.WithLabelValues(c.name, outcome).Inc()
	c.logger.WithFields(logrus.Fields{
		"columns": len(table.Headers),
		"rows":    len(table.Rows),
		"outcome": outcome,
	}).Debug("Rendered table")
	return true
}

// fetch returns the data to render. Absent metadata falls back to the
// sample binding when the widget shows samples.
func (c *Component) fetch(ctx context.Context) (*metadata.Metadata, resultset.ResultSet, bool, error) {
	binding, err := c.source.Binding(ctx, c.props.bindingName())

	var md *metadata.Metadata
	hasMetadata := false
	if err == nil {
		md, hasMetadata = binding.GetMetadata()
	}

	if !hasMetadata && c.options.ShowSampleOnEmptyMetadata && c.sample != nil {
		sampleMD, ok := c.sample.GetMetadata()
		sampleRows, hasRows := c.sample.GetResultSet()
		if ok && hasRows {
			return sampleMD, sampleRows, true, nil
		}
	}

	if err != nil {
		return nil, nil, false, errors.Wrap(err, "binding unavailable")
	}
	if !hasMetadata {
		return nil, nil, false, errors.New("binding has no metadata")
	}
	rows, ok := binding.GetResultSet()
	if !ok {
		return nil, nil, false, errors.New("binding has no result set")
	}
	return md, rows, false, nil
}

func (c *Component) hostCSSClass() string {
	if c.props.CSSClass == nil || *c.props.CSSClass == "" {
		return ""
	}
	class := *c.props.CSSClass
	if !c.options.AllowHostCSSClass {
		return ""
	}
	if !ValidCSSClass(class) {
		c.logger.WithField("css_class", class).Warn("Ignoring invalid host CSS class")
		return ""
	}
	return class
}

// Table returns a copy of the last rendered table and whether any render
// has completed.
func (c *Component) Table() (views.RenderedTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	table := c.table
	table.Headers = append([]string(nil), c.table.Headers...)
	table.Rows = make([]views.RenderedRow, len(c.table.Rows))
	for i, row := range c.table.Rows {
		row.Cells = append([]string(nil), row.Cells...)
		table.Rows[i] = row
	}
	return table, c.rendered
}

// Select highlights row i of the current table, replacing any previous
// highlight. Indexes outside the rendered rows are ignored.
func (c *Component) Select(i int) bool {
	c.mu.Lock()
	ok := c.selection.Select(i, len(c.table.Rows))
	if ok {
		c.table.Highlight(i)
	}
	c.mu.Unlock()

	selectionCounter.WithLabelValues(c.name, strconv.FormatBool(ok)).Inc()
	if !ok {
		c.logger.WithField("row", i).Debug("Ignoring out of range selection")
		return false
	}
	if c.options.EnableSelectionEvents {
		c.emit(EventSelect, i)
		c.emit(EventRowClick, i)
	}
	return true
}

// Clear removes the highlight, if any.
func (c *Component) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Clear()
	c.table.Highlight(selection.None)
}

// Selected returns the selected row and whether one is selected.
func (c *Component) Selected() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Selected()
}

// TriggerAfterDataEntryProcess raises onAfterDataEntryProcess.
func (c *Component) TriggerAfterDataEntryProcess() {
	c.emit(EventAfterDataEntryProcess, c.selectedIndex())
}

// Subscribe registers l for all events of this widget and returns a
// function that removes it.
func (c *Component) Subscribe(l Listener) func() {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	key := c.nextListener
	c.nextListener++
	c.listeners[key] = l

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()
		delete(c.listeners, key)
	}
}

func (c *Component) selectedIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Index()
}

// emit notifies the listeners. row is the selection the event refers to;
// Select passes the row it set so a concurrent Select cannot change it.
func (c *Component) emit(t EventType, row int) {
	event := Event{
		Type:     t,
		Widget:   c.name,
		WidgetID: c.id,
		Row:      row,
		Time:     c.now(),
	}

	c.listenersMu.Lock()
	listeners := make([]Listener, 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.listenersMu.Unlock()

	eventCounter.WithLabelValues(c.name, string(t)).Inc()
	for _, l := range listeners {
		l(event)
	}
}
