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

// Package server hosts table widgets over HTTP. It is the host side of
// the widget: it pushes bindings and properties in, serves the rendered
// table and forwards widget events to subscribers.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/Velocidex/ordereddict"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/google/rtltable/core/query"
	"github.com/google/rtltable/core/rendering"
	"github.com/google/rtltable/core/views"
	"github.com/google/rtltable/core/widget"
	"github.com/google/rtltable/datasources"
)

// maxPayloadSize bounds binding and property uploads.
const maxPayloadSize = 10 * 1024 * 1024

// ErrDuplicateWidget is returned when a widget name is already hosted.
var ErrDuplicateWidget = errors.New("widget already registered")

// Server represents the application server with all its dependencies
type Server struct {
	renderer *rendering.Renderer
	manager  *datasources.Manager
	logger   *logrus.Entry
	title    string

	mu      sync.RWMutex
	widgets map[string]*widget.Component
	order   []string

	upgrader websocket.Upgrader
}

// NewServer creates a new server reading bindings from manager.
// logger may be nil.
func NewServer(manager *datasources.Manager, logger *logrus.Entry) (*Server, error) {
	renderer, err := rendering.NewRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create renderer")
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Server{
		renderer: renderer,
		manager:  manager,
		logger:   logger,
		title:    "RTL Tables",
		widgets:  make(map[string]*widget.Component),
	}, nil
}

// SetTitle sets the landing page title
func (s *Server) SetTitle(title string) {
	s.title = title
}

// AddWidget hosts c under its name.
func (s *Server) AddWidget(c *widget.Component) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.widgets[c.Name()]; ok {
		return errors.Wrap(ErrDuplicateWidget, c.Name())
	}
	s.widgets[c.Name()] = c
	s.order = append(s.order, c.Name())
	return nil
}

// Widget returns the hosted widget called name.
func (s *Server) Widget(name string) (*widget.Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.widgets[name]
	return c, ok
}

// widgetsReading returns the widgets bound to binding, in registration order.
func (s *Server) widgetsReading(binding string) []*widget.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*widget.Component
	for _, name := range s.order {
		if c := s.widgets[name]; c.BindingName() == binding {
			result = append(result, c)
		}
	}
	return result
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleLanding)
	mux.HandleFunc("GET /widgets/{name}", s.withWidget(s.handleTable(query.FormatHTML, true)))
	mux.HandleFunc("GET /widgets/{name}/text", s.withWidget(s.handleTable(query.FormatText, false)))
	mux.HandleFunc("GET /widgets/{name}/table.json", s.withWidget(s.handleTable(query.FormatJSON, false)))
	mux.HandleFunc("PUT /widgets/{name}/binding", s.withWidget(s.handlePutBinding))
	mux.HandleFunc("DELETE /widgets/{name}/binding", s.withWidget(s.handleDeleteBinding))
	mux.HandleFunc("POST /widgets/{name}/properties", s.withWidget(s.handleProperties))
	mux.HandleFunc("POST /widgets/{name}/select", s.withWidget(s.handleSelect))
	mux.HandleFunc("POST /widgets/{name}/clear", s.withWidget(s.handleClear))
	mux.HandleFunc("POST /widgets/{name}/data-entry", s.withWidget(s.handleDataEntry))
	mux.HandleFunc("GET /widgets/{name}/events", s.withWidget(s.handleEvents))
	mux.Handle("GET /metrics", promhttp.Handler())
	return s.logRequests(mux)
}

type widgetHandler func(w http.ResponseWriter, r *http.Request, c *widget.Component)

// withWidget resolves the {name} path value or answers 404.
func (s *Server) withWidget(h widgetHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		c, ok := s.Widget(name)
		if !ok {
			http.Error(w, "Widget '"+name+"' not found", http.StatusNotFound)
			return
		}
		h(w, r, c)
	}
}

// handleLanding lists the hosted widgets.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	components := make([]*widget.Component, 0, len(s.order))
	for _, name := range s.order {
		components = append(components, s.widgets[name])
	}
	s.mu.RUnlock()

	vm := views.LandingViewModel{Title: s.title}
	for _, c := range components {
		table, _ := c.Table()
		info := views.WidgetInfo{
			Name:        c.Name(),
			URL:         query.WidgetURL(c.Name()),
			RowCount:    len(table.Rows),
			ColumnCount: len(table.Headers),
			Selected:    table.HighlightedIndex(),
		}
		if title := c.Properties().Title; title != nil {
			info.Title = *title
		}
		vm.Widgets = append(vm.Widgets, info)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Landing(w, vm); err != nil {
		s.logger.WithError(err).Error("Landing page rendering error")
	}
}

// handleTable serves the current table. When formatParam is set the
// format query parameter may override format.
func (s *Server) handleTable(format string, formatParam bool) widgetHandler {
	return func(w http.ResponseWriter, r *http.Request, c *widget.Component) {
		q, err := query.NewQuery(r.URL, c.Name())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if !formatParam {
			q.Format = format
		}

		table, rendered := c.Table()
		if !rendered {
			c.Render(r.Context())
			table, rendered = c.Table()
		}

		switch q.Format {
		case query.FormatText:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			s.renderer.Text(w, table)
		case query.FormatJSON:
			s.writeJSON(w, http.StatusOK, tableDict(c.Name(), table, rendered))
		default:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			page := views.TablePage{RenderedTable: table, WidgetPath: q.Path}
			if err := s.renderer.Table(w, page); err != nil {
				s.logger.WithError(err).WithField("widget", c.Name()).Error("Template rendering error")
			}
		}
	}
}

// handlePutBinding replaces the data of the widget's binding and
// re-renders every widget reading it.
func (s *Server) handlePutBinding(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	if err != nil {
		http.Error(w, "Failed to read binding: "+err.Error(), http.StatusBadRequest)
		return
	}

	binding, err := datasources.ParseBinding(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	name := c.BindingName()
	s.manager.SetBinding(name, binding)
	s.updateReaders(r, name)

	table, rendered := c.Table()
	s.writeJSON(w, http.StatusOK, tableDict(c.Name(), table, rendered))
}

// handleDeleteBinding drops the binding. Widgets reading it keep their
// last table.
func (s *Server) handleDeleteBinding(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	name := c.BindingName()
	s.manager.RemoveBinding(name)
	s.updateReaders(r, name)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateReaders(r *http.Request, binding string) {
	for _, reader := range s.widgetsReading(binding) {
		if !reader.AfterUpdate(r.Context()) {
			s.logger.WithFields(logrus.Fields{
				"widget":  reader.Name(),
				"binding": binding,
			}).Info("Binding not renderable, keeping previous table")
		}
	}
}

func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	var changed widget.Properties
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPayloadSize))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&changed); err != nil {
		http.Error(w, "Invalid properties: "+err.Error(), http.StatusBadRequest)
		return
	}
	if changed.IsEmpty() {
		http.Error(w, "No properties given", http.StatusBadRequest)
		return
	}

	c.BeforeUpdate(changed)
	c.AfterUpdate(r.Context())

	table, rendered := c.Table()
	s.writeJSON(w, http.StatusOK, tableDict(c.Name(), table, rendered))
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	q, err := query.NewQuery(r.URL, c.Name())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !q.HasRow() {
		http.Error(w, "row parameter is required", http.StatusBadRequest)
		return
	}

	if !c.Select(q.Row) {
		http.Error(w, "row out of range", http.StatusConflict)
		return
	}

	table, rendered := c.Table()
	s.writeJSON(w, http.StatusOK, tableDict(c.Name(), table, rendered))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	c.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDataEntry(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	c.TriggerAfterDataEntryProcess()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// tableDict is the JSON form of a rendered table. Keys keep a fixed
// order so responses diff cleanly.
func tableDict(name string, table views.RenderedTable, rendered bool) *ordereddict.Dict {
	rows := make([]*ordereddict.Dict, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, ordereddict.NewDict().
			Set("index", row.Index).
			Set("cells", append([]string{}, row.Cells...)).
			Set("highlighted", row.Highlighted))
	}

	return ordereddict.NewDict().
		Set("widget", name).
		Set("rendered", rendered).
		Set("direction", views.Direction).
		Set("title", table.Title).
		Set("css_class", table.CSSClass).
		Set("headers", append([]string{}, table.Headers...)).
		Set("rows", rows).
		Set("placeholder", table.Placeholder).
		Set("sample", table.Sample).
		Set("selected", table.HighlightedIndex())
}
