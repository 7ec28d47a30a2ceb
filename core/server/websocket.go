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

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"

	"github.com/google/rtltable/core/widget"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Subscribers must answer pings within pongWait.
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// Subscribers only send control frames.
	maxMessageSize = 512

	// Events queued per subscriber before new ones are dropped.
	eventBuffer = 64
)

var (
	currentEventStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rtltable_event_streams",
		Help: "Number of connected event stream subscribers.",
	})

	droppedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rtltable_dropped_events_total",
		Help: "Events not delivered to a slow subscriber.",
	}, []string{"widget"})
)

// handleEvents streams the widget's events as JSON text messages. The
// listener is registered before the upgrade completes, so every event
// raised after the handshake is delivered.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, c *widget.Component) {
	events := make(chan widget.Event, eventBuffer)
	unsubscribe := c.Subscribe(func(e widget.Event) {
		select {
		case events <- e:
		default:
			droppedEvents.WithLabelValues(c.Name()).Inc()
		}
	})
	defer unsubscribe()

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already answered the request.
		s.logger.WithError(err).WithField("widget", c.Name()).Debug("Event stream upgrade failed")
		return
	}
	defer ws.Close()

	currentEventStreams.Inc()
	defer currentEventStreams.Dec()

	logger := s.logger.WithFields(logrus.Fields{
		"widget": c.Name(),
		"remote": r.RemoteAddr,
	})
	logger.Debug("Event stream connected")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Read and drop everything so pongs and close frames are processed.
	go func() {
		defer cancel()
		ws.SetReadLimit(maxMessageSize)
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Event stream closed")
			return

		case e := <-events:
			data, err := json.Marshal(e.Dict())
			if err != nil {
				logger.WithError(err).Error("Failed to encode event")
				continue
			}
			_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logger.WithError(err).Debug("Event stream write failed")
				return
			}

		case <-ticker.C:
			if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
