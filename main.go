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

package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/google/rtltable/config"
	"github.com/google/rtltable/core/logging"
	"github.com/google/rtltable/core/query"
	"github.com/google/rtltable/core/rendering"
	"github.com/google/rtltable/core/server"
	"github.com/google/rtltable/core/views"
	"github.com/google/rtltable/core/widget"
	"github.com/google/rtltable/datasources"
	"github.com/google/rtltable/demo"
)

const shutdownTimeout = 5 * time.Second

var (
	app = kingpin.New("rtltable", "Right-to-left table widget.")

	logLevel  = app.Flag("log-level", "Log level, overrides the config file.").String()
	logFormat = app.Flag("log-format", "Log format, overrides the config file.").Enum(logging.FormatText, logging.FormatJSON)

	serveCmd    = app.Command("serve", "Host table widgets over HTTP.").Default()
	serveConfig = serveCmd.Flag("config", "YAML configuration file.").Short('c').ExistingFile()
	serveListen = serveCmd.Flag("listen", "Listen address, overrides the config file.").String()
	serveDemo   = serveCmd.Flag("demo", "Also host the demo widgets.").Bool()

	renderCmd    = app.Command("render", "Render a binding to stdout.")
	renderInput  = renderCmd.Arg("binding", "Binding JSON file, or - for stdin.").Default("-").String()
	renderCSV    = renderCmd.Flag("csv", "The binding is a CSV sample file.").Bool()
	renderTitle  = renderCmd.Flag("title", "Table title.").String()
	renderRow    = renderCmd.Flag("select", "Row to highlight.").Default("-1").Int()
	renderFormat = renderCmd.Flag("format", "Output format.").Default(query.FormatText).
			Enum(query.FormatText, query.FormatHTML)
)

func main() {
	app.HelpFlag.Short('h')
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case serveCmd.FullCommand():
		err = runServe()
	case renderCmd.FullCommand():
		err = runRender(os.Stdout)
	}
	kingpin.FatalIfError(err, "%s", command)
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *serveConfig != "" {
		var err error
		if cfg, err = config.Load(*serveConfig); err != nil {
			return nil, err
		}
	}
	if *serveListen != "" {
		cfg.Listen = *serveListen
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Logging.Format = *logFormat
	}
	return cfg, nil
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	entry := logrus.NewEntry(logger)

	manager := datasources.NewManager()
	manager.SetBaseDir(cfg.BaseDir)

	srv, err := server.NewServer(manager, entry)
	if err != nil {
		return err
	}

	components, err := buildWidgets(cfg, manager, entry)
	if err != nil {
		return err
	}
	if *serveDemo {
		demoComponents, err := buildDemoWidgets(manager, entry)
		if err != nil {
			return err
		}
		components = append(components, demoComponents...)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for _, c := range components {
		if err := srv.AddWidget(c); err != nil {
			return err
		}
		if !c.AfterUpdate(ctx) {
			entry.WithField("widget", c.Name()).Info("Widget waiting for its binding")
		}
	}

	httpServer := &http.Server{
		Addr:         cfg.Listen,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		entry.WithField("listen", cfg.Listen).Info("Server starting")
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	entry.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// buildWidgets creates the configured widgets and loads their CSV files.
func buildWidgets(cfg *config.Config, manager *datasources.Manager, logger *logrus.Entry) ([]*widget.Component, error) {
	csvLoader := datasources.NewCsvLoader()

	var components []*widget.Component
	for _, wc := range cfg.Widgets {
		c := widget.New(wc.Name, wc.WidgetOptions(), manager, logger)

		props := widget.Properties{BindingName: stringPtr(wc.BindingName())}
		if wc.Title != "" {
			props.Title = stringPtr(wc.Title)
		}
		if wc.CSSClass != "" {
			props.CSSClass = stringPtr(wc.CSSClass)
		}
		c.BeforeUpdate(props)

		if wc.SampleCSV != "" {
			sample, err := csvLoader.Load(map[string]string{"file_path": cfg.ResolvePath(wc.SampleCSV)})
			if err != nil {
				return nil, errors.Wrapf(err, "widget %q sample", wc.Name)
			}
			c.SetSample(sample)
		}

		if wc.DataCSV != "" {
			err := manager.LoadBinding(wc.BindingName(), csvLoader.SourceType(), map[string]string{"file_path": wc.DataCSV})
			if err != nil {
				return nil, errors.Wrapf(err, "widget %q data", wc.Name)
			}
		}

		components = append(components, c)
	}
	return components, nil
}

func buildDemoWidgets(manager *datasources.Manager, logger *logrus.Entry) ([]*widget.Component, error) {
	tables, err := demo.Tables()
	if err != nil {
		return nil, err
	}

	var components []*widget.Component
	for _, t := range tables {
		manager.SetBinding(t.Name, t.Binding)

		options := widget.DefaultOptions()
		options.AllowHostCSSClass = true
		c := widget.New(t.Name, options, manager, logger)
		c.BeforeUpdate(widget.Properties{
			Title:       stringPtr(t.Title),
			BindingName: stringPtr(t.Name),
		})
		components = append(components, c)
	}
	return components, nil
}

// runRender renders one binding through a widget, the same path the
// server takes.
func runRender(out io.Writer) error {
	level := *logLevel
	if level == "" {
		level = "warn"
	}
	format := *logFormat
	if format == "" {
		format = logging.FormatText
	}
	logger, err := logging.NewLogger(os.Stderr, level, format)
	if err != nil {
		return err
	}
	entry := logrus.NewEntry(logger)

	binding, err := readBinding(*renderInput, *renderCSV)
	if err != nil {
		return err
	}

	manager := datasources.NewManager()
	manager.SetBinding(widget.DefaultBindingName, binding)

	options := widget.DefaultOptions()
	options.EnableSelectionEvents = false
	c := widget.New("render", options, manager, entry)
	if *renderTitle != "" {
		c.BeforeUpdate(widget.Properties{Title: stringPtr(*renderTitle)})
	}

	if !c.Render(context.Background()) {
		return errors.New("binding has no metadata or no data")
	}
	if *renderRow >= 0 && !c.Select(*renderRow) {
		return errors.Errorf("row %d out of range", *renderRow)
	}

	renderer, err := rendering.NewRenderer()
	if err != nil {
		return err
	}
	table, _ := c.Table()
	if *renderFormat == query.FormatHTML {
		return renderer.Table(out, views.TablePage{RenderedTable: table})
	}
	renderer.Text(out, table)
	return nil
}

func readBinding(path string, isCSV bool) (*datasources.StaticBinding, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to open binding")
		}
		defer f.Close()
		r = f
	}

	if isCSV {
		return datasources.NewCsvLoader().Parse(r, ',')
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read binding")
	}
	return datasources.ParseBinding(payload)
}

func stringPtr(s string) *string {
	return &s
}
