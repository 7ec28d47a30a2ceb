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

// Package config loads the YAML configuration of the table host.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/google/rtltable/core/widget"
)

// Config is the host configuration.
type Config struct {
	Listen       string        `yaml:"listen"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`

	Logging LoggingConfig  `yaml:"logging"`
	Widgets []WidgetConfig `yaml:"widgets"`

	// Directory of the config file; relative paths resolve against it.
	BaseDir string `yaml:"-"`
}

// LoggingConfig selects the log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WidgetConfig declares one table widget.
type WidgetConfig struct {
	Name      string          `yaml:"name"`
	Title     string          `yaml:"title"`
	Binding   string          `yaml:"binding"`
	CSSClass  string          `yaml:"css_class"`
	SampleCSV string          `yaml:"sample_csv"`
	DataCSV   string          `yaml:"data_csv"`
	Options   *widget.Options `yaml:"options"`
}

// UnmarshalYAML starts the options block from widget.DefaultOptions, so
// keys left out of the file keep their default values.
func (w *WidgetConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain WidgetConfig
	options := widget.DefaultOptions()
	p := plain{Options: &options}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*w = WidgetConfig(p)
	return nil
}

// WidgetOptions returns the configured options or the defaults.
func (w WidgetConfig) WidgetOptions() widget.Options {
	if w.Options == nil {
		return widget.DefaultOptions()
	}
	return *w.Options
}

// BindingName returns the binding the widget reads.
func (w WidgetConfig) BindingName() string {
	if w.Binding == "" {
		return w.Name
	}
	return w.Binding
}

// Default returns the configuration used when no file is given: one
// interactive widget showing sample data until the host binds data.
func Default() *Config {
	options := widget.DefaultOptions()
	options.ShowSampleOnEmptyMetadata = true
	return &Config{
		Listen:       "127.0.0.1:8097",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Widgets: []WidgetConfig{
			{Name: "rtl-table", Title: "RTL Table", Options: &options},
		},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes YAML over the defaults. A widgets list in data replaces
// the default widget.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for mistakes a host cannot recover from.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return errors.New("listen address is required")
	}
	if c.ReadTimeout < 0 || c.WriteTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}
	if len(c.Widgets) == 0 {
		return errors.New("at least one widget is required")
	}

	seen := make(map[string]bool)
	for i, w := range c.Widgets {
		if w.Name == "" {
			return errors.Errorf("widget %d has no name", i)
		}
		if seen[w.Name] {
			return errors.Errorf("duplicate widget name %q", w.Name)
		}
		seen[w.Name] = true
		if w.CSSClass != "" && !widget.ValidCSSClass(w.CSSClass) {
			return errors.Errorf("widget %q has an invalid css_class %q", w.Name, w.CSSClass)
		}
	}
	return nil
}

// ResolvePath makes p relative to the config file directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
