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
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrBindingNotFound is returned when no binding is registered under a name.
var ErrBindingNotFound = errors.New("binding not found")

// Manager holds the named bindings widgets read from. Bindings are
// replaced as a whole whenever the host pushes new data.
type Manager struct {
	mu sync.RWMutex

	// Current bindings indexed by binding name
	bindings map[string]Binding

	// Registered loaders indexed by source_type
	loaders map[string]DataSourceLoader

	// Base directory for resolving relative paths
	baseDir string
}

// NewManager creates a new binding manager with the CSV loader registered.
func NewManager() *Manager {
	m := &Manager{
		bindings: make(map[string]Binding),
		loaders:  make(map[string]DataSourceLoader),
	}
	m.RegisterLoader(NewCsvLoader())
	return m
}

// RegisterLoader registers a loader for its source type.
// If a loader is already registered for this type, it will be replaced.
func (m *Manager) RegisterLoader(loader DataSourceLoader) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaders[loader.SourceType()] = loader
}

// SetBaseDir sets the directory relative file_path values resolve against.
func (m *Manager) SetBaseDir(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.baseDir = dir
}

// SetBinding registers or replaces the binding stored under name.
func (m *Manager) SetBinding(name string, binding Binding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[name] = binding
}

// RemoveBinding drops the binding stored under name, if any.
func (m *Manager) RemoveBinding(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.bindings, name)
}

// LoadBinding builds a binding with the loader for sourceType and stores
// it under name.
func (m *Manager) LoadBinding(name, sourceType string, config map[string]string) error {
	m.mu.RLock()
	loader, ok := m.loaders[sourceType]
	baseDir := m.baseDir
	m.mu.RUnlock()
	if !ok {
		return errors.Errorf("no loader registered for source type %q", sourceType)
	}

	resolved := make(map[string]string, len(config))
	for k, v := range config {
		resolved[k] = v
	}
	if p := resolved["file_path"]; p != "" && !filepath.IsAbs(p) && baseDir != "" {
		resolved["file_path"] = filepath.Join(baseDir, p)
	}

	binding, err := loader.Load(resolved)
	if err != nil {
		return errors.Wrapf(err, "failed to load binding %q", name)
	}
	m.SetBinding(name, binding)
	return nil
}

// Binding returns the binding stored under name.
func (m *Manager) Binding(ctx context.Context, name string) (Binding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	binding, ok := m.bindings[name]
	if !ok {
		return nil, errors.Wrap(ErrBindingNotFound, name)
	}
	return binding, nil
}

// GetBindingNames returns the registered binding names, sorted.
func (m *Manager) GetBindingNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.bindings))
	for name := range m.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
