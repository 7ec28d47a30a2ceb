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

package selection

// None is the row index reported when nothing is selected.
const None = -1

// State holds at most one selected row. The zero value has nothing
// selected. State is not safe for concurrent use; the owning component
// serialises access.
type State struct {
	row      int
	selected bool
}

// Select marks row i as the only selected row. Indexes outside
// [0, rowCount) leave the state unchanged and return false.
func (s *State) Select(i, rowCount int) bool {
	if i < 0 || i >= rowCount {
		return false
	}
	s.row, s.selected = i, true
	return true
}

// Clear drops the selection, if any.
func (s *State) Clear() {
	s.row, s.selected = 0, false
}

// Selected returns the selected row and whether one is selected.
func (s *State) Selected() (int, bool) {
	return s.row, s.selected
}

// Index returns the selected row or None.
func (s *State) Index() int {
	if !s.selected {
		return None
	}
	return s.row
}

// Retain clears the selection when it no longer fits in rowCount rows.
// It is applied after each rebuild so a selection survives re-renders
// only while its row still exists.
func (s *State) Retain(rowCount int) {
	if s.selected && s.row >= rowCount {
		s.Clear()
	}
}
