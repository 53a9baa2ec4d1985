// xref.go - targets of cross references
// Copyright (C) 2016  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package latex

import "sort"

// labelStore records the text of all \label targets.  It implements
// engine.LabelStore.
type labelStore struct {
	labels map[string]string
	dups   map[string]bool
	frozen bool
}

func newLabelStore() *labelStore {
	return &labelStore{
		labels: make(map[string]string),
		dups:   make(map[string]bool),
	}
}

// SetLabel records the target of a label.  Once the store is frozen,
// the values found in the first pass are kept.
func (ls *labelStore) SetLabel(label, text string) {
	if ls.frozen {
		return
	}
	if _, seen := ls.labels[label]; seen {
		ls.dups[label] = true
	}
	ls.labels[label] = text
}

// Label returns the text recorded for label.
func (ls *labelStore) Label(label string) (string, bool) {
	text, ok := ls.labels[label]
	return text, ok
}

// Duplicates returns the labels which were defined more than once, in
// alphabetical order.
func (ls *labelStore) Duplicates() []string {
	var res []string
	for label := range ls.dups {
		res = append(res, label)
	}
	sort.Strings(res)
	return res
}

func (ls *labelStore) freeze() *labelStore {
	ls.frozen = true
	return ls
}
