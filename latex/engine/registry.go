// registry.go -
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

package engine

import "sort"

// Registry maps control sequence names to commands.  The registry is a
// stack of layers: lookups search from the innermost layer outwards,
// local definitions go into the innermost layer and global definitions
// into the outermost one.
type Registry struct {
	layers []map[string]Command
}

// NewRegistry returns a registry with a single, global layer.
func NewRegistry() *Registry {
	return &Registry{
		layers: []map[string]Command{{}},
	}
}

// Lookup returns the command for `name`, or nil if the name is
// undefined.
func (r *Registry) Lookup(name string) Command {
	for i := len(r.layers) - 1; i >= 0; i-- {
		if cmd, ok := r.layers[i][name]; ok {
			return cmd
		}
	}
	return nil
}

// LookupLocal returns the command for `name` if it was defined in the
// innermost layer, and nil otherwise.
func (r *Registry) LookupLocal(name string) Command {
	return r.layers[len(r.layers)-1][name]
}

// PutLocal defines `name` in the innermost layer.  A nil command makes
// the name undefined until the layer is removed.
func (r *Registry) PutLocal(name string, cmd Command) {
	r.layers[len(r.layers)-1][name] = cmd
}

// PutGlobal defines `name` in the outermost layer and removes all
// definitions of `name` from the inner layers.
func (r *Registry) PutGlobal(name string, cmd Command) {
	for i := len(r.layers) - 1; i > 0; i-- {
		delete(r.layers[i], name)
	}
	if cmd == nil {
		delete(r.layers[0], name)
	} else {
		r.layers[0][name] = cmd
	}
}

// Push adds a new innermost layer.
func (r *Registry) Push() {
	r.layers = append(r.layers, map[string]Command{})
}

// Pop removes the innermost layer, discarding all local definitions
// made since the matching Push.
func (r *Registry) Pop() error {
	if len(r.layers) <= 1 {
		return newError(ErrExtraEndGroup)
	}
	r.layers = r.layers[:len(r.layers)-1]
	return nil
}

// Depth returns the number of layers.
func (r *Registry) Depth() int {
	return len(r.layers)
}

// Names returns the sorted names of all defined commands.
func (r *Registry) Names() []string {
	seen := map[string]bool{}
	for i := len(r.layers) - 1; i >= 0; i-- {
		for name, cmd := range r.layers[i] {
			if _, done := seen[name]; !done {
				seen[name] = cmd != nil
			}
		}
	}
	var res []string
	for name, defined := range seen {
		if defined {
			res = append(res, name)
		}
	}
	sort.Strings(res)
	return res
}

// Overwrite selects what happens when a command is defined under a
// name which is already in use.
type Overwrite int

// The overwrite policies.
const (
	// Forbid fails if the name is already defined (\newcommand).
	Forbid Overwrite = iota

	// Force fails if the name is not yet defined (\renewcommand).
	Force

	// Skip keeps an existing definition (\providecommand).
	Skip

	// Allow always replaces the definition (\def).
	Allow
)
