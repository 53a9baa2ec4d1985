// suggest.go -
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

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

const maxSuggestions = 3

// suggest returns a "did you mean" hint listing defined control
// sequences with names similar to `name`.
func (e *Engine) suggest(name string) string {
	if name == "" {
		return ""
	}
	var names []string
	for _, other := range e.Registry.Names() {
		if !strings.HasPrefix(other, "\x00") {
			names = append(names, other)
		}
	}

	var found []string
	ranks := fuzzy.RankFindFold(name, names)
	sort.Sort(ranks)
	for _, r := range ranks {
		if r.Target == name || r.Distance > len(name) {
			continue
		}
		found = append(found, r.Target)
		if len(found) == maxSuggestions {
			break
		}
	}

	if len(found) == 0 {
		type candidate struct {
			name string
			dist int
		}
		var near []candidate
		for _, other := range names {
			d := fuzzy.LevenshteinDistance(strings.ToLower(name), strings.ToLower(other))
			if d <= 2 && d < len(name) {
				near = append(near, candidate{other, d})
			}
		}
		sort.Slice(near, func(i, j int) bool {
			if near[i].dist != near[j].dist {
				return near[i].dist < near[j].dist
			}
			return near[i].name < near[j].name
		})
		for i := 0; i < len(near) && i < maxSuggestions; i++ {
			found = append(found, near[i].name)
		}
	}

	if len(found) == 0 {
		return ""
	}
	return `did you mean \` + strings.Join(found, `, \`) + "?"
}
