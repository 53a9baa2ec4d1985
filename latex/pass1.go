// pass1.go - extract cross references
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

import (
	"github.com/seehuhn/texexpand/latex/engine"
)

// quietApp suppresses warnings.  It is used in the first pass, where
// all references are still unresolved.
type quietApp struct {
	*engine.FileApp
}

func (app quietApp) Warning(msg string) {}

// discard is an engine.Output which ignores all text.
type discard struct{}

func (discard) WriteString(s string) error { return nil }
func (discard) WriteSpace() error          { return nil }
func (discard) LineBreak() error           { return nil }
func (discard) EndParagraph() error        { return nil }

// pass1 processes the input without generating output, to find the
// targets of all \label commands.
func (conv *Converter) pass1(parse func(e *engine.Engine) error) (*labelStore, error) {
	labels := newLabelStore()
	e, err := conv.newEngine(quietApp{conv.fileApp()}, discard{}, labels)
	if err != nil {
		return nil, err
	}
	err = parse(e)
	if err != nil {
		return nil, err
	}
	return labels, nil
}
