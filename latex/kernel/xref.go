// xref.go - labels and cross references
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

package kernel

import (
	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

const currentLabel = "@currentlabel"

func addXref(e *engine.Engine) {
	defProcessor(e, "label", mLabel)
	defProcessor(e, "ref", mRef("", ""))
	defProcessor(e, "pageref", func(e *engine.Engine, s *engine.Stack) error {
		if _, err := e.PopLabelString(s); err != nil {
			return err
		}
		return e.Out.WriteString("??")
	})
}

// setCurrentLabel makes text the value recorded by the next \label in
// the current group.
func setCurrentLabel(e *engine.Engine, text token.List) {
	e.Registry.PutLocal(currentLabel, &engine.Macro{CsName: currentLabel, Body: text})
}

func mLabel(e *engine.Engine, s *engine.Stack) error {
	key, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	if e.Labels == nil {
		return nil
	}
	var text string
	if m, ok := e.Registry.Lookup(currentLabel).(*engine.Macro); ok {
		text = m.Body.Format()
	}
	e.Labels.SetLabel(key, text)
	return nil
}

// mRef implements \ref and \eqref.  Unknown labels are shown as "??".
func mRef(before, after string) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		key, err := e.PopLabelString(s)
		if err != nil {
			return err
		}
		text, ok := "", false
		if e.Labels != nil {
			text, ok = e.Labels.Label(key)
		}
		if !ok {
			e.Warning("reference `" + key + "' undefined")
			text = "??"
		}
		return e.Out.WriteString(before + text + after)
	}
}
