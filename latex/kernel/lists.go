// lists.go - list environments
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

const enumDepth = "@enumdepth"

// enumLabels gives the item labels for the four levels of enumerate.
var enumLabels = []struct {
	counter       string
	before, after  string
}{
	{"enumi", "", "."},
	{"enumii", "(", ")"},
	{"enumiii", "", "."},
	{"enumiv", "", "."},
}

func addLists(e *engine.Engine) error {
	def(e, &engine.DeclarationFuncs{
		CsName:    "itemize",
		BeginFunc: beginList(itemizeLabel),
		EndFunc:   mEndParagraph,
	})
	def(e, &engine.DeclarationFuncs{
		CsName:    "enumerate",
		BeginFunc: beginEnumerate,
		EndFunc:   mEndParagraph,
	})
	def(e, &engine.DeclarationFuncs{
		CsName:    "description",
		BeginFunc: beginList(nil),
		EndFunc:   mEndParagraph,
	})
	defProcessor(e, "item", func(e *engine.Engine, s *engine.Stack) error {
		return engine.ErrMisplaced.With(`\item`)
	})
	return e.Settings.NewRegister(enumDepth, engine.CountRegister)
}

func itemizeLabel(e *engine.Engine) (token.List, error) {
	return token.String("•"), nil
}

// beginList starts a list environment.  The command \item is defined
// locally, using label to generate the item labels.  For a nil label,
// items without an optional argument are unlabelled.
func beginList(label func(e *engine.Engine) (token.List, error)) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		if err := e.Out.EndParagraph(); err != nil {
			return err
		}
		e.Registry.PutLocal("item", engine.NewProcessor("item", func(e *engine.Engine, s *engine.Stack) error {
			return item(e, s, label)
		}))
		return nil
	}
}

func item(e *engine.Engine, s *engine.Stack, label func(e *engine.Engine) (token.List, error)) error {
	text, err := s.PopOptArg(0, '[', ']')
	if err != nil {
		return err
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	if text == nil && label != nil {
		text, err = label(e)
		if err != nil {
			return err
		}
	}
	if text == nil {
		return nil
	}
	err = e.Scope(s, func() error {
		return e.ProcessList(text, s)
	})
	if err != nil {
		return err
	}
	return e.Out.WriteSpace()
}

func beginEnumerate(e *engine.Engine, s *engine.Stack) error {
	depth, _, err := e.Settings.Register(enumDepth)
	if err != nil {
		return err
	}
	if depth >= len(enumLabels) {
		return engine.ErrNotAllowed.With("begin{enumerate}")
	}
	if err := e.Settings.SetRegister(enumDepth, depth+1, false); err != nil {
		return err
	}
	lab := enumLabels[depth]
	if err := e.Counters.Set(lab.counter, 0); err != nil {
		return err
	}
	return beginList(func(e *engine.Engine) (token.List, error) {
		if err := refStepCounter(e, lab.counter); err != nil {
			return nil, err
		}
		num, err := e.Counters.Format(lab.counter)
		if err != nil {
			return nil, err
		}
		return token.String(lab.before + num + lab.after), nil
	})(e, s)
}
