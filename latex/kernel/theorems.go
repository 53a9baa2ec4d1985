// theorems.go - theorem-like environments
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

func addTheorems(e *engine.Engine) {
	e.PkgState["thm@style"] = "plain"
	defProcessor(e, "newtheorem", mNewTheorem)
}

func addAmsthmMacros(e *engine.Engine, options string) {
	defProcessor(e, "theoremstyle", func(e *engine.Engine, s *engine.Stack) error {
		style, err := e.PopLabelString(s)
		if err != nil {
			return err
		}
		e.PkgState["thm@style"] = style
		return nil
	})
	def(e, &engine.DeclarationFuncs{
		CsName:    "proof",
		BeginFunc: beginProof,
		EndFunc:   endProof,
	})
	defProcessor(e, "qedhere", mPrefix)
}

// theorem is an environment defined by \newtheorem.  Counter is empty
// for unnumbered theorems.
type theorem struct {
	name    string
	title   token.List
	counter string
}

// mNewTheorem implements the two forms \newtheorem{env}[shared]{title}
// and \newtheorem{env}{title}[parent], as well as \newtheorem*.
func mNewTheorem(e *engine.Engine, s *engine.Stack) error {
	star, err := s.PopModifier('*')
	if err != nil {
		return err
	}
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	if e.IsDefined(name) {
		return engine.ErrDefined.With(name)
	}
	shared, err := popOptString(e, s)
	if err != nil {
		return err
	}
	title, err := s.PopArg(0)
	if err != nil {
		return err
	}

	thm := &theorem{
		name:  name,
		title: title,
	}
	switch {
	case star:
		// unnumbered
	case shared != "":
		counter, ok := e.PkgState["thm@counter:"+shared]
		if !ok {
			counter = shared
		}
		if !e.Counters.Has(counter) {
			return engine.ErrUndefinedCounter.With(counter)
		}
		thm.counter = counter
	default:
		parent, err := popOptString(e, s)
		if err != nil {
			return err
		}
		err = newCounter(e, name, parent)
		if err != nil {
			return err
		}
		thm.counter = name
	}
	e.PkgState["thm@counter:"+name] = thm.counter

	def(e, &engine.DeclarationFuncs{
		CsName:    name,
		BeginFunc: thm.begin,
		EndFunc:   mEndParagraph,
	})
	return nil
}

// begin writes the theorem heading, e.g. "Theorem 2.1 (Fermat)."
func (thm *theorem) begin(e *engine.Engine, s *engine.Stack) error {
	note, err := s.PopOptArg(0, '[', ']')
	if err != nil {
		return err
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	err = e.Scope(s, func() error {
		return e.ProcessList(thm.title.Clone(), s)
	})
	if err != nil {
		return err
	}
	if thm.counter != "" {
		if err := refStepCounter(e, thm.counter); err != nil {
			return err
		}
		num, err := e.Counters.Format(thm.counter)
		if err != nil {
			return err
		}
		if err := e.Out.WriteSpace(); err != nil {
			return err
		}
		if err := e.Out.WriteString(num); err != nil {
			return err
		}
	}
	if note != nil {
		if err := e.Out.WriteSpace(); err != nil {
			return err
		}
		if err := e.Out.WriteString("("); err != nil {
			return err
		}
		err = e.Scope(s, func() error {
			return e.ProcessList(note, s)
		})
		if err != nil {
			return err
		}
		if err := e.Out.WriteString(")"); err != nil {
			return err
		}
	}
	if err := e.Out.WriteString("."); err != nil {
		return err
	}
	return e.Out.WriteSpace()
}

func beginProof(e *engine.Engine, s *engine.Stack) error {
	title, err := s.PopOptArg(0, '[', ']')
	if err != nil {
		return err
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	if title == nil {
		err = e.Out.WriteString("Proof")
	} else {
		err = e.Scope(s, func() error {
			return e.ProcessList(title, s)
		})
	}
	if err != nil {
		return err
	}
	if err := e.Out.WriteString("."); err != nil {
		return err
	}
	return e.Out.WriteSpace()
}

func endProof(e *engine.Engine, s *engine.Stack) error {
	if err := e.Out.WriteSpace(); err != nil {
		return err
	}
	if err := e.Out.WriteString("∎"); err != nil {
		return err
	}
	return e.Out.EndParagraph()
}
