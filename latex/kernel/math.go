// math.go - maths mode
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

// mathOpener is stored in the registry while a formula started by "$",
// "$$", "\(" or "\[" is open.  It records the closing delimiter.
type mathOpener struct {
	closing string
}

func (m *mathOpener) Name() string {
	return "@mathopener"
}

func addMath(e *engine.Engine) {
	e.SetCharHandler(token.MathShift, mathShift)
	e.SetCharHandler(token.Superscript, mathOnly)
	e.SetCharHandler(token.Subscript, mathOnly)
	defProcessor(e, "(", mOpenMath(engine.ModeInlineMath, ")"))
	defProcessor(e, "[", mOpenMath(engine.ModeDisplayMath, "]"))
	defProcessor(e, ")", mCloseMath(")"))
	defProcessor(e, "]", mCloseMath("]"))
	defProcessor(e, "ensuremath", func(e *engine.Engine, s *engine.Stack) error {
		arg, err := s.PopArg(0)
		if err != nil {
			return err
		}
		return e.Scope(s, func() error {
			if !e.Settings.Mode().IsMath() {
				e.Settings.SetMode(engine.ModeInlineMath)
			}
			return e.ProcessList(arg, s)
		})
	})
}

func openMath(e *engine.Engine, mode engine.Mode, closing string) error {
	if e.Settings.Mode().IsMath() {
		return engine.ErrMisplaced.With(openerFor(closing))
	}
	if mode == engine.ModeDisplayMath {
		if err := e.Out.EndParagraph(); err != nil {
			return err
		}
	}
	e.StartGroup()
	e.Settings.SetMode(mode)
	e.Registry.PutLocal("@mathopener", &mathOpener{closing: closing})
	return nil
}

func closeMath(e *engine.Engine, s *engine.Stack, closing string) error {
	// the formula must be closed in the group it was opened in
	open, ok := e.Registry.LookupLocal("@mathopener").(*mathOpener)
	if !ok || open.closing != closing {
		return engine.ErrMisplaced.With(closing)
	}
	display := e.Settings.Mode() == engine.ModeDisplayMath
	if err := e.EndGroup(s); err != nil {
		return err
	}
	if display {
		return e.Out.EndParagraph()
	}
	return nil
}

func openerFor(closing string) string {
	switch closing {
	case ")":
		return `\(`
	case "]":
		return `\[`
	}
	return closing
}

// mathShift handles "$" and "$$".
func mathShift(e *engine.Engine, tok *token.Token, s *engine.Stack) error {
	open, _ := e.Registry.Lookup("@mathopener").(*mathOpener)
	if open != nil && open.closing == "$" {
		return closeMath(e, s, "$")
	}

	next, err := s.Peek()
	if err != nil {
		return err
	}
	double := next != nil && next.Kind == token.MathShift
	if double {
		s.Pop()
	}
	if open != nil && open.closing == "$$" {
		if !double {
			return engine.ErrMisplaced.With("$")
		}
		return closeMath(e, s, "$$")
	}
	if double {
		return openMath(e, engine.ModeDisplayMath, "$$")
	}
	return openMath(e, engine.ModeInlineMath, "$")
}

func mathOnly(e *engine.Engine, tok *token.Token, s *engine.Stack) error {
	if !e.Settings.Mode().IsMath() {
		return engine.ErrMisplaced.With(string(tok.Char))
	}
	return e.Out.WriteString(string(tok.Char))
}

func mOpenMath(mode engine.Mode, closing string) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		return openMath(e, mode, closing)
	}
}

func mCloseMath(closing string) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		return closeMath(e, s, closing)
	}
}

// mTextInMath implements the amsmath command \text{...}.
func mTextInMath(e *engine.Engine, s *engine.Stack) error {
	arg, err := s.PopArg(0)
	if err != nil {
		return err
	}
	return e.Scope(s, func() error {
		enterTextMode(e)
		return e.ProcessList(arg, s)
	})
}

// enterTextMode switches from maths to text mode for the rest of the
// current group.  The maths delimiter of the enclosing formula is
// hidden, so that "$" starts a nested formula.
func enterTextMode(e *engine.Engine) {
	if e.Settings.Mode().IsMath() {
		e.Settings.SetMode(engine.ModeText)
		e.Registry.PutLocal("@mathopener", nil)
	}
}
