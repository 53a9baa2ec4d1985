// registers.go - count and dimen registers, lengths
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
)

func addRegisters(e *engine.Engine) {
	defProcessor(e, "newcount", mNewRegister(engine.CountRegister, false))
	defProcessor(e, "newdimen", mNewRegister(engine.DimenRegister, false))
	defProcessor(e, "newskip", mNewRegister(engine.DimenRegister, false))
	defProcessor(e, "newlength", mNewRegister(engine.DimenRegister, true))
	defProcessor(e, "advance", mAdvance)
	defProcessor(e, "multiply", mMultiply)
	defProcessor(e, "divide", mDivide)
	defProcessor(e, "setlength", mSetLength)
	defProcessor(e, "addtolength", mAddToLength)
}

// standard lengths and their initial values, in points
var standardLengths = map[string]float64{
	"parindent":    15,
	"parskip":      0,
	"textwidth":    345,
	"linewidth":    345,
	"columnwidth":  345,
	"textheight":   550,
	"baselineskip": 12,
}

func addLengths(e *engine.Engine) error {
	for name, pt := range standardLengths {
		err := newRegister(e, name, engine.DimenRegister, false)
		if err != nil {
			return err
		}
		err = e.Settings.SetRegister(name, int(pt*engine.ScaledPoints), true)
		if err != nil {
			return err
		}
	}
	return nil
}

func newRegister(e *engine.Engine, name string, kind engine.RegisterKind, latex bool) error {
	policy := engine.Allow
	if latex {
		policy = engine.Forbid
	}
	if err := e.Settings.NewRegister(name, kind); err != nil {
		return err
	}
	return e.Define(name, &engine.RegisterCmd{CsName: name, Register: name}, policy, true)
}

// mNewRegister implements \newcount, \newdimen and \newlength.  The
// LaTeX form accepts braces and refuses to redefine existing commands.
func mNewRegister(kind engine.RegisterKind, latex bool) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		pop := popCsName
		if latex {
			pop = popCsArg
		}
		name, err := pop(s)
		if err != nil {
			return err
		}
		if latex && e.IsDefined(name) {
			return engine.ErrDefined.With(name)
		}
		return newRegister(e, name, kind, latex)
	}
}

// popRegister removes a register reference, as in \advance\count.
func popRegister(e *engine.Engine, s *engine.Stack, braces bool) (string, engine.RegisterKind, error) {
	pop := popCsName
	if braces {
		pop = popCsArg
	}
	name, err := pop(s)
	if err != nil {
		return "", 0, err
	}
	r, ok := e.Lookup(name).(*engine.RegisterCmd)
	if !ok {
		return "", 0, engine.ErrRegisterUndef.With(name)
	}
	_, kind, err := e.Settings.Register(r.Register)
	return r.Register, kind, err
}

func mAdvance(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	reg, kind, err := popRegister(e, s, false)
	if err != nil {
		return err
	}
	if _, err := s.PopKeyword("by"); err != nil {
		return err
	}
	var delta int
	if kind == engine.DimenRegister {
		delta, err = e.PopDimension(s)
	} else {
		delta, err = e.PopNumber(s)
	}
	if err != nil {
		return err
	}
	return e.Settings.AdvanceRegister(reg, delta, global)
}

func mMultiply(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	reg, _, err := popRegister(e, s, false)
	if err != nil {
		return err
	}
	if _, err := s.PopKeyword("by"); err != nil {
		return err
	}
	factor, err := e.PopNumber(s)
	if err != nil {
		return err
	}
	return e.Settings.MultiplyRegister(reg, factor, global)
}

func mDivide(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	reg, _, err := popRegister(e, s, false)
	if err != nil {
		return err
	}
	if _, err := s.PopKeyword("by"); err != nil {
		return err
	}
	divisor, err := e.PopNumber(s)
	if err != nil {
		return err
	}
	return e.Settings.DivideRegister(reg, divisor, global)
}

func mSetLength(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	reg, _, err := popRegister(e, s, true)
	if err != nil {
		return err
	}
	v, err := e.PopDimensionArg(s)
	if err != nil {
		return err
	}
	return e.Settings.SetRegister(reg, v, global)
}

func mAddToLength(e *engine.Engine, s *engine.Stack) error {
	global := e.TakeGlobal()
	reg, _, err := popRegister(e, s, true)
	if err != nil {
		return err
	}
	v, err := e.PopDimensionArg(s)
	if err != nil {
		return err
	}
	return e.Settings.AdvanceRegister(reg, v, global)
}
