// counters.go - LaTeX counters
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

// The standard counters, in the order of their creation, together
// with the counter which resets them.
var standardCounters = []struct {
	name, parent string
	style        engine.CounterStyle
}{
	{"part", "", engine.StyleUpperRoman},
	{"chapter", "", engine.StyleArabic},
	{"section", "", engine.StyleArabic},
	{"subsection", "section", engine.StyleArabic},
	{"subsubsection", "subsection", engine.StyleArabic},
	{"paragraph", "subsubsection", engine.StyleArabic},
	{"subparagraph", "paragraph", engine.StyleArabic},
	{"equation", "", engine.StyleArabic},
	{"figure", "", engine.StyleArabic},
	{"table", "", engine.StyleArabic},
	{"footnote", "", engine.StyleArabic},
	{"mpfootnote", "", engine.StyleAlph},
	{"page", "", engine.StyleArabic},
	{"enumi", "", engine.StyleArabic},
	{"enumii", "", engine.StyleAlph},
	{"enumiii", "", engine.StyleRoman},
	{"enumiv", "", engine.StyleUpperAlph},
}

func addCounters(e *engine.Engine) error {
	defProcessor(e, "newcounter", mNewCounter)
	defProcessor(e, "setcounter", mSetCounter)
	defProcessor(e, "addtocounter", mAddToCounter)
	defProcessor(e, "stepcounter", mStepCounter)
	defProcessor(e, "refstepcounter", mRefStepCounter)
	defProcessor(e, "@addtoreset", mAddToReset)
	defExpandable(e, "value", mValue)
	for name, style := range map[string]engine.CounterStyle{
		"arabic":   engine.StyleArabic,
		"roman":    engine.StyleRoman,
		"Roman":    engine.StyleUpperRoman,
		"alph":     engine.StyleAlph,
		"Alph":     engine.StyleUpperAlph,
		"fnsymbol": engine.StyleFnSymbol,
	} {
		defExpandable(e, name, mFormatCounter(style))
	}

	for _, c := range standardCounters {
		if err := newCounter(e, c.name, c.parent); err != nil {
			return err
		}
		if err := e.Counters.SetStyle(c.name, c.style); err != nil {
			return err
		}
	}
	return e.Counters.Set("page", 1)
}

// newCounter creates a counter together with its \the<name> command.
func newCounter(e *engine.Engine, name, parent string) error {
	err := e.Counters.New(name, parent)
	if err != nil {
		return err
	}
	the := "the" + name
	return e.Define(the, engine.NewExpandable(the, func(e *engine.Engine, s *engine.Stack) (token.List, error) {
		text, err := e.Counters.Format(name)
		if err != nil {
			return nil, err
		}
		return token.String(text), nil
	}), engine.Allow, true)
}

func mNewCounter(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	parent, err := popOptString(e, s)
	if err != nil {
		return err
	}
	return newCounter(e, name, parent)
}

// popOptString removes an optional argument in square brackets and
// returns its expanded text, or the empty string if it is absent.
func popOptString(e *engine.Engine, s *engine.Stack) (string, error) {
	opt, err := s.PopOptArg(0, '[', ']')
	if opt == nil || err != nil {
		return "", err
	}
	list, err := e.ExpandListFully(opt, engine.NewStack(nil))
	if err != nil {
		return "", err
	}
	return list.TrimSpace().Format(), nil
}

func mSetCounter(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	v, err := e.PopNumericArg(s)
	if err != nil {
		return err
	}
	return e.Counters.Set(name, v)
}

func mAddToCounter(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	v, err := e.PopNumericArg(s)
	if err != nil {
		return err
	}
	return e.Counters.Add(name, v)
}

func mStepCounter(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	return e.Counters.Step(name)
}

func mRefStepCounter(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	return refStepCounter(e, name)
}

// refStepCounter steps a counter and makes its printed value the
// target of the next \label.
func refStepCounter(e *engine.Engine, name string) error {
	err := e.Counters.Step(name)
	if err != nil {
		return err
	}
	text, err := e.ExpandListFully(token.List{token.NewCs("the" + name)}, engine.NewStack(nil))
	if err != nil {
		return err
	}
	setCurrentLabel(e, text)
	return nil
}

func mAddToReset(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	parent, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	return e.Counters.AddToReset(name, parent)
}

// mValue implements \value{name}.  The result is a number token, which
// can be used wherever TeX expects a number.
func mValue(e *engine.Engine, s *engine.Stack) (token.List, error) {
	name, err := e.PopLabelString(s)
	if err != nil {
		return nil, err
	}
	v, err := e.Counters.Value(name)
	if err != nil {
		return nil, err
	}
	return token.List{token.NewNumber(v)}, nil
}

// mFormatCounter implements \arabic, \roman and friends.
func mFormatCounter(style engine.CounterStyle) func(*engine.Engine, *engine.Stack) (token.List, error) {
	return func(e *engine.Engine, s *engine.Stack) (token.List, error) {
		name, err := e.PopLabelString(s)
		if err != nil {
			return nil, err
		}
		v, err := e.Counters.Value(name)
		if err != nil {
			return nil, err
		}
		return token.String(engine.FormatNumber(v, style)), nil
	}
}
