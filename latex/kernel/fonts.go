// fonts.go - font selection commands
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
	"unicode"

	"github.com/seehuhn/texexpand/latex/engine"
)

type fontChange func(f *engine.Font)

func setFamily(v engine.FontFamily) fontChange {
	return func(f *engine.Font) { f.Family = v }
}

func setShape(v engine.FontShape) fontChange {
	return func(f *engine.Font) { f.Shape = v }
}

func setWeight(v engine.FontWeight) fontChange {
	return func(f *engine.Font) { f.Weight = v }
}

func setSize(v engine.FontSize) fontChange {
	return func(f *engine.Font) { f.Size = v }
}

func toggleEmphasis(f *engine.Font) {
	if f.Shape == engine.ShapeItalic {
		f.Shape = engine.ShapeUpright
	} else {
		f.Shape = engine.ShapeItalic
	}
}

func normalFont(f *engine.Font) {
	size := f.Size
	*f = engine.Font{Size: size}
}

// oldStyle returns the change made by the plain TeX font commands like
// \bf, which reset all other attributes.
func oldStyle(change fontChange) fontChange {
	return func(f *engine.Font) {
		normalFont(f)
		change(f)
	}
}

var fontDeclarations = map[string]fontChange{
	"rmfamily":   setFamily(engine.FamilyRoman),
	"sffamily":   setFamily(engine.FamilySans),
	"ttfamily":   setFamily(engine.FamilyTypewriter),
	"upshape":    setShape(engine.ShapeUpright),
	"itshape":    setShape(engine.ShapeItalic),
	"slshape":    setShape(engine.ShapeSlanted),
	"scshape":    setShape(engine.ShapeSmallCaps),
	"mdseries":   setWeight(engine.WeightMedium),
	"bfseries":   setWeight(engine.WeightBold),
	"normalfont": normalFont,
	"em":         toggleEmphasis,

	"rm": oldStyle(setFamily(engine.FamilyRoman)),
	"sf": oldStyle(setFamily(engine.FamilySans)),
	"tt": oldStyle(setFamily(engine.FamilyTypewriter)),
	"it": oldStyle(setShape(engine.ShapeItalic)),
	"sl": oldStyle(setShape(engine.ShapeSlanted)),
	"sc": oldStyle(setShape(engine.ShapeSmallCaps)),
	"bf": oldStyle(setWeight(engine.WeightBold)),

	"tiny":         setSize(engine.SizeTiny),
	"scriptsize":   setSize(engine.SizeScript),
	"footnotesize": setSize(engine.SizeFootnote),
	"small":        setSize(engine.SizeSmall),
	"normalsize":   setSize(engine.SizeNormal),
	"large":        setSize(engine.SizeLarge),
	"Large":        setSize(engine.SizeLarger),
	"LARGE":        setSize(engine.SizeLargest),
	"huge":         setSize(engine.SizeHuge),
	"Huge":         setSize(engine.SizeHuger),
}

var textCommands = map[string]string{
	"textrm":     "rmfamily",
	"textsf":     "sffamily",
	"texttt":     "ttfamily",
	"textup":     "upshape",
	"textit":     "itshape",
	"textsl":     "slshape",
	"textsc":     "scshape",
	"textmd":     "mdseries",
	"textbf":     "bfseries",
	"textnormal": "normalfont",
	"emph":       "em",
}

func addFonts(e *engine.Engine) {
	for name, change := range fontDeclarations {
		def(e, fontDeclaration(name, change))
	}
	for name, decl := range textCommands {
		defProcessor(e, name, mTextFont(fontDeclarations[decl]))
	}
	defProcessor(e, "MakeUppercase", mMakeCase(unicode.ToUpper))
	defProcessor(e, "MakeLowercase", mMakeCase(unicode.ToLower))
}

// fontDeclaration returns a declaration which changes the font until
// the end of the current group.  Since the font is part of the
// scoped settings, no end action is needed.
func fontDeclaration(name string, change fontChange) engine.Declaration {
	return &engine.DeclarationFuncs{
		CsName: name,
		BeginFunc: func(e *engine.Engine, s *engine.Stack) error {
			f := e.Settings.Font()
			change(&f)
			e.Settings.SetFont(f)
			return nil
		},
	}
}

// mTextFont implements \textit{...} and similar: the argument is
// processed in a group, using the changed font.
func mTextFont(change fontChange) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		arg, err := s.PopArg(0)
		if err != nil {
			return err
		}
		return e.Scope(s, func() error {
			enterTextMode(e)
			f := e.Settings.Font()
			change(&f)
			e.Settings.SetFont(f)
			return e.ProcessList(arg, s)
		})
	}
}

// mMakeCase implements \MakeUppercase and \MakeLowercase.  Unlike
// \uppercase, the argument is expanded first.
func mMakeCase(fn func(rune) rune) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		arg, err := e.ExpandArg(s)
		if err != nil {
			return err
		}
		return e.ProcessList(changeCase(arg, fn), s)
	}
}
