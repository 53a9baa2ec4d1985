// text.go - text symbols, sectioning and erb
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
	"strings"

	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

var textSymbols = map[string]string{
	"ldots":         "…",
	"dots":          "…",
	"textellipsis":  "…",
	"LaTeX":         "LaTeX",
	"LaTeXe":        "LaTeX2e",
	"TeX":           "TeX",
	"textbackslash": `\`,
	"textendash":    "–",
	"textemdash":    "—",
	"S":             "§",
	"P":             "¶",
	"copyright":     "©",
	"ss":            "ß",
	"slash":         "/",
}

// sections lists the sectioning commands, from the top level down.
var sections = []string{
	"part",
	"chapter",
	"section",
	"subsection",
	"subsubsection",
	"paragraph",
	"subparagraph",
}

func addText(e *engine.Engine) {
	for name, text := range textSymbols {
		defProcessor(e, name, mWrite(text))
	}
	for _, r := range `%&#_{}$` {
		def(e, &engine.CharCommand{CsName: string(r), Tok: token.NewOther(r)})
	}
	defProcessor(e, " ", func(e *engine.Engine, s *engine.Stack) error {
		return e.Out.WriteSpace()
	})
	defProcessor(e, token.ActiveName('~'), mWrite("\u00a0"))
	defProcessor(e, "newline", func(e *engine.Engine, s *engine.Stack) error {
		return e.Out.LineBreak()
	})
	for _, name := range []string{"clearpage", "cleardoublepage", "newpage", "pagebreak"} {
		defProcessor(e, name, mEndParagraph)
	}
	for _, name := range []string{"noindent", "indent", "centering", "raggedright", "raggedleft", "maketitle"} {
		defProcessor(e, name, mPrefix)
	}
	defProcessor(e, "hspace", mSkip(true))
	defProcessor(e, "vspace", mSkip(false))
	defProcessor(e, "verb", mVerb)

	for _, name := range sections {
		defProcessor(e, name, mSection(name))
	}
}

func mWrite(text string) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		return e.Out.WriteString(text)
	}
}

func mEndParagraph(e *engine.Engine, s *engine.Stack) error {
	return e.Out.EndParagraph()
}

// mSkip implements \hspace and \vspace.  Horizontal space is written as
// a single space, vertical space is dropped.
func mSkip(horizontal bool) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		if _, err := s.PopModifier('*'); err != nil {
			return err
		}
		if _, err := s.PopArg(0); err != nil {
			return err
		}
		if horizontal {
			return e.Out.WriteSpace()
		}
		return nil
	}
}

// mVerb implements \verb|text| and \verb*|text|.  The text is read
// directly from the input file, so \verb cannot be used inside macro
// arguments.
func mVerb(e *engine.Engine, s *engine.Stack) error {
	t := e.RawInput(s)
	if t == nil {
		return engine.ErrNotAllowed.With("verb")
	}
	delim, err := t.ReadChar()
	if err != nil {
		return err
	}
	star := delim == '*'
	if star {
		delim, err = t.ReadChar()
		if err != nil {
			return err
		}
	}
	text, err := t.ReadUntilChar(delim)
	if err != nil {
		return err
	}
	if star {
		text = strings.ReplaceAll(text, " ", "␣")
	}
	return e.Out.WriteString(text)
}

// mSection implements \section*[short]{title} and the other sectioning
// commands.  The unstarred forms are numbered.
func mSection(name string) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		star, err := s.PopModifier('*')
		if err != nil {
			return err
		}
		if _, err := s.PopOptArg(0, '[', ']'); err != nil {
			return err
		}
		title, err := s.PopArg(0)
		if err != nil {
			return err
		}

		if err := e.Out.EndParagraph(); err != nil {
			return err
		}
		if !star {
			if err := refStepCounter(e, name); err != nil {
				return err
			}
			num, err := e.Counters.Format(name)
			if err != nil {
				return err
			}
			if name == "part" || name == "chapter" {
				num = strings.ToUpper(name[:1]) + name[1:] + " " + num
			}
			if err := e.Out.WriteString(num); err != nil {
				return err
			}
			if err := e.Out.WriteSpace(); err != nil {
				return err
			}
		}
		err = e.Scope(s, func() error {
			return e.ProcessList(title, s)
		})
		if err != nil {
			return err
		}
		return e.Out.EndParagraph()
	}
}
