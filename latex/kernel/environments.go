// environments.go - standard LaTeX environments
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

func addEnvironments(e *engine.Engine) {
	def(e, &engine.DeclarationFuncs{
		CsName:    "document",
		BeginFunc: beginDocument,
		EndFunc:   endDocument,
	})

	def(e, &verbatimEnv{name: "verbatim"})
	def(e, &verbatimEnv{name: "verbatim*", star: true})

	def(e, newNumberedMath("equation", "equation"))
	def(e, &engine.MathDeclaration{CsName: "equation*", Mode: engine.ModeDisplayMath})
	def(e, &engine.MathDeclaration{CsName: "displaymath", Mode: engine.ModeDisplayMath})
	def(e, &engine.MathDeclaration{CsName: "math", Mode: engine.ModeInlineMath})

	def(e, &engine.DeclarationFuncs{
		CsName:    "tabular",
		BeginFunc: beginTabular,
		EndFunc:   mEndParagraph,
	})
	e.SetCharHandler(token.AlignTab, alignTab)
	defProcessor(e, `\`, mNewline)
	defProcessor(e, "hline", mPrefix)
	defProcessor(e, "cline", func(e *engine.Engine, s *engine.Stack) error {
		_, err := s.PopArg(0)
		return err
	})

	for _, name := range []string{"quote", "quotation", "center", "flushleft", "flushright", "abstract"} {
		def(e, &engine.DeclarationFuncs{
			CsName:    name,
			BeginFunc: mEndParagraph,
			EndFunc:   mEndParagraph,
		})
	}
}

func beginDocument(e *engine.Engine, s *engine.Stack) error {
	if _, seen := e.PkgState["document"]; seen {
		return engine.ErrMultipleDocuments.With()
	}
	e.PkgState["document"] = "1"
	return nil
}

// endDocument discards everything after \end{document}.
func endDocument(e *engine.Engine, s *engine.Stack) error {
	for {
		tok, err := s.Pop()
		if err != nil {
			return err
		}
		if tok == nil {
			break
		}
	}
	return e.Out.EndParagraph()
}

// DefineVerbatim defines an environment which copies its body to the
// output without interpretation, like verbatim.
func DefineVerbatim(e *engine.Engine, name string) {
	def(e, &verbatimEnv{name: name})
}

// verbatimEnv is an environment whose body is written to the output
// without interpretation.  The starred form makes spaces visible.
type verbatimEnv struct {
	name string
	star bool
	drop bool
}

func (v *verbatimEnv) Name() string {
	return v.name
}

func (v *verbatimEnv) ProcessVerbatim(e *engine.Engine, s *engine.Stack, body string) error {
	if v.drop {
		return nil
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	body = strings.TrimSuffix(body, "\n")
	if v.star {
		body = strings.ReplaceAll(body, " ", "␣")
	}
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			if err := e.Out.LineBreak(); err != nil {
				return err
			}
		}
		if err := e.Out.WriteString(strings.TrimSuffix(line, "\r")); err != nil {
			return err
		}
	}
	return e.Out.EndParagraph()
}

// numberedMath is a display maths environment with an equation number.
// The number is the target of \label inside the environment.
type numberedMath struct {
	*engine.MathDeclaration
}

func newNumberedMath(name, counter string) *numberedMath {
	return &numberedMath{
		MathDeclaration: &engine.MathDeclaration{
			CsName:  name,
			Mode:    engine.ModeDisplayMath,
			Counter: counter,
		},
	}
}

func (m *numberedMath) Process(e *engine.Engine, s *engine.Stack) error {
	err := m.MathDeclaration.Process(e, s)
	if err != nil {
		return err
	}
	num, err := e.Counters.Format(m.Counter)
	if err != nil {
		return err
	}
	setCurrentLabel(e, token.String(num))
	return nil
}

// beginTabular implements \begin{tabular}[pos]{cols}.
func beginTabular(e *engine.Engine, s *engine.Stack) error {
	if _, err := s.PopOptArg(0, '[', ']'); err != nil {
		return err
	}
	spec, err := s.PopArg(0)
	if err != nil {
		return err
	}
	cols, err := parseColumns(e, spec)
	if err != nil {
		return err
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	e.Settings.StartAlignment(cols)
	return nil
}

// parseColumns interprets a column specification like "|l|c|p{3cm}|".
func parseColumns(e *engine.Engine, spec token.List) ([]engine.ColumnSpec, error) {
	var cols []engine.ColumnSpec
	for i := 0; i < len(spec); i++ {
		tok := spec[i]
		switch {
		case tok.Kind == token.Space || tok.IsChar('|'):
			// rules are not shown
		case tok.IsChar('l') || tok.IsChar('c') || tok.IsChar('r'):
			cols = append(cols, engine.ColumnSpec{Align: tok.Char})
		case tok.IsChar('p') || tok.IsChar('m') || tok.IsChar('b'):
			if i+1 >= len(spec) || spec[i+1].Kind != token.Group {
				return nil, engine.ErrMissingArgument.With("")
			}
			i++
			cols = append(cols, engine.ColumnSpec{Align: 'p', Width: spec[i].List})
		case tok.IsChar('@') || tok.IsChar('!') || tok.IsChar('>') || tok.IsChar('<'):
			i++
		case tok.IsChar('*'):
			if i+2 >= len(spec) || spec[i+1].Kind != token.Group || spec[i+2].Kind != token.Group {
				return nil, engine.ErrMissingArgument.With("")
			}
			n, err := e.PopNumber(engine.NewStack(spec[i+1].List))
			if err != nil {
				return nil, err
			}
			inner, err := parseColumns(e, spec[i+2].List)
			if err != nil {
				return nil, err
			}
			for j := 0; j < n; j++ {
				cols = append(cols, inner...)
			}
			i += 2
		default:
			return nil, engine.ErrBadSignature.With(tok.String())
		}
	}
	return cols, nil
}

// alignTab handles "&", which separates the cells of a table row.
func alignTab(e *engine.Engine, tok *token.Token, s *engine.Stack) error {
	a := e.Settings.Alignment()
	if a == nil {
		return engine.ErrMisplaced.With("alignment tab character &")
	}
	a.Column++
	return e.Out.WriteString("\t")
}

// mNewline implements \\, which ends a table row inside tabular and
// a line elsewhere.
func mNewline(e *engine.Engine, s *engine.Stack) error {
	if _, err := s.PopModifier('*'); err != nil {
		return err
	}
	if _, err := s.PopOptArg(0, '[', ']'); err != nil {
		return err
	}
	if a := e.Settings.Alignment(); a != nil {
		a.Row++
		a.Column = 0
	}
	return e.Out.LineBreak()
}
