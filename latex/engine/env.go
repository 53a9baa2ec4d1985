// env.go - environments
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

package engine

import (
	"strings"

	"github.com/seehuhn/texexpand/latex/token"
)

// CurrEnv is the name of the control sequence which holds the name of
// the innermost environment.
const CurrEnv = "@currenvir"

// envRecord is stored under CurrEnv by \begin.  It expands to the
// environment name.
type envRecord struct {
	env  string
	decl Command
}

func (r *envRecord) Name() string {
	return CurrEnv
}

func (r *envRecord) ExpandOnce(e *Engine, s *Stack) (token.List, error) {
	return token.String(r.env), nil
}

// VerbatimHandler is implemented by environments whose body is read
// without tokenization.
type VerbatimHandler interface {
	Command
	ProcessVerbatim(e *Engine, s *Stack, body string) error
}

// CurrentEnvironment returns the name of the innermost environment, or
// the empty string outside all environments.
func (e *Engine) CurrentEnvironment() string {
	if r, ok := e.Registry.Lookup(CurrEnv).(*envRecord); ok {
		return r.env
	}
	return ""
}

// BeginEnvironment implements \begin{name}.  A group is started, which
// stays open until the matching EndEnvironment.
func (e *Engine) BeginEnvironment(name string, s *Stack) error {
	cmd := e.Registry.Lookup(name)
	if cmd == nil {
		return newError(ErrUndefinedEnv, name)
	}

	if v, ok := cmd.(VerbatimHandler); ok {
		body, err := e.ReadVerbatimEnv(name, s)
		if err != nil {
			return err
		}
		return e.Scope(s, func() error {
			e.Registry.PutLocal(CurrEnv, &envRecord{env: name, decl: cmd})
			return v.ProcessVerbatim(e, s, body)
		})
	}

	e.StartGroup()
	e.Registry.PutLocal(CurrEnv, &envRecord{env: name, decl: cmd})
	if d, ok := cmd.(Declaration); ok {
		e.Settings.top().env = d
	}
	prev := e.current
	e.current = name
	defer func() { e.current = prev }()
	switch c := cmd.(type) {
	case Processor:
		return c.Process(e, s)
	case Expandable:
		list, err := c.ExpandOnce(e, s)
		if err != nil {
			return err
		}
		s.PushList(list)
	}
	return nil
}

// EndEnvironment implements \end{name}.  The end code of the
// environment runs before the group is closed.
func (e *Engine) EndEnvironment(name string, s *Stack) error {
	rec, ok := e.Registry.Lookup(CurrEnv).(*envRecord)
	if !ok {
		return newError(ErrExtraEnd, name)
	}
	if rec.env != name {
		err := e.EndGroup(s)
		if err != nil {
			return err
		}
		return newError(ErrExtraEnd, name)
	}

	e.Settings.top().env = nil
	var err error
	if endCmd := e.Registry.Lookup("end" + name); endCmd != nil {
		switch c := endCmd.(type) {
		case Processor:
			err = c.Process(e, s)
		case Expandable:
			var list token.List
			list, err = c.ExpandOnce(e, s)
			if err == nil {
				err = e.ProcessList(list, s)
			}
		}
	} else if d, ok := rec.decl.(Declaration); ok {
		err = d.End(e, s)
	}

	e2 := e.EndGroup(s)
	if err == nil {
		err = e2
	}
	return err
}

// UserEnvironment is an environment defined by \newenvironment.
type UserEnvironment struct {
	Begin   *Macro
	EndCode token.List
}

// Name implements the Command interface.
func (env *UserEnvironment) Name() string {
	return env.Begin.CsName
}

// Process reads the arguments of the environment and inserts the begin
// code into the input.
func (env *UserEnvironment) Process(e *Engine, s *Stack) error {
	list, err := env.Begin.ExpandOnce(e, s)
	if err != nil {
		return err
	}
	s.PushList(list)
	return nil
}

// End processes the end code.
func (env *UserEnvironment) End(e *Engine, s *Stack) error {
	return e.ProcessList(env.EndCode, s)
}

// MathDeclaration switches to a maths mode.  The previous mode is
// restored by End, independently of the groups opened in between.  If
// Counter is set, the counter is stepped and its value is written at
// the end.
type MathDeclaration struct {
	CsName  string
	Mode    Mode
	Counter string

	saved []Mode
}

// Name implements the Command interface.
func (m *MathDeclaration) Name() string {
	return m.CsName
}

// SwitchesMode implements the ModeSwitcher interface.
func (m *MathDeclaration) SwitchesMode() bool {
	return true
}

// Process enters maths mode.
func (m *MathDeclaration) Process(e *Engine, s *Stack) error {
	m.saved = append(m.saved, e.Settings.Mode())
	e.Settings.SetMode(m.Mode)
	if m.Mode == ModeDisplayMath {
		if err := e.Out.EndParagraph(); err != nil {
			return err
		}
	}
	if m.Counter != "" {
		return e.Counters.Step(m.Counter)
	}
	return nil
}

// End leaves maths mode.
func (m *MathDeclaration) End(e *Engine, s *Stack) error {
	if m.Counter != "" {
		num, err := e.Counters.Format(m.Counter)
		if err != nil {
			return err
		}
		err = e.Out.WriteString("(" + num + ")")
		if err != nil {
			return err
		}
	}
	if n := len(m.saved); n > 0 {
		e.Settings.SetMode(m.saved[n-1])
		m.saved = m.saved[:n-1]
	}
	if m.Mode == ModeDisplayMath {
		return e.Out.EndParagraph()
	}
	return nil
}

// ReadVerbatimEnv returns the body of the verbatim environment `name`,
// up to the matching \end{name}.  Nested environments of the same name
// are counted.  If no tokens are pending, the raw input is read.
func (e *Engine) ReadVerbatimEnv(name string, s *Stack) (string, error) {
	var body string
	if t := e.RawInput(s); t != nil {
		text, err := t.ReadVerbatimEnv(name)
		if err != nil {
			return "", err
		}
		body = text
	} else {
		list, err := readVerbatimTokens(name, s)
		if err != nil {
			return "", err
		}
		body = list.Format()
	}
	if strings.HasPrefix(body, "\r\n") {
		body = body[2:]
	} else if strings.HasPrefix(body, "\n") {
		body = body[1:]
	}
	return body, nil
}

func readVerbatimTokens(name string, s *Stack) (token.List, error) {
	var body token.List
	depth := 0
	for {
		tok, err := s.Pop()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			return nil, newError(ErrMissingEndEnv, name)
		}
		if tok.IsCs("begin") || tok.IsCs("end") {
			envName, n, err := peekEnvName(s)
			if err != nil {
				return nil, err
			}
			if envName == name && tok.IsCs("end") {
				if depth == 0 {
					for i := 0; i < n; i++ {
						s.Pop()
					}
					return body, nil
				}
				depth--
			} else if envName == name {
				depth++
			}
		}
		body = append(body, tok)
	}
}

// peekEnvName looks at the group following \begin or \end and returns
// its contents, together with the number of tokens it spans.
func peekEnvName(s *Stack) (string, int, error) {
	tok, err := s.Peek()
	if tok == nil || err != nil {
		return "", 0, err
	}
	switch tok.Kind {
	case token.Group:
		return tok.List.Format(), 1, nil
	case token.BeginGroup:
		var name token.List
		for i := 1; i < 100; i++ {
			tok, err := s.peekN(i)
			if tok == nil || err != nil {
				return "", 0, err
			}
			if tok.Kind == token.EndGroup {
				return name.Format(), i + 1, nil
			}
			name = append(name, tok)
		}
	}
	return "", 0, nil
}
