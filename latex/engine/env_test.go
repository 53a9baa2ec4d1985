// env_test.go -
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seehuhn/texexpand/latex/token"
)

type verbEnv struct {
	bodies []string
}

func (v *verbEnv) Name() string {
	return "verbatim"
}

func (v *verbEnv) ProcessVerbatim(e *Engine, s *Stack, body string) error {
	v.bodies = append(v.bodies, body)
	return e.Out.WriteString("[" + e.CurrentEnvironment() + "]")
}

func TestUserEnvironment(t *testing.T) {
	e, _ := newTestEngine(t)
	e.Registry.PutGlobal("box", &UserEnvironment{
		Begin: &Macro{
			CsName: "box",
			Args:   []ArgSpec{{Kind: ArgMandatory}},
			Body:   append(tokens(t, "[#1|"), token.NewCs(CurrEnv), token.NewOther('|')),
		},
		EndCode: tokens(t, "]"),
	})
	out, err := output(t, e, `\begin{box}{x}y\end{box}`)
	require.NoError(t, err)
	assert.Equal(t, "[x|box|y]", out)
	assert.Equal(t, "", e.CurrentEnvironment())
	assert.Equal(t, 1, e.Settings.Depth())
}

func TestEndCommand(t *testing.T) {
	e, _ := newTestEngine(t)
	var events []string
	e.Registry.PutGlobal("env", NewProcessor("env", func(e *Engine, s *Stack) error {
		events = append(events, "begin "+e.CurrentEnvironment())
		return nil
	}))
	e.Registry.PutGlobal("endenv", NewProcessor("endenv", func(e *Engine, s *Stack) error {
		events = append(events, "end "+e.CurrentEnvironment())
		return nil
	}))
	_, err := output(t, e, `\begin{env}\begin{env}\end{env}\end{env}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"begin env", "begin env", "end env", "end env"}, events)
}

func TestMismatchedEnd(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, name := range []string{"quote", "quotation"} {
		e.Registry.PutGlobal(name, &DeclarationFuncs{CsName: name})
	}
	_, err := output(t, e, `\begin{quote}text\end{quotation}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraEnd)
	assert.Contains(t, err.Error(), `\end{quotation}`)
	assert.Equal(t, 1, e.Settings.Depth())

	e, _ = newTestEngine(t)
	_, err = output(t, e, `\end{quote}`)
	assert.ErrorIs(t, err, ErrExtraEnd)

	e, _ = newTestEngine(t)
	_, err = output(t, e, `\begin{nothing}`)
	assert.ErrorIs(t, err, ErrUndefinedEnv)
}

func TestMathEnvironment(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Counters.New("equation", ""))
	eq := &MathDeclaration{CsName: "equation", Mode: ModeDisplayMath, Counter: "equation"}
	e.Registry.PutGlobal("equation", eq)
	e.Registry.PutGlobal("x", NewProcessor("x", func(e *Engine, s *Stack) error {
		assert.Equal(t, ModeDisplayMath, e.Settings.Mode())
		return e.Out.WriteString("x")
	}))

	out, err := output(t, e, `a\begin{equation}\x\end{equation}b`)
	require.NoError(t, err)
	assert.Equal(t, "a\n\nx(1)\n\nb", out)
	assert.Equal(t, ModeText, e.Settings.Mode())
	assert.True(t, eq.SwitchesMode())
}

func TestVerbatimRaw(t *testing.T) {
	e, _ := newTestEngine(t)
	v := &verbEnv{}
	e.Registry.PutGlobal("verbatim", v)
	in := "a\\begin{verbatim}\n  \\foo{ %x\n\\begin{verbatim}\\end{verbatim}\n\\end{verbatim}b"
	out, err := output(t, e, in)
	require.NoError(t, err)
	assert.Equal(t, "a[verbatim]b", out)
	require.Len(t, v.bodies, 1)
	assert.Equal(t, "  \\foo{ %x\n\\begin{verbatim}\\end{verbatim}\n", v.bodies[0])
}

func TestVerbatimTokens(t *testing.T) {
	e, _ := newTestEngine(t)
	s := NewStack(tokens(t, `a\begin{v}b\end{v}c\end{v}rest`))
	body, err := e.ReadVerbatimEnv("v", s)
	require.NoError(t, err)
	assert.Equal(t, `a\begin{v}b\end{v}c`, body)
	assert.Equal(t, "rest", rest(t, s))

	s = NewStack(tokens(t, `abc`))
	_, err = e.ReadVerbatimEnv("v", s)
	assert.ErrorIs(t, err, ErrMissingEndEnv)
}

func TestMathEnvironmentError(t *testing.T) {
	e, _ := newTestEngine(t)
	eq := &MathDeclaration{CsName: "equation", Mode: ModeDisplayMath}
	e.Registry.PutGlobal("equation", eq)

	_, err := output(t, e, `\begin{equation}x\nosuch`)
	require.Error(t, err)
	assert.Equal(t, 1, e.Settings.Depth())
	assert.Equal(t, ModeText, e.Settings.Mode())
	assert.Empty(t, eq.saved)
	assert.Equal(t, "", e.CurrentEnvironment())
}
