// engine_test.go -
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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seehuhn/texexpand/latex/token"
)

type testApp struct {
	files    map[string]bool
	warnings []string
}

func (app *testApp) Kpsewhich(name string) (string, error) {
	for _, candidate := range fileCandidates(name) {
		if app.files[candidate] {
			return candidate, nil
		}
	}
	return "", nil
}

func (app *testApp) FileExists(path string) bool {
	return app.files[path]
}

func (app *testApp) Warning(msg string) {
	app.warnings = append(app.warnings, msg)
}

// newTestEngine returns an engine with a minimal set of commands, so
// that the engine can be tested without the full command catalog.
func newTestEngine(t *testing.T) (*Engine, *testApp) {
	t.Helper()
	e := New()
	app := &testApp{files: map[string]bool{}}
	e.App = app
	e.Registry.PutGlobal("relax", Relax)
	e.Registry.PutGlobal("else", Else)
	e.Registry.PutGlobal("or", Or)
	e.Registry.PutGlobal("fi", Fi)
	e.Registry.PutGlobal("ifcase", IfCase)
	e.Registry.PutGlobal("iftrue", &Conditional{
		CsName: "iftrue",
		Test:   func(*Engine, *Stack) (bool, error) { return true, nil },
	})
	e.Registry.PutGlobal("iffalse", &Conditional{
		CsName: "iffalse",
		Test:   func(*Engine, *Stack) (bool, error) { return false, nil },
	})
	e.Registry.PutGlobal("begin", NewProcessor("begin", func(e *Engine, s *Stack) error {
		name, err := s.PopArg(0)
		if err != nil {
			return err
		}
		return e.BeginEnvironment(name.Format(), s)
	}))
	e.Registry.PutGlobal("end", NewProcessor("end", func(e *Engine, s *Stack) error {
		name, err := s.PopArg(0)
		if err != nil {
			return err
		}
		return e.EndEnvironment(name.Format(), s)
	}))
	return e, app
}

// parsed tokenizes text and assembles the groups.
func parsed(t *testing.T, text string) token.List {
	t.Helper()
	s := sourceStack(text)
	var list token.List
	for {
		tok, err := s.PopStack(PopRetainIgnorables)
		require.NoError(t, err)
		if tok == nil {
			return list
		}
		list = append(list, tok)
	}
}

func output(t *testing.T, e *Engine, text string) (string, error) {
	t.Helper()
	err := e.ParseString(text, "test")
	return e.Out.(*BufferOutput).String(), err
}

func defineMacro(t *testing.T, e *Engine, m *Macro) {
	t.Helper()
	require.NoError(t, e.Define(m.CsName, m, Forbid, true))
}

func TestSimpleMacro(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{CsName: "foo", Args: []ArgSpec{}, Body: tokens(t, "bar")})
	out, err := output(t, e, `\foo`)
	require.NoError(t, err)
	assert.Equal(t, "bar", out)
}

func TestOptionalDefault(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{
		CsName: "greet",
		Args:   []ArgSpec{{Kind: ArgOptional, Default: tokens(t, "World")}},
		Body:   tokens(t, "Hello, #1"),
	})

	out, err := output(t, e, `\greet!`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", out)

	e.Out = &BufferOutput{}
	out, err = output(t, e, `\greet[Ann]?`)
	require.NoError(t, err)
	assert.Equal(t, "Hello, Ann?", out)
}

func TestNoValue(t *testing.T) {
	e, _ := newTestEngine(t)
	m := &Macro{
		CsName: "opt",
		Args:   []ArgSpec{{Kind: ArgStar}, {Kind: ArgOptional}, {Kind: ArgMandatory}},
		Body:   tokens(t, "#1#2#3"),
	}
	list, err := m.ExpandOnce(e, NewStack(tokens(t, "{x}")))
	require.NoError(t, err)
	assert.Equal(t, `\BooleanFalse\NoValue x`, list.Format())

	list, err = m.ExpandOnce(e, NewStack(tokens(t, "*[a]{x}")))
	require.NoError(t, err)
	assert.Equal(t, `\BooleanTrue ax`, list.Format())

	_, err = m.ExpandOnce(e, NewStack(tokens(t, "*[a]")))
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.Contains(t, err.Error(), `\opt`)
}

func TestDelimitedParams(t *testing.T) {
	e, _ := newTestEngine(t)
	params, err := ParseParamText("pair", tokens(t, "(#1,#2)"))
	require.NoError(t, err)
	defineMacro(t, e, &Macro{CsName: "pair", Params: params, Body: tokens(t, "#2-#1")})

	params, err = ParseParamText("brace", tokens(t, "#1#"))
	require.NoError(t, err)
	defineMacro(t, e, &Macro{CsName: "brace", Params: params, Body: tokens(t, "[#1]")})

	out, err := output(t, e, `\pair({a,b},c) \brace xy{z}`)
	require.NoError(t, err)
	assert.Equal(t, "c-a,b [xy]z", out)

	e.Out = &BufferOutput{}
	_, err = output(t, e, `\pair[a,b]`)
	assert.ErrorIs(t, err, ErrUseDoesntMatch)
}

func TestParseParamText(t *testing.T) {
	_, err := ParseParamText("x", tokens(t, "#2"))
	assert.ErrorIs(t, err, ErrIllegalParam)
	_, err = ParseParamText("x", tokens(t, "#1##"))
	assert.ErrorIs(t, err, ErrIllegalParam)
	params, err := ParseParamText("x", tokens(t, "#1.#2"))
	require.NoError(t, err)
	assert.Equal(t, "#1.#2", params.Format())
}

func TestNestedDefinitionParams(t *testing.T) {
	m := &Macro{
		CsName: "outer",
		Params: tokens(t, "#1"),
		Body:   parsed(t, "#1{##1}"),
	}
	list, err := m.Substitute([]token.List{tokens(t, "a")})
	require.NoError(t, err)
	// "##" becomes a single parameter character, which is combined
	// with the following digit when the inner definition is made.
	list = NormalizeParams(list)
	require.Len(t, list, 2)
	require.Equal(t, token.Group, list[1].Kind)
	inner := list[1].List
	require.Len(t, inner, 1)
	assert.Equal(t, token.Param, inner[0].Kind)
	assert.Equal(t, 1, inner[0].Value)
}

func TestParseSignature(t *testing.T) {
	args, err := ParseSignature(parsed(t, "s o m O{x}"))
	require.NoError(t, err)
	require.Len(t, args, 4)
	assert.Equal(t, ArgStar, args[0].Kind)
	assert.Equal(t, ArgOptional, args[1].Kind)
	assert.Nil(t, args[1].Default)
	assert.Equal(t, ArgMandatory, args[2].Kind)
	assert.Equal(t, ArgOptional, args[3].Kind)
	assert.Equal(t, "x", args[3].Default.Format())

	_, err = ParseSignature(tokens(t, "m v"))
	assert.ErrorIs(t, err, ErrUnsupportedArgType)
	_, err = ParseSignature(tokens(t, "mmmmmmmmmm"))
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestExpandListFully(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{CsName: "foo", Args: []ArgSpec{}, Body: tokens(t, "bar")})
	defineMacro(t, e, &Macro{
		CsName: "twice",
		Args:   []ArgSpec{{Kind: ArgMandatory}},
		Body:   tokens(t, "#1#1"),
	})

	s := NewStack(nil)
	first, err := e.ExpandListFully(tokens(t, `\twice{\foo}{\foo}x%comment`), s)
	require.NoError(t, err)
	assert.Equal(t, "barbar{bar}x", first.Format())

	second, err := e.ExpandListFully(first, s)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
	assert.Equal(t, 0, s.Len())
}

func TestExpandListFullyReadsArguments(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{
		CsName: "paren",
		Args:   []ArgSpec{{Kind: ArgMandatory}},
		Body:   tokens(t, "(#1)"),
	})
	s := NewStack(tokens(t, "{a}b"))
	list, err := e.ExpandListFully(tokens(t, `x\paren`), s)
	require.NoError(t, err)
	assert.Equal(t, "x(a)", list.Format())
	assert.Equal(t, "b", rest(t, s))
}

func TestExpandOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{CsName: "a", Args: []ArgSpec{}, Body: tokens(t, `\b`)})
	defineMacro(t, e, &Macro{CsName: "b", Args: []ArgSpec{}, Body: tokens(t, `c`)})

	list, err := e.ExpandListOnce(tokens(t, `\a\b`), NewStack(nil))
	require.NoError(t, err)
	assert.Equal(t, `\b c`, list.Format())

	_, ok, err := e.ExpandOnce(token.NewLetter('x'), NewStack(nil))
	require.NoError(t, err)
	assert.False(t, ok)

	noexp := token.NewCs("a")
	noexp.NoExpand = true
	_, ok, err = e.ExpandOnce(noexp, NewStack(nil))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExpansionLimit(t *testing.T) {
	e, _ := newTestEngine(t)
	e.MaxExpansions = 100
	defineMacro(t, e, &Macro{CsName: "loop", Args: []ArgSpec{}, Body: tokens(t, `\loop`)})
	_, err := output(t, e, `\loop`)
	assert.ErrorIs(t, err, ErrExpansionDepth)

	// progress resets the counter
	e.Out = &BufferOutput{}
	defineMacro(t, e, &Macro{CsName: "x", Args: []ArgSpec{}, Body: tokens(t, `x`)})
	text := ""
	for i := 0; i < 300; i++ {
		text += `\x`
	}
	_, err = output(t, e, text)
	assert.NoError(t, err)
}

func TestDefinePolicy(t *testing.T) {
	e, _ := newTestEngine(t)
	a := &Macro{CsName: "a", Args: []ArgSpec{}, Body: tokens(t, "A")}
	b := &Macro{CsName: "a", Args: []ArgSpec{}, Body: tokens(t, "B")}

	assert.ErrorIs(t, e.Define("a", a, Force, false), ErrUndefined)
	require.NoError(t, e.Define("a", a, Forbid, false))
	assert.ErrorIs(t, e.Define("a", b, Forbid, false), ErrDefined)
	require.NoError(t, e.Define("a", b, Skip, false))
	assert.Same(t, a, e.Lookup("a"))
	require.NoError(t, e.Define("a", b, Force, false))
	assert.Same(t, b, e.Lookup("a"))
	require.NoError(t, e.Define("a", a, Allow, false))
	assert.Same(t, a, e.Lookup("a"))

	// names which mean \relax count as undefined
	e.Registry.PutLocal("r", Relax)
	assert.False(t, e.IsDefined("r"))
	require.NoError(t, e.Define("r", a, Forbid, false))
	assert.True(t, e.IsDefined("relax"))
}

func TestGroupScope(t *testing.T) {
	e, _ := newTestEngine(t)
	a := &Macro{CsName: "a", Args: []ArgSpec{}, Body: tokens(t, "A")}
	g := &Macro{CsName: "g", Args: []ArgSpec{}, Body: tokens(t, "G")}
	require.NoError(t, e.Define("a", a, Allow, false))

	e.StartGroup()
	e.Registry.PutLocal("a", nil)
	assert.Nil(t, e.Lookup("a"))
	require.NoError(t, e.Define("g", g, Allow, true))
	e.Settings.SetMode(ModeInlineMath)
	e.Settings.SetCatCode('@', token.CatLetter, false)
	assert.Equal(t, token.CatLetter, e.Settings.CatCode('@'))
	require.NoError(t, e.EndGroup(nil))

	assert.Same(t, a, e.Lookup("a"))
	assert.Same(t, g, e.Lookup("g"))
	assert.Equal(t, ModeText, e.Settings.Mode())
	assert.Equal(t, token.CatOther, e.Settings.CatCode('@'))

	assert.ErrorIs(t, e.EndGroup(nil), ErrExtraEndGroup)
}

func TestGlobalCatCode(t *testing.T) {
	st := NewSettings()
	st.push()
	st.SetCatCode('@', token.CatLetter, true)
	require.NoError(t, st.pop())
	assert.Equal(t, token.CatLetter, st.CatCode('@'))
}

func TestBraceGroups(t *testing.T) {
	e, _ := newTestEngine(t)
	out, err := output(t, e, `a{b}c`)
	require.NoError(t, err)
	assert.Equal(t, "abc", out)
	assert.Equal(t, 1, e.Settings.Depth())

	e.Out = &BufferOutput{}
	_, err = output(t, e, `a}`)
	assert.ErrorIs(t, err, ErrExtraEndGroup)
}

func TestDeclarationEndsWithGroup(t *testing.T) {
	e, _ := newTestEngine(t)
	var events []string
	e.Registry.PutGlobal("decl", &DeclarationFuncs{
		CsName: "decl",
		BeginFunc: func(e *Engine, s *Stack) error {
			events = append(events, "begin")
			return nil
		},
		EndFunc: func(e *Engine, s *Stack) error {
			events = append(events, "end")
			return nil
		},
	})
	out, err := output(t, e, `{x\decl y}z`)
	require.NoError(t, err)
	assert.Equal(t, "xyz", out)
	assert.Equal(t, []string{"begin", "end"}, events)
}

func TestRegisters(t *testing.T) {
	e, _ := newTestEngine(t)
	require.NoError(t, e.Settings.NewRegister("n", CountRegister))
	assert.ErrorIs(t, e.Settings.NewRegister("n", CountRegister), ErrRegisterDefined)
	e.Registry.PutGlobal("n", &RegisterCmd{CsName: "n", Register: "n"})

	_, err := output(t, e, `\n=5 {\n 7}`)
	require.NoError(t, err)
	v, kind, err := e.Settings.Register("n")
	require.NoError(t, err)
	assert.Equal(t, CountRegister, kind)
	assert.Equal(t, 5, v)

	e.StartGroup()
	require.NoError(t, e.Settings.AdvanceRegister("n", 3, true))
	require.NoError(t, e.Settings.MultiplyRegister("n", 2, false))
	v, _, _ = e.Settings.Register("n")
	assert.Equal(t, 16, v)
	require.NoError(t, e.EndGroup(nil))
	v, _, _ = e.Settings.Register("n")
	assert.Equal(t, 8, v)

	assert.ErrorIs(t, e.Settings.DivideRegister("n", 0, false), ErrDivideByZero)
	_, _, err = e.Settings.Register("m")
	assert.ErrorIs(t, err, ErrRegisterUndef)
}

func TestUndefined(t *testing.T) {
	e, app := newTestEngine(t)
	defineMacro(t, e, &Macro{CsName: "section", Args: []ArgSpec{}, Body: tokens(t, "S")})

	_, err := output(t, e, `\sectoin`)
	require.Error(t, err)
	var perr *Error
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, ErrUndefinedCs, perr.Tag)
	assert.Equal(t, "test:1", perr.Pos)
	assert.Contains(t, err.Error(), `did you mean \section?`)

	e.Undefined = NotFoundWarn
	e.Out = &BufferOutput{}
	out, err := output(t, e, `a\unknown b`)
	require.NoError(t, err)
	assert.Equal(t, "ab", out)
	require.Len(t, app.warnings, 1)
	assert.Contains(t, app.warnings[0], `\unknown`)

	e.Undefined = NotFoundIgnore
	_, err = output(t, e, `\unknown`)
	require.NoError(t, err)
	assert.Len(t, app.warnings, 1)
}

func TestSuggest(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, name := range []string{"section", "subsection", "textbf", "\x00active~"} {
		e.Registry.PutGlobal(name, Relax)
	}
	assert.Equal(t, `did you mean \section?`, e.suggest("sectoin"))
	assert.Contains(t, e.suggest("secti"), `\section`)
	assert.Equal(t, "", e.suggest("zzzzzzzz"))
	assert.Equal(t, "", e.suggest(""))
}
