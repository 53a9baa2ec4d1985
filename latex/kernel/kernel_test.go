// kernel_test.go -
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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seehuhn/texexpand/latex/engine"
	"github.com/seehuhn/texexpand/latex/token"
)

type testApp struct {
	dir      string
	warnings []string
}

func (app *testApp) Kpsewhich(name string) (string, error) {
	if app.dir == "" {
		return "", nil
	}
	for _, candidate := range []string{name, name + ".tex"} {
		path := filepath.Join(app.dir, candidate)
		if app.FileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

func (app *testApp) FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func (app *testApp) Warning(msg string) {
	app.warnings = append(app.warnings, msg)
}

type testLabels map[string]string

func (l testLabels) SetLabel(label, text string) {
	l[label] = text
}

func (l testLabels) Label(label string) (string, bool) {
	text, ok := l[label]
	return text, ok
}

func newKernel(t *testing.T) (*engine.Engine, *testApp) {
	t.Helper()
	e := engine.New()
	app := &testApp{}
	e.App = app
	e.Labels = testLabels{}
	require.NoError(t, Install(e))
	return e, app
}

// run processes text on a fresh engine and returns the output.
func run(t *testing.T, text string) (string, error) {
	t.Helper()
	e, _ := newKernel(t)
	return runOn(e, text)
}

func runOn(e *engine.Engine, text string) (string, error) {
	err := e.ParseString(text, "test")
	return e.Out.(*engine.BufferOutput).String(), err
}

func TestOutput(t *testing.T) {
	cases := []struct {
		name, in, out string
	}{
		{"simple macro", `\newcommand{\foo}{bar}\foo`, "bar"},
		{"optional default",
			`\newcommand{\greet}[2][World]{Hello, #1#2}\greet{!} \greet[Ann]{?}`,
			"Hello, World! Hello, Ann?"},
		{"delimited", `\def\pair(#1,#2){#2-#1}\pair(a,b)`, "b-a"},
		{"edef", `\def\a{x}\edef\b{\a\noexpand\a}\def\a{y}\b`, "xy"},
		{"expandafter", `\def\x{abc}\expandafter\uppercase\expandafter{\x}`, "ABC"},
		{"no expandafter", `\def\x{abc}\uppercase{\x}`, "abc"},
		{"csname", `\expandafter\def\csname foo bar\endcsname{Z}\csname foo bar\endcsname`, "Z"},
		{"let ifx", `\def\a{x}\let\b\a\ifx\a\b yes\else no\fi`, "yes"},
		{"ifx different", `\def\a{x}\def\b{y}\ifx\a\b yes\else no\fi`, "no"},
		{"newif", `\newif\iffoo\footrue\iffoo T\else F\fi\foofalse\iffoo T\else F\fi`, "TF"},
		{"ifnum", `\ifnum 3>2 A\else B\fi`, "A"},
		{"count", `\newcount\cnt \cnt=5 \advance\cnt by 3 \the\cnt`, "8"},
		{"counter", `\setcounter{section}{3}\stepcounter{subsection}\thesubsection`, "3.1"},
		{"the value", `\setcounter{page}{7}\the\value{page}`, "7"},
		{"roman", `\setcounter{section}{4}\roman{section}/\Alph{section}`, "iv/D"},
		{"for", `\makeatletter\@for\x:=a,b,c\do{[\x]}`, "[a][b][c]"},
		{"for macro", `\makeatletter\def\l{p,q}\@for\x:=\l\do{(\x)}`, "(p)(q)"},
		{"ifstar", `\makeatletter\def\x{\@ifstar{S}{N}}\x*\x`, "SN"},
		{"ifnextchar", `\makeatletter\def\y{\@ifnextchar[{O}{M}}\y[\y`, "O[M"},
		{"gobble", `\makeatletter\@gobble{a}\@firstoftwo{b}{c}\@secondoftwo{d}{e}`, "be"},
		{"ifundefined", `\makeatletter\@ifundefined{zzz}{u}{d}\@ifundefined{par}{u}{d}`, "ud"},
		{"namedef", `\makeatletter\@namedef{a b}{AB}\@nameuse{a b}`, "AB"},
		{"boolean", `\NewDocumentCommand{\z}{s m}{\IfBooleanTF{#1}{star #2}{plain #2}}\z*{a} \z{b}`,
			"star a plain b"},
		{"novalue", `\NewDocumentCommand{\w}{o}{\IfNoValueTF{#1}{none}{[#1]}}\w\w[x]`, "none[x]"},
		{"environment", `\newenvironment{wrap}[1]{<#1:}{>}\begin{wrap}{t}x\end{wrap}`, "<t:x>"},
		{"make uppercase", `\def\n{abc}\MakeUppercase{\n}`, "ABC"},
		{"verb", `a \verb|\x{}| b`, `a \x{} b`},
		{"verb star", `\verb*|a b|`, "a␣b"},
		{"math", `$x$ and $$y$$ z`, "x and\n\ny\n\nz"},
		{"tabular", `\begin{tabular}{|l|c|}a&b\\c&d\end{tabular}`, "a\tb\nc\td"},
		{"itemize", `\begin{itemize}\item a\item[-] b\end{itemize}`, "• a\n\n- b"},
		{"enumerate", `\begin{enumerate}\item a\begin{enumerate}\item b\end{enumerate}\item c\end{enumerate}`,
			"1. a\n\n(a) b\n\n2. c"},
		{"section", `\section{Intro}\label{s}See \ref{s}.`, "1 Intro\n\nSee 1."},
		{"section star", `\section*{Intro}x`, "Intro\n\nx"},
		{"book", `\documentclass{book}\chapter{A}\section{B}`, "Chapter 1 A\n\n1.1 B"},
		{"equation", `\begin{equation}x\label{e}\end{equation}\ref{e}`, "x(1)\n\n1"},
		{"document", `\begin{document}x\end{document}junk`, "x"},
		{"symbols", `50\% \& \{x\}`, "50% & {x}"},
		{"text in math", `\usepackage{amsmath}$a\text{ $b$ }c$ d`, "a b c d"},
		{"textrm in math", `$a\textrm{ $b$ }c$`, "a b c"},
		{"global def", `{\global\def\y{Y}}\y`, "Y"},
		{"global long def", `{\global\long\def\y{Y}}\y`, "Y"},
		{"global relax", `{\global\relax\def\y{Y}}\ifx\y\undefined U\else D\fi`, "U"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := run(t, c.in)
			require.NoError(t, err)
			assert.Equal(t, c.out, out)
		})
	}
}

func TestScenarioExpandOnce(t *testing.T) {
	e, _ := newKernel(t)
	_, err := runOn(e, `\newcommand{\foo}{bar}`)
	require.NoError(t, err)

	list, ok, err := e.ExpandOnce(token.NewCs("foo"), engine.NewStack(nil))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "bar", list.Format())
}

func TestScenarioEnvironmentMismatch(t *testing.T) {
	_, err := run(t, `\begin{quote}text\end{quotation}`)
	require.ErrorIs(t, err, engine.ErrExtraEnd)
	var perr *engine.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "quotation", perr.Params[0])
}

func TestScenarioCounterReset(t *testing.T) {
	e, _ := newKernel(t)
	value := func(name string) int {
		v, err := e.Counters.Value(name)
		require.NoError(t, err)
		return v
	}

	_, err := runOn(e, `\stepcounter{section}\stepcounter{subsection}\stepcounter{subsection}`)
	require.NoError(t, err)
	assert.Equal(t, 2, value("subsection"))

	_, err = runOn(e, `\stepcounter{section}`)
	require.NoError(t, err)
	assert.Equal(t, 0, value("subsection"))
	assert.Equal(t, 2, value("section"))

	_, err = runOn(e, `\stepcounter{subsection}`)
	require.NoError(t, err)
	assert.Equal(t, 1, value("subsection"))
	assert.Equal(t, 2, value("section"))
}

func TestErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		tag  engine.ErrorTag
	}{
		{"defined", `\newcommand{\foo}{a}\newcommand{\foo}{b}`, engine.ErrDefined},
		{"renew undefined", `\renewcommand{\nosuch}{b}`, engine.ErrUndefined},
		{"illegal param", `\newcommand{\foo}[1]{#2}`, engine.ErrIllegalParam},
		{"alignment tab", `a&b`, engine.ErrMisplaced},
		{"superscript", `x^2`, engine.ErrMisplaced},
		{"math mismatch", `\(x\]`, engine.ErrMisplaced},
		{"item", `\item x`, engine.ErrMisplaced},
		{"two documents", `\begin{document}\begin{document}`, engine.ErrMultipleDocuments},
		{"two classes", `\documentclass{article}\documentclass{book}`, engine.ErrNotAllowed},
		{"unknown env", `\begin{nosuch}`, engine.ErrUndefinedEnv},
		{"missing file", `\input{nosuch}`, engine.ErrFileNotFound},
		{"verb in argument", `\textbf{\verb|x|}`, engine.ErrNotAllowed},
		{"global prefix", `{\global x\def\y{Y}}`, engine.ErrNotAllowed},
		{"math across group", `$a{b$}`, engine.ErrMisplaced},
		{"argument past group", `\makeatletter\def\x{{\@gobble}}\x ab`, engine.ErrMissingArgument},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := run(t, c.in)
			require.ErrorIs(t, err, c.tag)
		})
	}
}

func TestProvideCommand(t *testing.T) {
	out, err := run(t, `\newcommand{\a}{1}\providecommand{\a}{2}\providecommand{\b}{3}\a\b`)
	require.NoError(t, err)
	assert.Equal(t, "13", out)
}

func TestFontScope(t *testing.T) {
	e, _ := newKernel(t)
	var shapes []engine.FontShape
	e.Registry.PutGlobal("record", engine.NewProcessor("record", func(e *engine.Engine, s *engine.Stack) error {
		shapes = append(shapes, e.Settings.Font().Shape)
		return nil
	}))
	_, err := runOn(e, `\textit{\record\emph{\record}}\record{\itshape\record}\record`)
	require.NoError(t, err)
	assert.Equal(t, []engine.FontShape{
		engine.ShapeItalic, engine.ShapeUpright, engine.ShapeUpright,
		engine.ShapeItalic, engine.ShapeUpright,
	}, shapes)
}

func TestMathMode(t *testing.T) {
	e, _ := newKernel(t)
	var modes []engine.Mode
	e.Registry.PutGlobal("record", engine.NewProcessor("record", func(e *engine.Engine, s *engine.Stack) error {
		modes = append(modes, e.Settings.Mode())
		return nil
	}))
	_, err := runOn(e, `\record$\record$\[\record\]\begin{equation}\record\end{equation}\record`)
	require.NoError(t, err)
	assert.Equal(t, []engine.Mode{
		engine.ModeText, engine.ModeInlineMath, engine.ModeDisplayMath,
		engine.ModeDisplayMath, engine.ModeText,
	}, modes)
}

func TestVerbatim(t *testing.T) {
	out, err := run(t, "before\n\\begin{verbatim}\n  x  y\n\\end{verbatim}\nafter")
	require.NoError(t, err)
	assert.Equal(t, "before\n\n  x  y\n\nafter", out)
}

func TestInput(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "chap.tex"), []byte("inner\n"), 0o644)
	require.NoError(t, err)

	e, app := newKernel(t)
	app.dir = dir
	out, err := runOn(e, `A \input{chap} B \input chap `)
	require.NoError(t, err)
	assert.Equal(t, "A inner B inner", out)

	e, app = newKernel(t)
	app.dir = dir
	out, err = runOn(e, `\makeatletter\@input{nosuch}\IfFileExists{chap}{yes}{no}\IfFileExists{nosuch}{yes}{no}`)
	require.NoError(t, err)
	assert.Equal(t, "yesno", out)
	assert.Len(t, app.warnings, 1)
}

func TestUnknownPackage(t *testing.T) {
	e, app := newKernel(t)
	_, err := runOn(e, `\usepackage[x]{amsmath,nosuch}\begin{align}a\end{align}`)
	require.NoError(t, err)
	require.Len(t, app.warnings, 1)
	assert.Contains(t, app.warnings[0], "nosuch")
	assert.Equal(t, "x", e.PkgState["package:amsmath"])
}

func TestUndefinedReference(t *testing.T) {
	e, app := newKernel(t)
	out, err := runOn(e, `see \ref{nowhere}`)
	require.NoError(t, err)
	assert.Equal(t, "see ??", out)
	assert.Len(t, app.warnings, 1)
}

func TestErrorUnwindsScopes(t *testing.T) {
	e, _ := newKernel(t)
	depth := e.Settings.Depth()

	_, err := runOn(e, `\begin{equation}x\undefinedfoo`)
	require.ErrorIs(t, err, engine.ErrUndefinedCs)
	assert.Equal(t, depth, e.Settings.Depth())
	assert.Equal(t, engine.ModeText, e.Settings.Mode())
	assert.Equal(t, "", e.CurrentEnvironment())

	_, err = runOn(e, `\begin{quote}{\itshape $x \undefinedfoo`)
	require.ErrorIs(t, err, engine.ErrUndefinedCs)
	assert.Equal(t, depth, e.Settings.Depth())
	assert.Equal(t, engine.ModeText, e.Settings.Mode())
	assert.Equal(t, engine.ShapeUpright, e.Settings.Font().Shape)

	// a formula can be opened again, so no maths group is left open
	_, err = runOn(e, `$y$`)
	require.NoError(t, err)
	assert.Equal(t, depth, e.Settings.Depth())
}
