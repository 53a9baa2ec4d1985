// files.go - input files, document classes and packages
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

// pkgInit lists the packages which define commands.  Packages not
// listed here are recorded, but otherwise ignored.
var pkgInit = map[string]func(e *engine.Engine, options string){
	"amsmath":  addAmsmathMacros,
	"amsthm":   addAmsthmMacros,
	"amssymb":  addNoMacros,
	"amsfonts": addNoMacros,
	"xparse":   addNoMacros,
	"inputenc": addNoMacros,
	"fontenc":  addNoMacros,
	"verbatim": addVerbatimMacros,
	"hyperref": addHyperrefMacros,
	"graphicx": addGraphicxMacros,
}

func addFiles(e *engine.Engine) {
	defProcessor(e, "input", mInput(engine.NotFoundError))
	defProcessor(e, "@input", mInput(engine.NotFoundWarn))
	defProcessor(e, "include", mInclude)
	defProcessor(e, "InputIfFileExists", mInputIfFileExists)
	defExpandable(e, "IfFileExists", mIfFileExists)
	defProcessor(e, "documentclass", mDocumentClass)
	defProcessor(e, "usepackage", mUsePackage)
	defProcessor(e, "RequirePackage", mUsePackage)
	defProcessor(e, "NeedsTeXFormat", func(e *engine.Engine, s *engine.Stack) error {
		if _, err := s.PopArg(0); err != nil {
			return err
		}
		_, err := s.PopOptArg(0, '[', ']')
		return err
	})
}

// popFileName reads a file name, either as a braced argument or, as
// in "\input chapter1 ", delimited by a space.
func popFileName(e *engine.Engine, s *engine.Stack) (string, error) {
	next, err := s.PeekNonSpace()
	if err != nil {
		return "", err
	}
	if next == nil {
		return "", engine.ErrMissingArgument.With("")
	}
	if next.Kind == token.BeginGroup || next.Kind == token.Group {
		return e.PopLabelString(s)
	}

	var name []rune
	for {
		tok, err := e.NextExpanded(s)
		if err != nil {
			return "", err
		}
		if tok == nil {
			break
		}
		if tok.Kind == token.Space && len(name) == 0 {
			continue
		}
		if tok.Kind != token.Letter && tok.Kind != token.Other {
			if tok.Kind != token.Space {
				s.Push(tok)
			}
			break
		}
		name = append(name, tok.Char)
	}
	if len(name) == 0 {
		return "", engine.ErrMissingArgument.With("")
	}
	return string(name), nil
}

func mInput(action engine.NotFoundAction) func(*engine.Engine, *engine.Stack) error {
	return func(e *engine.Engine, s *engine.Stack) error {
		name, err := popFileName(e, s)
		if err != nil {
			return err
		}
		_, err = e.Input(name, action)
		return err
	}
}

// mInclude implements \include{file}, which starts a new page before
// and after the file.
func mInclude(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	if err := e.Out.EndParagraph(); err != nil {
		return err
	}
	if _, err := e.Input(name, engine.NotFoundWarn); err != nil {
		return err
	}
	return e.Out.EndParagraph()
}

// mInputIfFileExists implements \InputIfFileExists{file}{yes}{no}.  If
// the file exists, the yes code is processed before the file is read.
func mInputIfFileExists(e *engine.Engine, s *engine.Stack) error {
	name, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	args, err := popArgs(s, 2)
	if err != nil {
		return err
	}
	path, err := e.FindFile(name)
	if err != nil {
		return err
	}
	if path == "" {
		return e.ProcessList(args[1], s)
	}
	if err := e.ProcessList(args[0], s); err != nil {
		return err
	}
	_, err = e.Input(name, engine.NotFoundIgnore)
	return err
}

func mIfFileExists(e *engine.Engine, s *engine.Stack) (token.List, error) {
	name, err := e.PopLabelString(s)
	if err != nil {
		return nil, err
	}
	args, err := popArgs(s, 2)
	if err != nil {
		return nil, err
	}
	path, err := e.FindFile(name)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return args[1], nil
	}
	return args[0], nil
}

// mDocumentClass implements \documentclass[options]{class}.  For book
// and report, sections are numbered within chapters.
func mDocumentClass(e *engine.Engine, s *engine.Stack) error {
	options, err := popOptString(e, s)
	if err != nil {
		return err
	}
	class, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	if _, seen := e.PkgState["documentclass"]; seen {
		return engine.ErrNotAllowed.With("documentclass")
	}
	e.PkgState["documentclass"] = class
	e.PkgState["classoptions"] = options

	switch class {
	case "book", "report":
		for _, name := range []string{"section", "equation", "figure", "table"} {
			if err := e.Counters.AddToReset(name, "chapter"); err != nil {
				return err
			}
		}
	}
	return nil
}

func mUsePackage(e *engine.Engine, s *engine.Stack) error {
	options, err := popOptString(e, s)
	if err != nil {
		return err
	}
	names, err := e.PopLabelString(s)
	if err != nil {
		return err
	}
	// optional date, as in \RequirePackage{x}[2020/01/01]
	if _, err := s.PopOptArg(0, '[', ']'); err != nil {
		return err
	}

	for _, pkgName := range strings.Split(names, ",") {
		pkgName = strings.TrimSpace(pkgName)
		if pkgName == "" {
			continue
		}
		key := "package:" + pkgName
		if _, loaded := e.PkgState[key]; loaded {
			continue
		}
		e.PkgState[key] = options
		installFn := pkgInit[pkgName]
		if installFn != nil {
			installFn(e, options)
		} else {
			e.Warning("unknown package \"" + pkgName + "\" (options \"" + options + "\")")
		}
	}
	return nil
}

func addNoMacros(e *engine.Engine, options string) {}

func addAmsmathMacros(e *engine.Engine, options string) {
	for _, name := range []string{"align", "gather", "multline", "flalign"} {
		def(e, newNumberedMath(name, "equation"))
		def(e, &engine.MathDeclaration{CsName: name + "*", Mode: engine.ModeDisplayMath})
	}
	defProcessor(e, "eqref", mRef("(", ")"))
	defProcessor(e, "text", mTextInMath)
}

func addVerbatimMacros(e *engine.Engine, options string) {
	def(e, &verbatimEnv{name: "comment", drop: true})
}

func addHyperrefMacros(e *engine.Engine, options string) {
	defProcessor(e, "url", mURL)
	defProcessor(e, "href", func(e *engine.Engine, s *engine.Stack) error {
		if _, err := s.PopArg(0); err != nil {
			return err
		}
		text, err := s.PopArg(0)
		if err != nil {
			return err
		}
		return e.ProcessList(text, s)
	})
}

func addGraphicxMacros(e *engine.Engine, options string) {
	defProcessor(e, "includegraphics", func(e *engine.Engine, s *engine.Stack) error {
		if _, err := s.PopModifier('*'); err != nil {
			return err
		}
		if _, err := s.PopOptArg(0, '[', ']'); err != nil {
			return err
		}
		_, err := e.PopLabelString(s)
		return err
	})
}

// mURL writes its argument without interpretation.  If possible, the
// raw input is read, so that characters like "%" and "#" are allowed.
func mURL(e *engine.Engine, s *engine.Stack) error {
	if t := e.RawInput(s); t != nil {
		open, err := t.ReadChar()
		for err == nil && open == ' ' {
			open, err = t.ReadChar()
		}
		if err != nil {
			return err
		}
		closing := open
		if open == '{' {
			closing = '}'
		}
		text, err := t.ReadUntilChar(closing)
		if err != nil {
			return err
		}
		return e.Out.WriteString(text)
	}
	arg, err := s.PopArg(0)
	if err != nil {
		return err
	}
	return e.Out.WriteString(arg.Format())
}
