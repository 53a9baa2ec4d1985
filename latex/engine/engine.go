// engine.go - the command dispatch loop
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
	"log"
	"strconv"

	"golang.org/x/text/encoding"

	"github.com/seehuhn/texexpand/latex/token"
	"github.com/seehuhn/texexpand/latex/tokenizer"
)

// Default limits, used unless changed by the caller.
const (
	DefaultMaxExpansions   = 10000
	DefaultMaxIncludeDepth = 32
)

// LabelStore records the targets of \label for use by \ref.
type LabelStore interface {
	SetLabel(label, text string)
	Label(label string) (string, bool)
}

// CharHandler processes a character token of a special category, for
// example a math shift or an alignment tab.
type CharHandler func(e *Engine, tok *token.Token, s *Stack) error

// Engine holds the complete state of a TeX interpreter.  An Engine
// must not be used concurrently.
type Engine struct {
	Registry *Registry
	Settings *Settings
	Counters *Counters

	App    App
	Out    Output
	Labels LabelStore

	// Encoding is used to decode input files.  If nil, files must be
	// UTF-8 encoded.
	Encoding encoding.Encoding

	// MaxExpansions limits the number of consecutive expansions
	// without any other progress.
	MaxExpansions int

	// MaxIncludeDepth limits the nesting of input files.
	MaxIncludeDepth int

	// Undefined selects how undefined control sequences are treated.
	Undefined NotFoundAction

	// Debug enables tracing of the expansion steps.
	Debug bool

	// PkgState holds flags for use by the command catalog.
	PkgState map[string]string

	// Files lists the input files read so far.
	Files []string

	// GlobalNext is set by \global and makes the next assignment
	// global.  It is cleared by the next non-expandable command.
	GlobalNext bool

	charHandlers map[token.Kind]CharHandler
	inputs       []*tokenizer.Tokenizer
	expansions   int
	ifDepth      int
	current      string
}

// New allocates a new engine with no commands defined.
func New() *Engine {
	return &Engine{
		Registry:        NewRegistry(),
		Settings:        NewSettings(),
		Counters:        NewCounters(),
		App:             &FileApp{},
		Out:             &BufferOutput{},
		MaxExpansions:   DefaultMaxExpansions,
		MaxIncludeDepth: DefaultMaxIncludeDepth,
		PkgState:        map[string]string{},
		charHandlers:    map[token.Kind]CharHandler{},
	}
}

// Lookup returns the command for `name`, or nil if the name is
// undefined.
func (e *Engine) Lookup(name string) Command {
	return e.Registry.Lookup(name)
}

// LookupToken returns the meaning of a control sequence or active
// character token.
func (e *Engine) LookupToken(tok *token.Token) Command {
	name, ok := tok.CsName()
	if !ok {
		return nil
	}
	return e.Registry.Lookup(name)
}

// IsDefined reports whether `name` has a meaning other than \relax, in
// the sense used by \newcommand.
func (e *Engine) IsDefined(name string) bool {
	cmd := e.Registry.Lookup(name)
	if cmd == nil {
		return false
	}
	return name == "relax" || cmd != Relax
}

// Define registers a command according to the overwrite policy.
func (e *Engine) Define(name string, cmd Command, policy Overwrite, global bool) error {
	defined := e.IsDefined(name)
	switch policy {
	case Forbid:
		if defined {
			return newError(ErrDefined, name)
		}
	case Force:
		if !defined {
			return newError(ErrUndefined, name)
		}
	case Skip:
		if defined {
			return nil
		}
	}
	if global {
		e.Registry.PutGlobal(name, cmd)
	} else {
		e.Registry.PutLocal(name, cmd)
	}
	return nil
}

// TakeGlobal returns and clears the \global prefix flag.
func (e *Engine) TakeGlobal() bool {
	global := e.GlobalNext
	e.GlobalNext = false
	return global
}

// SetCharHandler installs the handler for character tokens of the
// given kind.
func (e *Engine) SetCharHandler(kind token.Kind, h CharHandler) {
	e.charHandlers[kind] = h
}

// StartGroup opens a new scope for local definitions and settings.
func (e *Engine) StartGroup() {
	e.Registry.Push()
	e.Settings.push()
}

// EndGroup runs the end actions of the declarations used in the
// current scope and then restores the settings and definitions which
// were active before the matching StartGroup.
func (e *Engine) EndGroup(s *Stack) error {
	if e.Settings.Depth() <= 1 {
		return newError(ErrExtraEndGroup)
	}
	sc := e.Settings.top()
	decls := sc.decls
	if sc.env != nil {
		decls = append([]Declaration{sc.env}, decls...)
		sc.env = nil
	}
	sc.decls = nil
	var err error
	for i := len(decls) - 1; i >= 0; i-- {
		e2 := decls[i].End(e, s)
		if err == nil {
			err = e2
		}
	}
	e1 := e.Settings.pop()
	e2 := e.Registry.Pop()
	if err == nil {
		err = e1
	}
	if err == nil {
		err = e2
	}
	return err
}

// Unwind closes all groups opened since the scope depth was depth.
// This is used to restore a consistent state after an error.
func (e *Engine) Unwind(depth int, s *Stack) {
	e.GlobalNext = false
	for e.Settings.Depth() > depth && e.Settings.Depth() > 1 {
		e.EndGroup(s)
	}
}

// Scope runs fn inside a group.  The group is closed on every exit
// path.
func (e *Engine) Scope(s *Stack, fn func() error) (err error) {
	e.StartGroup()
	defer func() {
		e2 := e.EndGroup(s)
		if err == nil {
			err = e2
		}
	}()
	return fn()
}

// Process processes all tokens from s, until the end of input.
func (e *Engine) Process(s *Stack) error {
	for {
		tok, err := s.Pop()
		if err != nil {
			return e.annotate(err)
		}
		if tok == nil {
			return nil
		}
		err = e.ProcessToken(tok, s)
		if err != nil {
			return e.annotate(err)
		}
	}
}

// ProcessList processes the tokens in list as if they were at the
// start of s.  Commands at the end of list can read their arguments
// from s; everything they leave in s is returned to s unchanged.
func (e *Engine) ProcessList(list token.List, s *Stack) error {
	m := token.NewMarker()
	s.Push(m)
	s.PushList(list)
	defer s.removeMarker(m)

	for !s.PopMarker(m) {
		tok, err := s.Pop()
		if err != nil {
			return e.annotate(err)
		}
		if tok == nil {
			break
		}
		err = e.ProcessToken(tok, s)
		if err != nil {
			return e.annotate(err)
		}
	}
	return nil
}

// ProcessToken processes a single token which was removed from s.
func (e *Engine) ProcessToken(tok *token.Token, s *Stack) error {
	switch tok.Kind {
	case token.Ignorable, token.Marker:
		return nil
	case token.ControlSequence, token.Active:
		return e.processCs(tok, s)
	}

	e.expansions = 0
	if e.GlobalNext && tok.Kind != token.Space {
		e.GlobalNext = false
		return newError(ErrNotAllowed, "global")
	}
	switch tok.Kind {
	case token.Space:
		return e.Out.WriteSpace()
	case token.Par:
		if e.Registry.Lookup("par") != nil {
			return e.processCs(token.NewCs("par"), s)
		}
		return e.Out.EndParagraph()
	case token.BeginGroup:
		e.StartGroup()
		return nil
	case token.EndGroup:
		return e.EndGroup(s)
	case token.Group:
		// commands inside the group cannot read past its end
		return e.Scope(s, func() error {
			return e.Process(NewStack(tok.List))
		})
	case token.MathShift, token.AlignTab, token.Superscript, token.Subscript:
		if h := e.charHandlers[tok.Kind]; h != nil {
			return h(e, tok, s)
		}
	}
	return e.Out.WriteString(tok.String())
}

func (e *Engine) processCs(tok *token.Token, s *Stack) error {
	name, _ := tok.CsName()
	cmd := e.Registry.Lookup(name)
	if cmd == nil {
		return e.undefined(tok)
	}

	if x, ok := cmd.(Expandable); ok {
		if tok.NoExpand {
			return nil
		}
		list, err := e.expandCommand(name, x, s)
		if err != nil {
			return err
		}
		s.PushList(list)
		return nil
	}

	e.expansions = 0
	p, ok := cmd.(Processor)
	if !ok {
		e.GlobalNext = false
		return nil
	}
	if e.Debug {
		log.Printf("process \\%s", name)
	}
	if d, ok := cmd.(Declaration); ok {
		sc := e.Settings.top()
		sc.decls = append(sc.decls, d)
	}
	global := e.GlobalNext
	prev := e.current
	e.current = name
	err := p.Process(e, s)
	e.current = prev

	// \global only applies to the command immediately following it
	if _, isPrefix := cmd.(*Prefix); global && !isPrefix {
		e.GlobalNext = false
	}
	return err
}

func (e *Engine) expandCommand(name string, x Expandable, s *Stack) (token.List, error) {
	e.expansions++
	if e.MaxExpansions > 0 && e.expansions > e.MaxExpansions {
		e.expansions = 0
		return nil, newError(ErrExpansionDepth, name)
	}
	prev := e.current
	e.current = name
	list, err := x.ExpandOnce(e, s)
	e.current = prev
	if e.Debug && err == nil {
		log.Printf("expand \\%s -> %s", name, list.Format())
	}
	return list, err
}

func (e *Engine) undefined(tok *token.Token) error {
	name, _ := tok.CsName()
	err := newError(ErrUndefinedCs, name)
	if tok.Kind == token.Active {
		err.Params[0] = string(tok.Char)
	} else {
		err.Hint = e.suggest(name)
	}
	switch e.Undefined {
	case NotFoundError:
		return err
	case NotFoundWarn:
		e.Warning(err.Error())
	}
	return nil
}

// Warning reports a non-fatal problem, together with the current
// input position.
func (e *Engine) Warning(msg string) {
	if pos := e.Position(); pos != "" {
		msg = pos + ": " + msg
	}
	e.App.Warning(msg)
}

// Position describes the current input position as "file:line".
func (e *Engine) Position() string {
	if len(e.inputs) == 0 {
		return ""
	}
	name, line := e.inputs[len(e.inputs)-1].Position()
	if name == "" {
		return ""
	}
	return name + ":" + strconv.Itoa(line)
}

func (e *Engine) annotate(err error) error {
	perr, ok := err.(*Error)
	if !ok {
		return err
	}
	if len(perr.Params) > 0 && perr.Params[0] == "" {
		perr.Params[0] = e.current
	}
	if perr.Pos == "" {
		perr.Pos = e.Position()
	}
	return perr
}
