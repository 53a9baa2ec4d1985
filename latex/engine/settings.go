// settings.go - scoped typesetting settings
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
	"github.com/seehuhn/texexpand/latex/token"
)

// Mode is the current typesetting mode.
type Mode int

// The typesetting modes.
const (
	ModeText Mode = iota
	ModeInlineMath
	ModeDisplayMath
)

// IsMath reports whether m is one of the maths modes.
func (m Mode) IsMath() bool {
	return m == ModeInlineMath || m == ModeDisplayMath
}

// FontFamily selects roman, sans serif or typewriter type.
type FontFamily int

// The font families.
const (
	FamilyRoman FontFamily = iota
	FamilySans
	FamilyTypewriter
)

// FontShape selects the shape of the current font.
type FontShape int

// The font shapes.
const (
	ShapeUpright FontShape = iota
	ShapeItalic
	ShapeSlanted
	ShapeSmallCaps
)

// FontWeight selects between medium and bold type.
type FontWeight int

// The font weights.
const (
	WeightMedium FontWeight = iota
	WeightBold
)

// FontSize is the relative font size.  SizeNormal corresponds to
// \normalsize.
type FontSize int

// The font sizes, from \tiny to \Huge.
const (
	SizeTiny FontSize = iota - 4
	SizeScript
	SizeFootnote
	SizeSmall
	SizeNormal
	SizeLarge
	SizeLarger
	SizeLargest
	SizeHuge
	SizeHuger
)

// Font describes the current font selection.
type Font struct {
	Family FontFamily
	Shape  FontShape
	Weight FontWeight
	Size   FontSize
}

// ColumnSpec describes one column of an alignment.
type ColumnSpec struct {
	// Align is one of 'l', 'c', 'r' and 'p'.
	Align rune

	// Width is the width of 'p' columns.
	Width token.List
}

// Alignment is the state of a tabular environment.
type Alignment struct {
	Columns []ColumnSpec
	Column  int
	Row     int
}

// RegisterKind distinguishes count and dimen registers.
type RegisterKind int

// The register kinds.
const (
	CountRegister RegisterKind = iota
	DimenRegister
)

type scope struct {
	font   Font
	mode   Mode
	align  *Alignment
	cat    *token.CatCodes
	ownCat bool
	regs   map[string]int
	decls  []Declaration

	// env is the environment which opened the scope, until its end
	// code has run.
	env Declaration
}

// Settings is a stack of scopes holding the font, mode, alignment,
// category codes and register values.  Changes made inside a group
// are undone when the group ends.
type Settings struct {
	scopes    []*scope
	registers map[string]RegisterKind
}

// NewSettings returns settings with plain TeX's category codes, text
// mode and the normal font.
func NewSettings() *Settings {
	root := &scope{
		font:   Font{Size: SizeNormal},
		cat:    token.DefaultCatCodes(),
		ownCat: true,
	}
	return &Settings{
		scopes:    []*scope{root},
		registers: map[string]RegisterKind{},
	}
}

func (st *Settings) top() *scope {
	return st.scopes[len(st.scopes)-1]
}

func (st *Settings) push() {
	cur := st.top()
	st.scopes = append(st.scopes, &scope{
		font:  cur.font,
		mode:  cur.mode,
		align: cur.align,
		cat:   cur.cat,
	})
}

func (st *Settings) pop() error {
	if len(st.scopes) <= 1 {
		return newError(ErrExtraEndGroup)
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
	return nil
}

// Depth returns the number of open scopes, including the outermost
// one.
func (st *Settings) Depth() int {
	return len(st.scopes)
}

// Font returns the current font.
func (st *Settings) Font() Font {
	return st.top().font
}

// SetFont changes the font until the end of the current group.
func (st *Settings) SetFont(f Font) {
	st.top().font = f
}

// Mode returns the current typesetting mode.
func (st *Settings) Mode() Mode {
	return st.top().mode
}

// SetMode changes the mode until the end of the current group.
func (st *Settings) SetMode(m Mode) {
	st.top().mode = m
}

// StartAlignment starts a new alignment with the given columns in the
// current group.
func (st *Settings) StartAlignment(cols []ColumnSpec) *Alignment {
	align := &Alignment{Columns: cols}
	st.top().align = align
	return align
}

// Alignment returns the innermost active alignment, or nil outside
// alignments.
func (st *Settings) Alignment() *Alignment {
	return st.top().align
}

// CatCode returns the category code of r.  This method allows Settings
// to be used as the category code table of a tokenizer.
func (st *Settings) CatCode(r rune) token.CatCode {
	return st.top().cat.CatCode(r)
}

// SetCatCode changes the category code of r, either until the end of
// the current group or, if global is set, permanently.
func (st *Settings) SetCatCode(r rune, c token.CatCode, global bool) {
	scopes := st.scopes[len(st.scopes)-1:]
	if global {
		scopes = st.scopes
	}
	for _, sc := range scopes {
		if !sc.ownCat {
			sc.cat = sc.cat.Clone()
			sc.ownCat = true
		}
		sc.cat.Set(r, c)
	}
}

// CatCodes returns a copy of the current category code table.
func (st *Settings) CatCodes() *token.CatCodes {
	return st.top().cat.Clone()
}

// NewRegister allocates a register.  Allocation is always global and
// the initial value is zero.
func (st *Settings) NewRegister(name string, kind RegisterKind) error {
	if _, ok := st.registers[name]; ok {
		return newError(ErrRegisterDefined, name)
	}
	st.registers[name] = kind
	return nil
}

// Register returns the current value and the kind of a register.
func (st *Settings) Register(name string) (int, RegisterKind, error) {
	kind, ok := st.registers[name]
	if !ok {
		return 0, 0, newError(ErrRegisterUndef, name)
	}
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if v, ok := st.scopes[i].regs[name]; ok {
			return v, kind, nil
		}
	}
	return 0, kind, nil
}

// SetRegister assigns a value to a register.
func (st *Settings) SetRegister(name string, value int, global bool) error {
	if _, ok := st.registers[name]; !ok {
		return newError(ErrRegisterUndef, name)
	}
	sc := st.top()
	if global {
		for _, inner := range st.scopes[1:] {
			delete(inner.regs, name)
		}
		sc = st.scopes[0]
	}
	if sc.regs == nil {
		sc.regs = map[string]int{}
	}
	sc.regs[name] = value
	return nil
}

func (st *Settings) updateRegister(name string, global bool, fn func(int) (int, error)) error {
	v, _, err := st.Register(name)
	if err != nil {
		return err
	}
	v, err = fn(v)
	if err != nil {
		return err
	}
	return st.SetRegister(name, v, global)
}

// AdvanceRegister adds delta to a register.
func (st *Settings) AdvanceRegister(name string, delta int, global bool) error {
	return st.updateRegister(name, global, func(v int) (int, error) {
		return v + delta, nil
	})
}

// MultiplyRegister multiplies a register by factor.
func (st *Settings) MultiplyRegister(name string, factor int, global bool) error {
	return st.updateRegister(name, global, func(v int) (int, error) {
		return v * factor, nil
	})
}

// DivideRegister divides a register by divisor, truncating towards
// zero.
func (st *Settings) DivideRegister(name string, divisor int, global bool) error {
	return st.updateRegister(name, global, func(v int) (int, error) {
		if divisor == 0 {
			return 0, newError(ErrDivideByZero)
		}
		return v / divisor, nil
	})
}
