// token.go -
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

package token

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Kind enumerates the different kinds of token.
type Kind int

// The different token kinds used by this package.
const (
	Letter Kind = iota
	Other
	Space
	Par
	ControlSequence
	Active
	BeginGroup
	EndGroup
	Group
	MathShift
	AlignTab
	Param
	DoubleParam
	Superscript
	Subscript
	Ignorable
	Number
	Dimension
	Marker
	Verbatim
)

var kindNames = [...]string{
	"letter", "other", "space", "par", "control sequence", "active",
	"begin group", "end group", "group", "math shift", "alignment tab",
	"parameter", "double parameter", "superscript", "subscript",
	"ignorable", "number", "dimension", "marker", "verbatim",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind" + strconv.Itoa(int(k))
	}
	return kindNames[k]
}

// Token is a single lexical or semantic unit.
type Token struct {
	Kind Kind

	// Char is the character for character tokens (letters, other,
	// active characters, braces, math shift, ...).
	Char rune

	// Name is the name of a control sequence, without the escape
	// character.  For Ignorable and Verbatim tokens this is the
	// original text.
	Name string

	// List holds the contents of a Group token.
	List List

	// Value is the parameter number of a Param token (0 for a bare
	// "#"), the value of a Number token, and the size of a Dimension
	// token in scaled points.
	Value int

	// NoExpand marks a control sequence which must not be expanded
	// the next time it is seen (see \noexpand).
	NoExpand bool

	id uuid.UUID
}

// NewLetter returns a new letter token.
func NewLetter(r rune) *Token {
	return &Token{Kind: Letter, Char: r}
}

// NewOther returns a new token of category "other".
func NewOther(r rune) *Token {
	return &Token{Kind: Other, Char: r}
}

// NewChar returns a letter token for letters and an "other" token for
// everything else, using the default category codes.
func NewChar(r rune) *Token {
	switch {
	case r == ' ' || r == '\t' || r == '\n':
		return NewSpace()
	case unicode.IsLetter(r):
		return NewLetter(r)
	default:
		return NewOther(r)
	}
}

// NewSpace returns a new space token.
func NewSpace() *Token {
	return &Token{Kind: Space, Char: ' '}
}

// NewPar returns a paragraph break token.
func NewPar() *Token {
	return &Token{Kind: Par}
}

// NewCs returns a reference to the control sequence `name`.  The name
// does not include the escape character.
func NewCs(name string) *Token {
	return &Token{Kind: ControlSequence, Name: name}
}

// NewActive returns an active character token.
func NewActive(r rune) *Token {
	return &Token{Kind: Active, Char: r}
}

// NewGroup returns a group token holding the given list.
func NewGroup(list List) *Token {
	return &Token{Kind: Group, List: list}
}

// NewNumber returns a token representing an integer value.
func NewNumber(n int) *Token {
	return &Token{Kind: Number, Value: n}
}

// NewDimension returns a token representing a length, given in
// scaled points.
func NewDimension(sp int) *Token {
	return &Token{Kind: Dimension, Value: sp}
}

// NewVerbatim returns a token holding text which is never
// re-interpreted.
func NewVerbatim(text string) *Token {
	return &Token{Kind: Verbatim, Name: text}
}

// NewMarker returns a new stack marker.  Every marker is distinct
// from every other marker, including clones of other markers.
func NewMarker() *Token {
	return &Token{Kind: Marker, id: uuid.New()}
}

// String converts the string s into a list of letter, other and
// space tokens.
func String(s string) List {
	res := make(List, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		res = append(res, NewChar(r))
	}
	return res
}

// IsIgnorable reports whether the token is skipped when looking for
// arguments.
func (tok *Token) IsIgnorable() bool {
	return tok.Kind == Ignorable || tok.Kind == Marker
}

// IsWhiteSpace reports whether the token is a space or an ignorable.
func (tok *Token) IsWhiteSpace() bool {
	return tok.Kind == Space || tok.IsIgnorable()
}

// IsChar reports whether the token is a character token for r.
func (tok *Token) IsChar(r rune) bool {
	switch tok.Kind {
	case Letter, Other, MathShift, AlignTab, Superscript, Subscript,
		BeginGroup, EndGroup:
		return tok.Char == r
	}
	return false
}

// IsCs reports whether the token refers to the control sequence `name`.
func (tok *Token) IsCs(name string) bool {
	return tok.Kind == ControlSequence && tok.Name == name
}

// IsPar reports whether the token ends a paragraph.
func (tok *Token) IsPar() bool {
	return tok.Kind == Par || tok.IsCs("par")
}

// IsMarker reports whether tok is the marker m.
func (tok *Token) IsMarker(m *Token) bool {
	return tok.Kind == Marker && m.Kind == Marker && tok.id == m.id
}

// CsName returns the registry name for control sequences and active
// characters.  The second return value is false for all other tokens.
func (tok *Token) CsName() (string, bool) {
	switch tok.Kind {
	case ControlSequence:
		return tok.Name, true
	case Active:
		return ActiveName(tok.Char), true
	}
	return "", false
}

// ActiveName returns the registry name used for the active
// character r.
func ActiveName(r rune) string {
	return "\x00active" + string(r)
}

// Clone returns a deep copy of the token.
func (tok *Token) Clone() *Token {
	res := *tok
	if tok.Kind == Group {
		res.List = tok.List.Clone()
	}
	return &res
}

// Equal reports whether two tokens are the same.  Groups are compared
// recursively.
func (tok *Token) Equal(other *Token) bool {
	if tok.Kind != other.Kind {
		return false
	}
	switch tok.Kind {
	case Group:
		return tok.List.Equal(other.List)
	case ControlSequence, Ignorable, Verbatim:
		return tok.Name == other.Name
	case Number, Dimension, Param:
		return tok.Value == other.Value
	case Marker:
		return tok.id == other.id
	case Space, Par, DoubleParam:
		return true
	default:
		return tok.Char == other.Char
	}
}

func (tok *Token) String() string {
	switch tok.Kind {
	case Space:
		return " "
	case Par:
		return "\n\n"
	case ControlSequence:
		return "\\" + tok.Name
	case Group:
		return "{" + tok.List.Format() + "}"
	case Param:
		if tok.Value == 0 {
			return "#"
		}
		return "#" + strconv.Itoa(tok.Value)
	case DoubleParam:
		return "##"
	case Ignorable, Marker:
		return ""
	case Number:
		return strconv.Itoa(tok.Value)
	case Dimension:
		return FormatDimen(tok.Value)
	case Verbatim:
		return tok.Name
	default:
		return string(tok.Char)
	}
}

// isControlWord reports whether the token is a control sequence whose
// name consists of letters, so that a following letter must be
// separated by a space.
func (tok *Token) isControlWord() bool {
	if tok.Kind != ControlSequence || tok.Name == "" {
		return false
	}
	r, size := utf8.DecodeRuneInString(tok.Name)
	return size < len(tok.Name) || unicode.IsLetter(r) || r == '@'
}

// FormatDimen formats a length given in scaled points the way TeX
// does, e.g. "3.5pt".
func FormatDimen(sp int) string {
	var res []byte
	if sp < 0 {
		res = append(res, '-')
		sp = -sp
	}
	res = strconv.AppendInt(res, int64(sp/65536), 10)
	res = append(res, '.')

	// TeX's algorithm for printing the shortest decimal expansion
	// which reads back as the same number of scaled points.
	s := 10*(sp%65536) + 5
	delta := 10
	for {
		if delta > 65536 {
			s += 0o100000 - 50000
		}
		res = append(res, byte('0'+s/65536))
		s = 10 * (s % 65536)
		delta *= 10
		if s <= delta {
			break
		}
	}
	return string(res) + "pt"
}
