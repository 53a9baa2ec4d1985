// catcode.go -
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

import "unicode"

// CatCode is the lexical category of a character.
type CatCode int

// The sixteen TeX character categories.
const (
	CatEscape CatCode = iota
	CatBeginGroup
	CatEndGroup
	CatMathShift
	CatAlignTab
	CatEndLine
	CatParam
	CatSuperscript
	CatSubscript
	CatIgnored
	CatSpace
	CatLetter
	CatOther
	CatActive
	CatComment
	CatInvalid
)

// CatCodeTable gives the category code for every character.
type CatCodeTable interface {
	CatCode(r rune) CatCode
}

// CatCodes is a mutable category code table.  Characters without an
// explicit entry use plain TeX's defaults, where all Unicode letters
// are letters.
type CatCodes struct {
	m map[rune]CatCode
}

// DefaultCatCodes returns a table with plain TeX's category codes.
func DefaultCatCodes() *CatCodes {
	return &CatCodes{
		m: map[rune]CatCode{
			'\\':   CatEscape,
			'{':    CatBeginGroup,
			'}':    CatEndGroup,
			'$':    CatMathShift,
			'&':    CatAlignTab,
			'\n':   CatEndLine,
			'\r':   CatEndLine,
			'#':    CatParam,
			'^':    CatSuperscript,
			'_':    CatSubscript,
			'\x00': CatIgnored,
			' ':    CatSpace,
			'\t':   CatSpace,
			'~':    CatActive,
			'%':    CatComment,
			'\x7f': CatInvalid,
			'@':    CatOther,
		},
	}
}

// CatCode returns the category code of r.
func (cc *CatCodes) CatCode(r rune) CatCode {
	if c, ok := cc.m[r]; ok {
		return c
	}
	if unicode.IsLetter(r) {
		return CatLetter
	}
	return CatOther
}

// Set changes the category code of r.
func (cc *CatCodes) Set(r rune, c CatCode) {
	cc.m[r] = c
}

// Clone returns an independent copy of the table.
func (cc *CatCodes) Clone() *CatCodes {
	m := make(map[rune]CatCode, len(cc.m))
	for r, c := range cc.m {
		m[r] = c
	}
	return &CatCodes{m: m}
}

// Equal reports whether two tables assign the same categories.
func (cc *CatCodes) Equal(other *CatCodes) bool {
	if len(cc.m) != len(other.m) {
		return false
	}
	for r, c := range cc.m {
		if d, ok := other.m[r]; !ok || c != d {
			return false
		}
	}
	return true
}
