// list.go -
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

import "strings"

// List is a sequence of tokens.
type List []*Token

// Format converts the list back into TeX source text.
func (list List) Format() string {
	var res strings.Builder
	mayNeedSpace := false
	for _, tok := range list {
		if tok.Kind == Ignorable || tok.Kind == Marker {
			continue
		}
		if mayNeedSpace && tok.Kind == Letter {
			res.WriteByte(' ')
		}
		res.WriteString(tok.String())
		mayNeedSpace = tok.isControlWord()
	}
	return res.String()
}

func (list List) String() string {
	return list.Format()
}

// Clone returns a deep copy of the list.
func (list List) Clone() List {
	if list == nil {
		return nil
	}
	res := make(List, len(list))
	for i, tok := range list {
		res[i] = tok.Clone()
	}
	return res
}

// Equal reports whether both lists contain the same tokens.
func (list List) Equal(other List) bool {
	if len(list) != len(other) {
		return false
	}
	for i, tok := range list {
		if !tok.Equal(other[i]) {
			return false
		}
	}
	return true
}

// TrimSpace returns the sub-list without leading and trailing spaces
// and ignorables.
func (list List) TrimSpace() List {
	start := 0
	for start < len(list) && list[start].IsWhiteSpace() {
		start++
	}
	end := len(list)
	for end > start && list[end-1].IsWhiteSpace() {
		end--
	}
	return list[start:end]
}

// Unwrap strips one pair of braces if the list, ignoring surrounding
// white space, consists of a single group.
func (list List) Unwrap() List {
	trimmed := list.TrimSpace()
	if len(trimmed) == 1 && trimmed[0].Kind == Group {
		return trimmed[0].List
	}
	return list
}

// Flatten replaces every group by its explicit begin-group and
// end-group tokens, recursively.
func (list List) Flatten() List {
	var res List
	for _, tok := range list {
		if tok.Kind == Group {
			res = append(res, &Token{Kind: BeginGroup, Char: '{'})
			res = append(res, tok.List.Flatten()...)
			res = append(res, &Token{Kind: EndGroup, Char: '}'})
		} else {
			res = append(res, tok)
		}
	}
	return res
}

// IsEmpty reports whether the list contains nothing but white space.
func (list List) IsEmpty() bool {
	return len(list.TrimSpace()) == 0
}
