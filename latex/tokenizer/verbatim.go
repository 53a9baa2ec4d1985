// verbatim.go -
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

package tokenizer

import (
	"bytes"
	"io"
)

// ReadVerbatimEnv reads raw input up to the \end{name} which matches
// the enclosing \begin{name}.  Nested environments of the same name
// are counted, so that the body may contain complete inner
// \begin{name}...\end{name} pairs.  The closing \end{name} is
// consumed but not included in the result.
func (p *Tokenizer) ReadVerbatimEnv(name string) (string, error) {
	beginTag := []byte(`\begin{` + name + `}`)
	endTag := []byte(`\end{` + name + `}`)

	var res []byte
	depth := 0
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}

		switch {
		case bytes.HasPrefix(buf, endTag):
			p.Skip(len(endTag))
			if depth == 0 {
				p.state = stateMidLine
				return string(res), nil
			}
			depth--
			res = append(res, endTag...)
			continue
		case bytes.HasPrefix(buf, beginTag):
			p.Skip(len(beginTag))
			depth++
			res = append(res, beginTag...)
			continue
		}

		pos := 1
		for pos < len(buf) && buf[pos] != '\\' {
			pos++
		}
		res = append(res, buf[:pos]...)
		p.Skip(pos)
	}
	return "", p.MakeError(`\end{` + name + `} not found`)
}

// ReadChar reads a single raw input character, ignoring category codes.
func (p *Tokenizer) ReadChar() (rune, error) {
	r, size, err := p.peekRune()
	if err != nil {
		return 0, err
	}
	p.Skip(size)
	p.state = stateMidLine
	return r, nil
}

// ReadUntilChar reads raw input up to the next occurrence of delim.
// The delimiter is consumed but not included in the result.  Reaching
// the end of the line first is an error.
func (p *Tokenizer) ReadUntilChar(delim rune) (string, error) {
	var res []rune
	for {
		r, size, err := p.peekRune()
		if err == io.EOF {
			return "", p.MakeError("missing delimiter " + string(delim))
		} else if err != nil {
			return "", err
		}
		if r == '\n' || r == '\r' {
			return "", p.MakeError("line ended before delimiter " + string(delim))
		}
		p.Skip(size)
		if r == delim {
			p.state = stateMidLine
			return string(res), nil
		}
		res = append(res, r)
	}
}
