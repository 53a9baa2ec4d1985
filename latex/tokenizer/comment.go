// comment.go -
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
	"strings"
	"unicode"
)

// readComment reads a comment, starting at the comment character and
// ending with (and including) the next end of line.  The returned text
// excludes the comment character and trailing white space.
func (p *Tokenizer) readComment() (string, error) {
	_, size, err := p.peekRune()
	if err != nil {
		return "", err
	}
	p.Skip(size)

	var parts []string
	for p.Next() {
		buf, err := p.Peek()
		if err != nil {
			return "", err
		}

		pos := 0
		for pos < len(buf) && buf[pos] != '\n' && buf[pos] != '\r' {
			pos++
		}
		parts = append(parts, string(buf[:pos]))
		p.Skip(pos)
		if pos < len(buf) {
			r, size, _ := p.peekRune()
			p.skipNewline(r, size)
			break
		}
	}
	line := strings.Join(parts, "")
	return strings.TrimRightFunc(line, unicode.IsSpace), nil
}
