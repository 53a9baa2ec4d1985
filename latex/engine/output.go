// output.go -
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

import "strings"

// Output receives the text produced by the engine.
type Output interface {
	WriteString(s string) error
	WriteSpace() error
	LineBreak() error
	EndParagraph() error
}

// BufferOutput collects the output text in memory.  Runs of spaces are
// collapsed and paragraphs are separated by an empty line.
type BufferOutput struct {
	buf          strings.Builder
	pendingSpace bool
	pendingPar   bool
}

// WriteString implements the Output interface.
func (out *BufferOutput) WriteString(s string) error {
	if s == "" {
		return nil
	}
	if out.pendingPar {
		out.buf.WriteString("\n\n")
	} else if out.pendingSpace {
		out.buf.WriteByte(' ')
	}
	out.pendingPar = false
	out.pendingSpace = false
	out.buf.WriteString(s)
	return nil
}

// WriteSpace implements the Output interface.
func (out *BufferOutput) WriteSpace() error {
	if out.buf.Len() > 0 {
		out.pendingSpace = true
	}
	return nil
}

// LineBreak implements the Output interface.
func (out *BufferOutput) LineBreak() error {
	if out.buf.Len() > 0 && !out.pendingPar {
		out.buf.WriteByte('\n')
	}
	out.pendingSpace = false
	return nil
}

// EndParagraph implements the Output interface.
func (out *BufferOutput) EndParagraph() error {
	if out.buf.Len() > 0 {
		out.pendingPar = true
	}
	return nil
}

// String returns the text written so far.
func (out *BufferOutput) String() string {
	return out.buf.String()
}
