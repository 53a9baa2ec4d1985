// writer.go - line-filling plain text output
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

package latex

import (
	"io"
	"strings"
	"unicode/utf8"
)

const noBreakSpace = "\u00a0"

// writer fills paragraphs into lines of at most width characters.
// Words joined by non-breaking spaces are never split.  It implements
// engine.Output.
type writer struct {
	out   io.Writer
	width int

	word       []byte
	line       []string
	lineLength int

	started    bool
	pendingPar bool
}

func newWriter(out io.Writer, width int) *writer {
	return &writer{
		out:   out,
		width: width,
	}
}

// WriteString appends text to the current word.
func (w *writer) WriteString(s string) error {
	if s == "" {
		return nil
	}
	if w.pendingPar {
		w.pendingPar = false
		if _, err := io.WriteString(w.out, "\n"); err != nil {
			return err
		}
	}
	w.word = append(w.word, s...)
	return nil
}

// WriteSpace ends the current word.
func (w *writer) WriteSpace() error {
	return w.endWord()
}

// LineBreak ends the current line.
func (w *writer) LineBreak() error {
	err := w.endWord()
	if err != nil {
		return err
	}
	if len(w.line) > 0 {
		return w.writeLine()
	}
	if w.started && !w.pendingPar {
		_, err = io.WriteString(w.out, "\n")
	}
	return err
}

// EndParagraph writes the pending text.  The next paragraph will be
// separated by an empty line.
func (w *writer) EndParagraph() error {
	err := mergeErrors(w.endWord(), w.writeLine())
	if w.started {
		w.pendingPar = true
	}
	return err
}

// Flush writes all pending text.
func (w *writer) Flush() error {
	err := w.EndParagraph()
	w.pendingPar = false
	return err
}

func (w *writer) endWord() error {
	word := string(w.word)
	w.word = w.word[:0]
	l := utf8.RuneCountInString(word)
	if l == 0 {
		return nil
	}

	if len(w.line) == 0 {
		w.line = []string{word}
		w.lineLength = l
		return nil
	}
	if w.width <= 0 || w.lineLength+1+l <= w.width {
		w.line = append(w.line, word)
		w.lineLength += 1 + l
		return nil
	}
	err := w.writeLine()
	w.line = []string{word}
	w.lineLength = l
	return err
}

func (w *writer) writeLine() error {
	if len(w.line) == 0 {
		return nil
	}
	lineStr := strings.Join(w.line, " ")
	lineStr = strings.ReplaceAll(lineStr, noBreakSpace, " ") + "\n"
	w.line = nil
	w.lineLength = 0
	w.started = true
	_, err := io.WriteString(w.out, lineStr)
	return err
}

func mergeErrors(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
