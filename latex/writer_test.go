// writer_test.go -
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
	"strings"
	"testing"
)

type writerOp func(w *writer) error

func words(s string) writerOp {
	return func(w *writer) error {
		for i, word := range strings.Fields(s) {
			if i > 0 {
				if err := w.WriteSpace(); err != nil {
					return err
				}
			}
			if err := w.WriteString(word); err != nil {
				return err
			}
		}
		return nil
	}
}

func par(w *writer) error { return w.EndParagraph() }
func br(w *writer) error { return w.LineBreak() }
func space(w *writer) error { return w.WriteSpace() }

func TestWriter(t *testing.T) {
	cases := []struct {
		width int
		ops   []writerOp
		out   string
	}{
		{0, nil, ""},
		{0, []writerOp{words("a b c")}, "a b c\n"},
		{5, []writerOp{words("aa bb cc")}, "aa bb\ncc\n"},
		{5, []writerOp{words("abcdefgh i")}, "abcdefgh\ni\n"},
		{0, []writerOp{words("a"), par, words("b")}, "a\n\nb\n"},
		{0, []writerOp{par, par, words("a"), par, par}, "a\n"},
		{0, []writerOp{words("a"), br, words("b")}, "a\nb\n"},
		{0, []writerOp{words("a"), space, space, words("b")}, "a b\n"},
		{3, []writerOp{words("a b c")}, "a b\nc\n"},
	}
	for i, test := range cases {
		buf := &strings.Builder{}
		w := newWriter(buf, test.width)
		for _, op := range test.ops {
			if err := op(w); err != nil {
				t.Fatal(err)
			}
		}
		if err := w.Flush(); err != nil {
			t.Fatal(err)
		}
		if buf.String() != test.out {
			t.Errorf("%d: expected %q, got %q", i, test.out, buf.String())
		}
	}
}
