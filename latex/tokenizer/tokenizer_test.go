// tokenizer_test.go -
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
	"testing"

	"github.com/seehuhn/texexpand/latex/token"
)

func TestReadControlSequence(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"\\test", "test"},
		{"\\test o'clock", "test"},
		{"\\test4testing", "test"},
		{"\\t2", "t"},
		{"\\2t", "2"},
		{"\\{}", "{"},
		{"\\...", "."},
		{"\\ x", " "},
	}
	for i, testCase := range testCases {
		p := NewTokenizer(nil)
		p.Prepend([]byte(testCase.in), "test data")
		tok, err := p.NextToken()
		if err != nil {
			t.Error("failed to read control sequence", err)
		} else if tok.Kind != token.ControlSequence || tok.Name != testCase.out {
			t.Errorf("test %d: wrong control sequence, expected %q, got %q",
				i, testCase.out, tok.Name)
		}
	}
}

func TestKinds(t *testing.T) {
	toks, err := Tokenize(`\a{b}$&#1##^_~x1`, nil)
	if err != nil {
		t.Fatal(err)
	}
	expected := []token.Kind{
		token.ControlSequence, token.BeginGroup, token.Letter, token.EndGroup,
		token.MathShift, token.AlignTab, token.Param, token.DoubleParam,
		token.Superscript, token.Subscript, token.Active, token.Letter,
		token.Other,
	}
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, got %d: %v", len(expected), len(toks), toks)
	}
	for i, kind := range expected {
		if toks[i].Kind != kind {
			t.Errorf("token %d: expected %s, got %s", i, kind, toks[i].Kind)
		}
	}
	if toks[6].Value != 1 {
		t.Errorf("wrong parameter number %d", toks[6].Value)
	}
}

func TestWhiteSpace(t *testing.T) {
	testCases := []struct{ in, out string }{
		{"a  b", "a b"},
		{"a\nb", "a b"},
		{"a\n   b", "a b"},
		{"a\n\nb", "a \n\nb"},
		{"a\n  \n\n b", "a \n\n\n\nb"},
		{"\\foo   x", "\\foo x"},
		{"\\foo\nx", "\\foo x"},
		{"\\foo\n\nx", "\\foo\n\nx"},
		{"a\r\nb", "a b"},
	}
	for i, testCase := range testCases {
		toks, err := Tokenize(testCase.in, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := toks.Format(); got != testCase.out {
			t.Errorf("test %d: expected %q, got %q", i, testCase.out, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"hello, world!",
		"{a{b}c}d",
		"x = 1 + 2; {nested {groups} here}",
	}
	for _, in := range inputs {
		toks, err := Tokenize(in, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := toks.Format(); got != in {
			t.Errorf("round trip failed: %q became %q", in, got)
		}
	}
}

func TestCatCodeChange(t *testing.T) {
	cat := token.DefaultCatCodes()
	p := NewTokenizer(cat)
	p.Prepend([]byte(`\a@b \a@b`), "test")

	tok, err := p.NextToken()
	if err != nil || tok.Name != "a" {
		t.Fatalf("expected \\a, got %v (%v)", tok, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := p.NextToken(); err != nil {
			t.Fatal(err)
		}
	}

	cat.Set('@', token.CatLetter)
	tok, err = p.NextToken()
	if err != nil || tok.Name != "a@b" {
		t.Errorf("expected \\a@b, got %v (%v)", tok, err)
	}
}

func TestReadVerbatimEnv(t *testing.T) {
	p := NewTokenizer(nil)
	p.Prepend([]byte("x\\begin{v}y\\end{v}z\\end{v}rest"), "test")
	body, err := p.ReadVerbatimEnv("v")
	if err != nil {
		t.Fatal(err)
	}
	if body != "x\\begin{v}y\\end{v}z" {
		t.Errorf("wrong body %q", body)
	}
	tok, err := p.NextToken()
	if err != nil || !tok.IsChar('r') {
		t.Errorf("wrong continuation %v (%v)", tok, err)
	}

	p = NewTokenizer(nil)
	p.Prepend([]byte("never closed \\end{w}"), "test")
	if _, err := p.ReadVerbatimEnv("v"); err == nil {
		t.Error("missing error for unterminated environment")
	}
}

func TestReadUntilChar(t *testing.T) {
	p := NewTokenizer(nil)
	p.Prepend([]byte(`|\x{|rest`), "test")
	delim, err := p.ReadChar()
	if err != nil {
		t.Fatal(err)
	}
	text, err := p.ReadUntilChar(delim)
	if err != nil {
		t.Fatal(err)
	}
	if text != `\x{` {
		t.Errorf("wrong text %q", text)
	}

	p = NewTokenizer(nil)
	p.Prepend([]byte("abc\ndef|"), "test")
	if _, err := p.ReadUntilChar('|'); err == nil {
		t.Error("missing error for line break")
	}
}
