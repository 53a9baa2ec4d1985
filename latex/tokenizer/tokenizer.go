// tokenizer.go -
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
	"io"
	"unicode/utf8"

	"github.com/seehuhn/texexpand/latex/scanner"
	"github.com/seehuhn/texexpand/latex/token"
)

type lineState int

const (
	stateNewLine lineState = iota
	stateMidLine
	stateSkipBlanks
)

// A Tokenizer splits TeX input into tokens.
type Tokenizer struct {
	scanner.Scanner

	// CatCodes determines the category of every input character.
	CatCodes token.CatCodeTable

	state lineState
}

// NewTokenizer creates and initialises a new Tokenizer.
func NewTokenizer(cat token.CatCodeTable) *Tokenizer {
	if cat == nil {
		cat = token.DefaultCatCodes()
	}
	return &Tokenizer{
		CatCodes: cat,
	}
}

// Tokenize splits the given text into tokens.
func Tokenize(text string, cat token.CatCodeTable) (token.List, error) {
	p := NewTokenizer(cat)
	p.Prepend([]byte(text), "text")
	var res token.List
	for {
		tok, err := p.NextToken()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		res = append(res, tok)
	}
	return res, nil
}

// peekRune returns the next input character without consuming it.
// The size is zero at the end of input.
func (p *Tokenizer) peekRune() (rune, int, error) {
	if !p.Next() {
		return 0, 0, io.EOF
	}
	buf, err := p.Peek()
	if err != nil {
		return 0, 0, err
	}
	r, size := utf8.DecodeRune(buf)
	return r, size, nil
}

// NextToken returns the next token of the input.  At the end of input,
// io.EOF is returned.
func (p *Tokenizer) NextToken() (*token.Token, error) {
	for {
		r, size, err := p.peekRune()
		if err != nil {
			return nil, err
		}
		cat := p.CatCodes.CatCode(r)

		switch cat {
		case token.CatEscape:
			p.Skip(size)
			return p.readControlSequence()

		case token.CatEndLine:
			p.skipNewline(r, size)
			state := p.state
			p.state = stateNewLine
			switch state {
			case stateNewLine:
				return token.NewPar(), nil
			case stateMidLine:
				return token.NewSpace(), nil
			}

		case token.CatSpace:
			p.Skip(size)
			if p.state == stateMidLine {
				p.state = stateSkipBlanks
				return token.NewSpace(), nil
			}

		case token.CatIgnored:
			p.Skip(size)

		case token.CatComment:
			text, err := p.readComment()
			if err != nil {
				return nil, err
			}
			p.state = stateNewLine
			return &token.Token{Kind: token.Ignorable, Name: text}, nil

		case token.CatParam:
			p.Skip(size)
			p.state = stateMidLine
			return p.readParam()

		case token.CatActive:
			p.Skip(size)
			p.state = stateMidLine
			return token.NewActive(r), nil

		case token.CatInvalid:
			return nil, p.MakeError("invalid character " + string(r))

		default:
			p.Skip(size)
			p.state = stateMidLine
			return &token.Token{Kind: charKinds[cat], Char: r}, nil
		}
	}
}

var charKinds = map[token.CatCode]token.Kind{
	token.CatBeginGroup:  token.BeginGroup,
	token.CatEndGroup:    token.EndGroup,
	token.CatMathShift:   token.MathShift,
	token.CatAlignTab:    token.AlignTab,
	token.CatSuperscript: token.Superscript,
	token.CatSubscript:   token.Subscript,
	token.CatLetter:      token.Letter,
	token.CatOther:       token.Other,
}

// skipNewline consumes an end of line character, treating "\r\n" as a
// single line break.
func (p *Tokenizer) skipNewline(r rune, size int) {
	p.Skip(size)
	if r != '\r' {
		return
	}
	if next, size, err := p.peekRune(); err == nil && next == '\n' {
		p.Skip(size)
	}
}

func (p *Tokenizer) readControlSequence() (*token.Token, error) {
	r, size, err := p.peekRune()
	if err == io.EOF {
		p.state = stateMidLine
		return token.NewCs(""), nil
	} else if err != nil {
		return nil, err
	}
	p.Skip(size)

	if p.CatCodes.CatCode(r) != token.CatLetter {
		if p.CatCodes.CatCode(r) == token.CatSpace {
			p.state = stateSkipBlanks
		} else {
			p.state = stateMidLine
		}
		if r == '\r' || r == '\n' {
			r = ' '
		}
		return token.NewCs(string(r)), nil
	}

	name := []rune{r}
	for {
		r, size, err := p.peekRune()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if p.CatCodes.CatCode(r) != token.CatLetter {
			break
		}
		name = append(name, r)
		p.Skip(size)
	}
	p.state = stateSkipBlanks
	return token.NewCs(string(name)), nil
}

func (p *Tokenizer) readParam() (*token.Token, error) {
	r, size, err := p.peekRune()
	if err == io.EOF {
		return &token.Token{Kind: token.Param}, nil
	} else if err != nil {
		return nil, err
	}
	switch {
	case r >= '1' && r <= '9':
		p.Skip(size)
		return &token.Token{Kind: token.Param, Value: int(r - '0')}, nil
	case p.CatCodes.CatCode(r) == token.CatParam:
		p.Skip(size)
		return &token.Token{Kind: token.DoubleParam}, nil
	}
	return &token.Token{Kind: token.Param}, nil
}
