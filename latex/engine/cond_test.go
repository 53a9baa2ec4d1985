// cond_test.go -
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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionals(t *testing.T) {
	testCases := []struct {
		in, out string
	}{
		{`\iftrue a\else b\fi`, "a"},
		{`\iffalse a\else b\fi`, "b"},
		{`\iffalse a\fi c`, "c"},
		{`\iffalse \iftrue x\else y\fi z\else w\fi`, "w"},
		{`\iftrue \iffalse x\else y\fi z\else w\fi`, "yz"},
		{`\ifcase 0 a\or b\or c\else d\fi`, "a"},
		{`\ifcase 2 a\or b\or c\else d\fi`, "c"},
		{`\ifcase 5 a\or b\else d\fi`, "d"},
		{`\ifcase -1 a\or b\else d\fi`, "d"},
		{`\ifcase 3 a\or b\fi e`, "e"},
		{`\ifcase 1 a\or \iffalse\or\fi b\or c\fi`, "b"},
	}
	for _, test := range testCases {
		e, _ := newTestEngine(t)
		out, err := output(t, e, test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.out, out, test.in)
		assert.Equal(t, 0, e.ifDepth, test.in)
	}
}

func TestExtraConditional(t *testing.T) {
	for _, in := range []string{`\fi`, `\else`, `\iftrue\fi\fi`} {
		e, _ := newTestEngine(t)
		_, err := output(t, e, in)
		assert.ErrorIs(t, err, ErrExtraConditional, in)
	}
}

func TestUnterminatedConditional(t *testing.T) {
	e, _ := newTestEngine(t)
	_, err := output(t, e, `\iffalse abc`)
	assert.ErrorIs(t, err, ErrMissingClosing)
}
