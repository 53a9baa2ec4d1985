// counters_test.go -
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

func TestCounterReset(t *testing.T) {
	c := NewCounters()
	require.NoError(t, c.New("section", ""))
	require.NoError(t, c.New("subsection", "section"))
	require.NoError(t, c.New("subsubsection", "subsection"))
	assert.ErrorIs(t, c.New("section", ""), ErrCounterDefined)

	require.NoError(t, c.Step("section"))
	require.NoError(t, c.Step("subsection"))
	require.NoError(t, c.Step("subsection"))
	require.NoError(t, c.Step("subsubsection"))
	s, err := c.Format("subsubsection")
	require.NoError(t, err)
	assert.Equal(t, "1.2.1", s)

	// resets propagate through intermediate counters
	require.NoError(t, c.Step("section"))
	v, _ := c.Value("subsection")
	assert.Equal(t, 0, v)
	v, _ = c.Value("subsubsection")
	assert.Equal(t, 0, v)

	require.NoError(t, c.Set("section", 7))
	require.NoError(t, c.Add("section", -2))
	v, _ = c.Value("section")
	assert.Equal(t, 5, v)

	assert.ErrorIs(t, c.Step("chapter"), ErrUndefinedCounter)
	assert.Equal(t, []string{"section", "subsection", "subsubsection"}, c.Names())
}

func TestCounterCycle(t *testing.T) {
	c := NewCounters()
	require.NoError(t, c.New("a", ""))
	require.NoError(t, c.New("b", "a"))
	require.NoError(t, c.AddToReset("a", "b"))
	require.NoError(t, c.Step("a"))
	require.NoError(t, c.Step("b"))
	_, err := c.Format("b")
	assert.NoError(t, err)
}

func TestFormatNumber(t *testing.T) {
	testCases := []struct {
		n     int
		style CounterStyle
		out   string
	}{
		{12, StyleArabic, "12"},
		{1994, StyleRoman, "mcmxciv"},
		{4, StyleUpperRoman, "IV"},
		{0, StyleRoman, ""},
		{3, StyleAlph, "c"},
		{26, StyleUpperAlph, "Z"},
		{27, StyleAlph, "27"},
		{2, StyleFnSymbol, "†"},
	}
	for _, test := range testCases {
		assert.Equal(t, test.out, FormatNumber(test.n, test.style))
	}
}

func TestCounterStyle(t *testing.T) {
	c := NewCounters()
	require.NoError(t, c.New("chapter", ""))
	require.NoError(t, c.New("section", "chapter"))
	require.NoError(t, c.SetStyle("chapter", StyleUpperAlph))
	require.NoError(t, c.Set("chapter", 2))
	require.NoError(t, c.Step("section"))
	s, err := c.Format("section")
	require.NoError(t, err)
	assert.Equal(t, "B.1", s)
}
