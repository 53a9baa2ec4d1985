// numbers_test.go -
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

func TestPopNumber(t *testing.T) {
	testCases := []struct {
		in   string
		val  int
		rest string
	}{
		{"42", 42, ""},
		{"42 x", 42, "x"},
		{"-+-42x", 42, "x"},
		{" - 7", -7, ""},
		{"'17", 15, ""},
		{`"1F`, 31, ""},
		{"`a", 97, ""},
		{"`\\% x", 37, "x"},
		{"99999999999", maxNumber, ""},
		{`\n`, 12, ""},
	}
	for _, test := range testCases {
		e, _ := newTestEngine(t)
		require.NoError(t, e.Settings.NewRegister("n", CountRegister))
		require.NoError(t, e.Settings.SetRegister("n", 12, false))
		e.Registry.PutGlobal("n", &RegisterCmd{CsName: "n", Register: "n"})

		s := sourceStack(test.in)
		v, err := e.PopNumber(s)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.val, v, test.in)
		assert.Equal(t, test.rest, rest(t, s), test.in)
	}
}

func TestPopNumberErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, in := range []string{"", "x", "'9", "-"} {
		_, err := e.PopNumber(sourceStack(in))
		assert.ErrorIs(t, err, ErrNumberExpected, in)
	}
}

func TestPopNumberExpands(t *testing.T) {
	e, _ := newTestEngine(t)
	defineMacro(t, e, &Macro{CsName: "ten", Args: []ArgSpec{}, Body: tokens(t, "10")})
	v, err := e.PopNumber(sourceStack(`\ten0`))
	require.NoError(t, err)
	assert.Equal(t, 100, v)
}

func TestPopDimension(t *testing.T) {
	testCases := []struct {
		in  string
		val int
	}{
		{"1pt", ScaledPoints},
		{"-.5pt", -ScaledPoints / 2},
		{"1,5pt", 3 * ScaledPoints / 2},
		{"1.5 PT", 3 * ScaledPoints / 2},
		{"2pc", 24 * ScaledPoints},
		{"1in", 4736287},
		{"3truept", 3 * ScaledPoints},
		{"10sp", 10},
		{`\parindent`, 10 * ScaledPoints},
		{`2\parindent`, 20 * ScaledPoints},
		{`-0.5\parindent`, -5 * ScaledPoints},
		{`\n pt`, 12 * ScaledPoints},
	}
	for _, test := range testCases {
		e, _ := newTestEngine(t)
		require.NoError(t, e.Settings.NewRegister("parindent", DimenRegister))
		require.NoError(t, e.Settings.SetRegister("parindent", 10*ScaledPoints, false))
		e.Registry.PutGlobal("parindent", &RegisterCmd{CsName: "parindent", Register: "parindent"})
		require.NoError(t, e.Settings.NewRegister("n", CountRegister))
		require.NoError(t, e.Settings.SetRegister("n", 12, false))
		e.Registry.PutGlobal("n", &RegisterCmd{CsName: "n", Register: "n"})

		v, err := e.PopDimension(sourceStack(test.in))
		require.NoError(t, err, test.in)
		assert.Equal(t, test.val, v, test.in)
	}
}

func TestPopDimensionErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	for _, in := range []string{"pt", "1", "1xy", "1 true"} {
		_, err := e.PopDimension(sourceStack(in))
		assert.ErrorIs(t, err, ErrDimenExpected, in)
	}
}

func TestNumericArg(t *testing.T) {
	e, _ := newTestEngine(t)
	s := sourceStack("{12}{3cm}x")
	n, err := e.PopNumericArg(s)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	d, err := e.PopDimensionArg(s)
	require.NoError(t, err)
	assert.Equal(t, round(3*units["cm"]*ScaledPoints), d)
	assert.Equal(t, "x", rest(t, s))
}
