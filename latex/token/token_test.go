// token_test.go -
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

package token

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		in   List
		want string
	}{
		{List{NewCs("foo"), NewLetter('x')}, `\foo x`},
		{List{NewCs("foo"), NewOther('1')}, `\foo1`},
		{List{NewCs("%"), NewLetter('x')}, `\%x`},
		{List{NewCs("@gobble"), NewLetter('a')}, `\@gobble a`},
		{List{NewGroup(String("ab")), NewSpace(), NewCs("par")}, `{ab} \par`},
		{List{&Token{Kind: Param, Value: 2}, &Token{Kind: DoubleParam}}, `#2##`},
		{List{&Token{Kind: Ignorable, Name: "% comment"}, NewNumber(-12)}, `-12`},
	}
	for i, test := range cases {
		got := test.in.Format()
		if got != test.want {
			t.Errorf("%d: expected %q, got %q", i, test.want, got)
		}
	}
}

func TestFormatDimen(t *testing.T) {
	cases := []struct {
		sp   int
		want string
	}{
		{0, "0.0pt"},
		{65536, "1.0pt"},
		{3*65536 + 32768, "3.5pt"},
		{-65536 / 4, "-0.25pt"},
		{1, "0.00002pt"},
	}
	for _, test := range cases {
		got := FormatDimen(test.sp)
		if got != test.want {
			t.Errorf("%d: expected %q, got %q", test.sp, test.want, got)
		}
	}
}

func TestClone(t *testing.T) {
	orig := List{NewGroup(List{NewLetter('a'), NewGroup(String("b"))})}
	clone := orig.Clone()
	if !clone.Equal(orig) {
		t.Fatal("clone differs from original")
	}
	clone[0].List[1].List[0].Char = 'c'
	if orig[0].List[1].List[0].Char != 'b' {
		t.Error("clone shares nested group with original")
	}

	m := NewMarker()
	if !m.Clone().IsMarker(m) {
		t.Error("cloned marker lost its identity")
	}
	if NewMarker().IsMarker(m) {
		t.Error("distinct markers compare equal")
	}
}

func TestSplitCsv(t *testing.T) {
	list := List{NewLetter('a'), NewOther(','), NewSpace(),
		NewGroup(String("b,c")), NewOther(','), NewLetter('d')}
	csv := SplitCsv(list)
	if len(csv) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(csv))
	}
	want := []string{"a", "b,c", "d"}
	for i, w := range want {
		if got := csv.Value(i).Format(); got != w {
			t.Errorf("%d: expected %q, got %q", i, w, got)
		}
	}
	if SplitCsv(nil) != nil {
		t.Error("empty list gave elements")
	}
}

func TestKeyVal(t *testing.T) {
	list := append(String("width=3cm, draft ,height = "), NewGroup(String("a,b")))
	kv := ParseKeyVal(list)
	keys := kv.Keys()
	if len(keys) != 3 || keys[0] != "width" || keys[1] != "draft" || keys[2] != "height" {
		t.Fatalf("wrong keys %q", keys)
	}
	if v, _ := kv.Get("height"); v.Format() != "a,b" {
		t.Errorf("wrong value %q", v.Format())
	}
	if v, ok := kv.Get("draft"); !ok || v != nil {
		t.Errorf("draft should be present without value")
	}

	kv.Set("width", String("1cm"))
	if kv.Keys()[0] != "width" || kv.Len() != 3 {
		t.Error("overwriting a key changed the order")
	}
	if v, _ := kv.Get("width"); v.Format() != "1cm" {
		t.Errorf("overwrite failed, got %q", v.Format())
	}
}

func TestCatCodes(t *testing.T) {
	cc := DefaultCatCodes()
	if cc.CatCode('@') != CatOther || cc.CatCode('é') != CatLetter {
		t.Fatal("wrong default category codes")
	}
	other := cc.Clone()
	other.Set('@', CatLetter)
	if cc.CatCode('@') != CatOther {
		t.Error("clone shares storage with original")
	}
	if cc.Equal(other) {
		t.Error("modified table compares equal")
	}
}
