// scanner_test.go -
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

package scanner

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

func TestScannerSimple(t *testing.T) {
	scan := &Scanner{}
	target := "testing"
	scan.Prepend([]byte(target[4:]), "end")
	scan.Prepend([]byte(target[:4]), "beginning")

	for len(target) > 0 {
		hasData := scan.Next()
		if !hasData {
			t.Fatal("unexpected end of data")
		}
		buf, err := scan.Peek()
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if string(buf) != target {
			t.Fatalf("expected %q, got %q", target, string(buf))
		}
		scan.Skip(1)
		target = target[1:]
	}

	hasData := scan.Next()
	if hasData {
		t.Fatal("unexpected data")
	}
	if _, err := scan.Peek(); err != io.EOF {
		t.Errorf("expected io.EOF at end of input, got %v", err)
	}
}

func TestScannerError(t *testing.T) {
	scan := &Scanner{}
	scan.Prepend([]byte("\nline after include\nend\n"), "level1")
	scan.Prepend([]byte("line 1\nline 2\nlin"), "level2")
	scan.sources[1].err = errors.New("something bad happened")
	scan.Prepend([]byte("some\nincluded\nstuff\n"), "level3")

	for scan.Next() {
		buf, err := scan.Peek()
		if err != nil {
			e2, ok := err.(*ParseError)
			if !ok {
				t.Fatalf("wrong error %q", err)
			}
			if e2.stack[0].Name != "level2" || e2.stack[0].Line != 3 {
				t.Fatalf("wrong error location in %q", err)
			}
			return
		}
		scan.Skip(len(buf))
	}
	t.Fatal("error not reported")
}

func TestScannerPosition(t *testing.T) {
	parent := &Scanner{}
	parent.Prepend([]byte("a\nb\n"), "outer.tex")
	parent.Next()
	parent.Skip(2)

	scan := &Scanner{Parent: parent}
	scan.Prepend([]byte("x\ny\nz"), "inner.tex")
	scan.Next()
	scan.Skip(4)

	name, line := scan.Position()
	if name != "inner.tex" || line != 3 {
		t.Errorf("wrong position %s:%d", name, line)
	}
	if d := scan.Depth(); d != 2 {
		t.Errorf("wrong depth %d", d)
	}

	msg := scan.MakeError("oops").Error()
	if !strings.Contains(msg, "inner.tex, line 3") ||
		!strings.Contains(msg, "included from") ||
		!strings.Contains(msg, "outer.tex, line 2") {
		t.Errorf("unexpected error message %q", msg)
	}
}

func TestScannerEncoding(t *testing.T) {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "latin1.tex")
	err := os.WriteFile(fileName, []byte{'c', 'a', 'f', 0xe9}, 0644)
	if err != nil {
		t.Fatal(err)
	}

	scan := &Scanner{Encoding: charmap.ISO8859_1}
	err = scan.Include(fileName)
	if err != nil {
		t.Fatal(err)
	}
	if !scan.Next() {
		t.Fatal("no data")
	}
	buf, err := scan.Peek()
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != "café" {
		t.Errorf("expected %q, got %q", "café", string(buf))
	}
	if scan.BaseDir != dir {
		t.Errorf("wrong base directory %q", scan.BaseDir)
	}
	scan.Skip(len(buf))
	if scan.Next() {
		t.Error("unexpected data after end of file")
	}
}
