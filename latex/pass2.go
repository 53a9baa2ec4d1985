// pass2.go - generate the output text
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
	"log"
	"strings"

	"github.com/seehuhn/texexpand/latex/engine"
)

// pass2 processes the input again, this time with all cross-reference
// targets known, and returns the output text together with the list of
// files read.
func (conv *Converter) pass2(parse func(e *engine.Engine) error, labels *labelStore) (string, []string, error) {
	buf := &strings.Builder{}
	w := newWriter(buf, conv.Config.LineWidth)

	e, err := conv.newEngine(conv.fileApp(), w, labels.freeze())
	if err != nil {
		return "", nil, err
	}
	err = parse(e)
	if err != nil {
		return "", nil, err
	}
	err = w.Flush()
	if err != nil {
		return "", nil, err
	}

	for _, label := range labels.Duplicates() {
		log.Printf("warning: label %q multiply defined", label)
	}
	return buf.String(), e.Files, nil
}
