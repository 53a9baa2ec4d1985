// app.go -
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
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// App is the interface between the engine and its host application.
type App interface {
	// Kpsewhich locates a TeX input file.  The empty string is
	// returned if the file cannot be found.
	Kpsewhich(name string) (string, error)

	// FileExists reports whether the file exists.
	FileExists(path string) bool

	// Warning reports a non-fatal problem to the user.
	Warning(msg string)
}

// NotFoundAction selects the reaction to a missing file or an
// undefined control sequence.
type NotFoundAction int

// The possible reactions.
const (
	NotFoundError NotFoundAction = iota
	NotFoundWarn
	NotFoundIgnore
)

// FileApp is the default App.  Files are searched for in the
// directories of SearchPath and, if UseKpsewhich is set, using the
// "kpsewhich" program of the local TeX installation.
type FileApp struct {
	SearchPath   []string
	UseKpsewhich bool
}

// Kpsewhich implements the App interface.
func (app *FileApp) Kpsewhich(name string) (string, error) {
	for _, dir := range app.SearchPath {
		for _, candidate := range fileCandidates(name) {
			path := filepath.Join(dir, candidate)
			if app.FileExists(path) {
				return path, nil
			}
		}
	}
	if !app.UseKpsewhich {
		return "", nil
	}
	prog, err := exec.LookPath("kpsewhich")
	if err != nil {
		return "", nil
	}
	out, err := exec.Command(prog, name).Output()
	if _, ok := err.(*exec.ExitError); ok {
		return "", nil
	} else if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// FileExists implements the App interface.
func (app *FileApp) FileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Warning implements the App interface.
func (app *FileApp) Warning(msg string) {
	log.Println("warning:", msg)
}

// fileCandidates lists the file names tried for \input{name}.
func fileCandidates(name string) []string {
	if filepath.Ext(name) != "" {
		return []string{name, name + ".tex"}
	}
	return []string{name + ".tex", name}
}
