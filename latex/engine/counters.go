// counters.go -
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
	"sort"
	"strconv"
	"strings"
)

// CounterStyle selects how a counter value is printed.
type CounterStyle int

// The counter styles.
const (
	StyleArabic CounterStyle = iota
	StyleRoman
	StyleUpperRoman
	StyleAlph
	StyleUpperAlph
	StyleFnSymbol
)

type counterInfo struct {
	Value  int
	Parent string
	Style  CounterStyle
	resets []string
}

// Counters holds the LaTeX counters.  Counter values are global and
// are not affected by groups.
type Counters struct {
	info map[string]*counterInfo
}

// NewCounters returns an empty set of counters.
func NewCounters() *Counters {
	return &Counters{info: map[string]*counterInfo{}}
}

// New creates a counter with value zero.  If parent is not empty, the
// new counter is reset whenever parent is stepped and its printed
// form is prefixed by the parent's.
func (c *Counters) New(name, parent string) error {
	if _, ok := c.info[name]; ok {
		return newError(ErrCounterDefined, name)
	}
	c.info[name] = &counterInfo{}
	if parent != "" {
		return c.AddToReset(name, parent)
	}
	return nil
}

func (c *Counters) get(name string) (*counterInfo, error) {
	ci, ok := c.info[name]
	if !ok {
		return nil, newError(ErrUndefinedCounter, name)
	}
	return ci, nil
}

// Has reports whether the counter exists.
func (c *Counters) Has(name string) bool {
	_, ok := c.info[name]
	return ok
}

// Names returns the sorted names of all counters.
func (c *Counters) Names() []string {
	res := make([]string, 0, len(c.info))
	for name := range c.info {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// AddToReset makes name a dependent of parent: stepping parent resets
// name to zero.
func (c *Counters) AddToReset(name, parent string) error {
	ci, err := c.get(name)
	if err != nil {
		return err
	}
	pi, err := c.get(parent)
	if err != nil {
		return err
	}
	for _, dep := range pi.resets {
		if dep == name {
			return nil
		}
	}
	pi.resets = append(pi.resets, name)
	if ci.Parent == "" {
		ci.Parent = parent
	}
	return nil
}

// Value returns the current value of a counter.
func (c *Counters) Value(name string) (int, error) {
	ci, err := c.get(name)
	if err != nil {
		return 0, err
	}
	return ci.Value, nil
}

// Set assigns a value to a counter.
func (c *Counters) Set(name string, value int) error {
	ci, err := c.get(name)
	if err != nil {
		return err
	}
	ci.Value = value
	return nil
}

// Add adds delta to a counter.
func (c *Counters) Add(name string, delta int) error {
	ci, err := c.get(name)
	if err != nil {
		return err
	}
	ci.Value += delta
	return nil
}

// Step increments a counter and resets all counters which depend on
// it, directly or through other counters.
func (c *Counters) Step(name string) error {
	ci, err := c.get(name)
	if err != nil {
		return err
	}
	ci.Value++
	c.reset(ci, map[string]bool{name: true})
	return nil
}

func (c *Counters) reset(ci *counterInfo, seen map[string]bool) {
	for _, dep := range ci.resets {
		if seen[dep] {
			continue
		}
		seen[dep] = true
		di := c.info[dep]
		di.Value = 0
		c.reset(di, seen)
	}
}

// SetStyle changes how the counter is printed by Format.
func (c *Counters) SetStyle(name string, style CounterStyle) error {
	ci, err := c.get(name)
	if err != nil {
		return err
	}
	ci.Style = style
	return nil
}

// Format returns the printed form of a counter, e.g. "2.1" for a
// subsection, as used by \the<counter>.
func (c *Counters) Format(name string) (string, error) {
	var parts []string
	seen := map[string]bool{}
	for name != "" && !seen[name] {
		seen[name] = true
		ci, err := c.get(name)
		if err != nil {
			return "", err
		}
		parts = append(parts, FormatNumber(ci.Value, ci.Style))
		name = ci.Parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "."), nil
}

// FormatNumber converts n to a string in the given style.
func FormatNumber(n int, style CounterStyle) string {
	switch style {
	case StyleRoman:
		return toRoman(n)
	case StyleUpperRoman:
		return strings.ToUpper(toRoman(n))
	case StyleAlph:
		return toAlph(n, 'a')
	case StyleUpperAlph:
		return toAlph(n, 'A')
	case StyleFnSymbol:
		symbols := []string{"*", "†", "‡", "§", "¶", "‖", "**", "††", "‡‡"}
		if n >= 1 && n <= len(symbols) {
			return symbols[n-1]
		}
		return strconv.Itoa(n)
	default:
		return strconv.Itoa(n)
	}
}

func toRoman(n int) string {
	if n <= 0 {
		return ""
	}
	values := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	digits := []string{"m", "cm", "d", "cd", "c", "xc", "l", "xl", "x", "ix", "v", "iv", "i"}
	var res strings.Builder
	for i, v := range values {
		for n >= v {
			res.WriteString(digits[i])
			n -= v
		}
	}
	return res.String()
}

func toAlph(n int, base rune) string {
	if n < 1 || n > 26 {
		return strconv.Itoa(n)
	}
	return string(base + rune(n-1))
}
