// errors.go - error catalog of the expansion engine
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
	"fmt"
	"strings"
)

// ErrorTag identifies one entry of the fixed error catalog.  Tags can
// be used as targets for errors.Is().
type ErrorTag int

// The error catalog.
const (
	ErrUndefinedCs ErrorTag = iota + 1
	ErrDefined
	ErrUndefined
	ErrExtraEnd
	ErrExtraEndGroup
	ErrMissingEndGroup
	ErrMissingArgument
	ErrMissingClosing
	ErrParagraphEnded
	ErrIllegalParam
	ErrUseDoesntMatch
	ErrCsExpected
	ErrNumberExpected
	ErrDimenExpected
	ErrRegisterUndef
	ErrRegisterDefined
	ErrUndefinedCounter
	ErrCounterDefined
	ErrUndefinedEnv
	ErrMultipleDocuments
	ErrFileNotFound
	ErrIncludeDepth
	ErrExpansionDepth
	ErrUnsupportedArgType
	ErrExtraConditional
	ErrMissingEndCsname
	ErrDivideByZero
	ErrBadSignature
	ErrMissingEndEnv
	ErrNotAllowed
	ErrMisplaced
)

var errorFormats = map[ErrorTag]string{
	ErrUndefinedCs:        `Undefined control sequence \%s`,
	ErrDefined:            `Command \%s already defined`,
	ErrUndefined:          `Command \%s undefined`,
	ErrExtraEnd:           `Extra \end{%s}`,
	ErrExtraEndGroup:      "Too many }'s",
	ErrMissingEndGroup:    "Missing } inserted",
	ErrMissingArgument:    `Missing argument for \%s`,
	ErrMissingClosing:     "Missing %s inserted",
	ErrParagraphEnded:     `Paragraph ended before \%s was complete`,
	ErrIllegalParam:       `Illegal parameter number in definition of \%s`,
	ErrUseDoesntMatch:     `Use of \%s doesn't match its definition`,
	ErrCsExpected:         "Missing control sequence inserted",
	ErrNumberExpected:     "Missing number, treated as zero",
	ErrDimenExpected:      "Illegal unit of measure (pt inserted)",
	ErrRegisterUndef:      `Undefined register \%s`,
	ErrRegisterDefined:    `Register \%s already defined`,
	ErrUndefinedCounter:   "No counter '%s' defined",
	ErrCounterDefined:     "Counter '%s' already defined",
	ErrUndefinedEnv:       "Environment %s undefined",
	ErrMultipleDocuments:  "Can be used only once: \\begin{document}",
	ErrFileNotFound:       "File '%s' not found",
	ErrIncludeDepth:       "Input nested too deeply at '%s'",
	ErrExpansionDepth:     "Expansion depth exceeded (infinite recursion in \\%s?)",
	ErrUnsupportedArgType: "Unsupported argument type '%s'",
	ErrExtraConditional:   `Extra \%s`,
	ErrMissingEndCsname:   `Missing \endcsname inserted`,
	ErrDivideByZero:       "Arithmetic overflow (division by zero)",
	ErrBadSignature:       "Invalid argument specification '%s'",
	ErrMissingEndEnv:      `\begin{%s} ended by end of input`,
	ErrNotAllowed:         `\%s not allowed here`,
	ErrMisplaced:          "Misplaced %s",
}

// Error implements error for the engine's catalog errors.
type Error struct {
	Tag    ErrorTag
	Params []string

	// Pos describes the input position, if known.
	Pos string

	// Hint is an optional suggestion appended to the message.
	Hint string
}

func newError(tag ErrorTag, params ...string) *Error {
	return &Error{
		Tag:    tag,
		Params: params,
	}
}

// With returns an error for the tag, with the given message
// parameters.  An empty first parameter is replaced by the name of the
// command being executed when the error reaches the dispatch loop.
func (tag ErrorTag) With(params ...string) *Error {
	return newError(tag, params...)
}

func (err *Error) Error() string {
	msg := err.Tag.format(err.Params)
	if err.Hint != "" {
		msg += " (" + err.Hint + ")"
	}
	if err.Pos != "" {
		msg = err.Pos + ": " + msg
	}
	return msg
}

// Is reports whether target is the tag of err.
func (err *Error) Is(target error) bool {
	tag, ok := target.(ErrorTag)
	return ok && tag == err.Tag
}

func (tag ErrorTag) Error() string {
	return tag.format(nil)
}

func (tag ErrorTag) format(params []string) string {
	format, ok := errorFormats[tag]
	if !ok {
		return fmt.Sprintf("engine error %d", int(tag))
	}
	n := strings.Count(format, "%s")
	args := make([]interface{}, n)
	for i := range args {
		if i < len(params) {
			args[i] = params[i]
		} else {
			args[i] = "?"
		}
	}
	return fmt.Sprintf(format, args...)
}
