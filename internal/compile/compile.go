// Package compile turns a pattern and its syntax settings into an executable
// program.
//
// Parsing is delegated to regexp/syntax. This package owns everything around
// it: the free-spacing preprocessor, duplicate group names, the flag mapping
// for Ruby-style anchors, the capture-group policy and group renumbering.
package compile

import (
	"regexp/syntax"
)

// CapturePolicy selects which parenthesized groups capture.
type CapturePolicy uint8

const (
	// CaptureDefault captures plain groups unless the pattern contains a
	// named group, in which case only named groups capture.
	CaptureDefault CapturePolicy = iota

	// CaptureAll captures named and plain groups.
	CaptureAll

	// CaptureNamedOnly never captures plain groups.
	CaptureNamedOnly
)

// Settings are the syntax-affecting options of a compile call.
type Settings struct {
	FoldCase bool // case-insensitive matching
	DotNL    bool // '.' matches '\n'
	OneLine  bool // '^' and '$' anchor only at subject edges
	Extended bool // free-spacing mode: whitespace and '#' comments ignored
	Captures CapturePolicy
}

// Flags returns the regexp/syntax parse flags for s.
// Anchors are line anchors unless OneLine is set.
func (s Settings) Flags() syntax.Flags {
	flags := syntax.Perl &^ syntax.OneLine
	if s.OneLine {
		flags |= syntax.OneLine
	}
	if s.FoldCase {
		flags |= syntax.FoldCase
	}
	if s.DotNL {
		flags |= syntax.DotNL
	}
	return flags
}

// Program is a compiled pattern.
type Program struct {
	// Source is the text handed to the parser (after free-spacing removal).
	Source string

	// Regexp is the simplified syntax tree the program was compiled from.
	Regexp *syntax.Regexp

	// Prog is the executable instruction list.
	Prog *syntax.Prog

	// NumCap is the number of capture groups, not counting group 0.
	NumCap int

	// Names holds the group names indexed by group number; Names[0] and
	// unnamed groups are "". A name may repeat.
	Names []string
}

// Compile parses and compiles pattern. Errors are *UnsupportedError for
// Ruby constructs the executors cannot run, and *syntax.Error otherwise.
func Compile(pattern []byte, s Settings) (*Program, error) {
	src := pattern
	if s.Extended {
		src = StripExtended(src)
	}
	if uerr := findUnsupported(src); uerr != nil {
		return nil, uerr
	}

	parsed, aliases := aliasDuplicateNames(src)
	re, err := syntax.Parse(string(parsed), s.Flags())
	if err != nil {
		return nil, err
	}

	applyCapturePolicy(re, s.Captures)

	numCap := re.MaxCap()
	names := re.CapNames()
	for i, name := range names {
		if orig, ok := aliases[name]; ok {
			names[i] = orig
		}
	}

	re = re.Simplify()
	prog, err := syntax.Compile(re)
	if err != nil {
		return nil, err
	}

	return &Program{
		Source: string(src),
		Regexp: re,
		Prog:   prog,
		NumCap: numCap,
		Names:  names,
	}, nil
}
