// Package prefilter finds candidate match start positions so the executors
// can skip stretches of the subject where no match can begin.
//
// A prefilter never decides a match: every candidate is verified by the
// program. It only has to be sound, i.e. never skip a real match start.
//
// Strategy, in order of preference:
//   - Alternation of plain literals (cat|dog|bird) → AhoCorasick
//   - Required literal prefix → Memmem
//   - Small set of possible first bytes → ByteSet
//
// Patterns that can match the empty string get no prefilter.
package prefilter

import (
	"regexp/syntax"
	"slices"
	"strings"
	"unicode/utf8"
)

// Kind identifies a prefilter strategy.
type Kind uint8

const (
	KindNone Kind = iota
	KindMemmem
	KindByteSet
	KindAhoCorasick
)

// String returns the strategy name.
func (k Kind) String() string {
	switch k {
	case KindMemmem:
		return "memmem"
	case KindByteSet:
		return "byteset"
	case KindAhoCorasick:
		return "aho-corasick"
	default:
		return "none"
	}
}

// Prefilter reports candidate match starts.
type Prefilter interface {
	// Find returns the first candidate position >= at, or -1.
	Find(haystack []byte, at int) int

	// Kind returns the strategy implemented.
	Kind() Kind
}

// maxByteSet is the largest first-byte set still worth scanning for.
const maxByteSet = 64

// Build selects a prefilter for the compiled pattern, or returns nil when
// none applies. re must be the tree prog was compiled from.
func Build(re *syntax.Regexp, prog *syntax.Prog) Prefilter {
	if lits := alternationLiterals(re); len(lits) > 1 {
		if pf, err := NewAhoCorasick(lits); err == nil {
			return pf
		}
	}

	if prefix, _ := prog.Prefix(); prefix != "" && !strings.ContainsRune(prefix, utf8.RuneError) {
		return NewMemmem([]byte(prefix))
	}

	if set, ok := FirstBytes(prog); ok && set.Len() > 0 && set.Len() <= maxByteSet {
		return NewByteSet(set)
	}
	return nil
}

// alternationLiterals returns the branches of re when it is, up to
// enclosing groups, an alternation of case-sensitive non-empty literals.
func alternationLiterals(re *syntax.Regexp) [][]byte {
	for re.Op == syntax.OpCapture {
		re = re.Sub[0]
	}
	if re.Op != syntax.OpAlternate {
		return nil
	}
	lits := make([][]byte, 0, len(re.Sub))
	for _, sub := range re.Sub {
		if sub.Op != syntax.OpLiteral || sub.Flags&syntax.FoldCase != 0 || len(sub.Rune) == 0 {
			return nil
		}
		// U+FFFD also matches invalid input bytes.
		if slices.Contains(sub.Rune, utf8.RuneError) {
			return nil
		}
		lits = append(lits, []byte(string(sub.Rune)))
	}
	return lits
}
