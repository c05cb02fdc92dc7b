package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// AhoCorasick finds candidate starts for an alternation of literals.
//
// The automaton reports the first literal it completes, which need not be
// the leftmost one: in "abcd" the literals abcd|bc complete "bc" first.
// Find therefore backs off to the earliest start a longer literal ending at
// or after that hit could have.
type AhoCorasick struct {
	auto   *ahocorasick.Automaton
	maxLen int
}

// NewAhoCorasick builds the automaton over lits.
func NewAhoCorasick(lits [][]byte) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	maxLen := 0
	for _, lit := range lits {
		builder.AddPattern(lit)
		maxLen = max(maxLen, len(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto, maxLen: maxLen}, nil
}

// Find implements Prefilter.
func (a *AhoCorasick) Find(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	m := a.auto.Find(haystack, at)
	if m == nil {
		return -1
	}
	// Any literal occurrence starting before m.End-maxLen would have ended
	// before m did.
	return min(m.Start, max(at, m.End-a.maxLen))
}

// Kind implements Prefilter.
func (a *AhoCorasick) Kind() Kind {
	return KindAhoCorasick
}
