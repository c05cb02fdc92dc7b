package prefilter

import (
	"bytes"
	"regexp/syntax"
	"unicode"
	"unicode/utf8"
)

// ByteTable is a set of bytes.
type ByteTable [256]bool

// Len returns the number of bytes in the set.
func (t *ByteTable) Len() int {
	n := 0
	for _, ok := range t {
		if ok {
			n++
		}
	}
	return n
}

// Bytes returns the members in ascending order.
func (t *ByteTable) Bytes() []byte {
	var out []byte
	for b, ok := range t {
		if ok {
			out = append(out, byte(b))
		}
	}
	return out
}

// ByteSet finds the next byte that can begin a match.
type ByteSet struct {
	table ByteTable
	bytes []byte
}

// NewByteSet creates a prefilter over set.
func NewByteSet(set *ByteTable) *ByteSet {
	return &ByteSet{table: *set, bytes: set.Bytes()}
}

// fanout is the largest set searched with one IndexByte per member.
const fanout = 3

// Find implements Prefilter.
func (s *ByteSet) Find(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	if len(s.bytes) <= fanout && vectorIndexByte.Load() {
		return s.findFanout(haystack, at)
	}
	for i := at; i < len(haystack); i++ {
		if s.table[haystack[i]] {
			return i
		}
	}
	return -1
}

// findFanout runs a vectorised IndexByte per member, narrowing the window
// to the best hit so far.
func (s *ByteSet) findFanout(haystack []byte, at int) int {
	window := haystack[at:]
	best := -1
	for _, b := range s.bytes {
		if i := bytes.IndexByte(window, b); i >= 0 {
			best = i
			window = window[:i]
		}
	}
	if best < 0 {
		return -1
	}
	return at + best
}

// Kind implements Prefilter.
func (s *ByteSet) Kind() Kind {
	return KindByteSet
}

// Bytes returns the members of the set.
func (s *ByteSet) Bytes() []byte {
	return s.bytes
}

// FirstBytes computes the bytes that can start a match of prog. It reports
// false when the set is unbounded: the program can match the empty string,
// starts with a wildcard, or can start with U+FFFD (which also matches
// invalid input bytes).
func FirstBytes(prog *syntax.Prog) (*ByteTable, bool) {
	var set ByteTable
	seen := make([]bool, len(prog.Inst))
	stack := []uint32{uint32(prog.Start)}
	for len(stack) > 0 {
		pc := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[pc] {
			continue
		}
		seen[pc] = true

		inst := &prog.Inst[pc]
		switch inst.Op {
		case syntax.InstFail:
		case syntax.InstAlt, syntax.InstAltMatch:
			stack = append(stack, inst.Out, inst.Arg)
		case syntax.InstCapture, syntax.InstNop, syntax.InstEmptyWidth:
			stack = append(stack, inst.Out)
		case syntax.InstRune1:
			if !set.addRune(inst.Rune[0], false) {
				return nil, false
			}
		case syntax.InstRune:
			if len(inst.Rune) == 1 {
				fold := syntax.Flags(inst.Arg)&syntax.FoldCase != 0
				if !set.addRune(inst.Rune[0], fold) {
					return nil, false
				}
				continue
			}
			for k := 0; k+1 < len(inst.Rune); k += 2 {
				if !set.addRange(inst.Rune[k], inst.Rune[k+1]) {
					return nil, false
				}
			}
		default:
			// InstMatch, InstRuneAny, InstRuneAnyNotNL
			return nil, false
		}
	}
	return &set, true
}

func (t *ByteTable) addRune(r rune, fold bool) bool {
	if r == utf8.RuneError {
		return false
	}
	t[leadByte(r)] = true
	if fold {
		for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
			if f == utf8.RuneError {
				return false
			}
			t[leadByte(f)] = true
		}
	}
	return true
}

func (t *ByteTable) addRange(lo, hi rune) bool {
	if lo <= utf8.RuneError && utf8.RuneError <= hi {
		return false
	}
	for r := lo; r <= hi && r < utf8.RuneSelf; r++ {
		t[r] = true
	}
	if hi < utf8.RuneSelf {
		return true
	}
	lo = max(lo, utf8.RuneSelf)
	if lo >= 0xD800 && lo <= 0xDFFF {
		// Surrogates never decode; the next valid rune is U+E000.
		lo = 0xE000
	}
	if lo > hi {
		return true
	}
	for b := int(leadByte(lo)); b <= int(leadByte(hi)); b++ {
		t[b] = true
	}
	return true
}

func leadByte(r rune) byte {
	if r < utf8.RuneSelf {
		return byte(r)
	}
	var buf [utf8.UTFMax]byte
	utf8.EncodeRune(buf[:], r)
	return buf[0]
}
