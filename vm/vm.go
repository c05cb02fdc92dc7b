// Package vm executes compiled regexp/syntax programs against byte subjects.
//
// Two executors share one Program:
//   - Backtrack: a bounded backtracker that records visited (instruction,
//     position) pairs in a bit vector. Fast on short subjects, leftmost-first
//     semantics only.
//   - PikeVM: a breadth-first NFA simulation with per-thread capture slots.
//     Linear in the subject, supports leftmost-longest.
//
// Both honour the search window contract: the match start is bounded below by
// Request.Offset, while zero-width assertions look at the whole subject.
package vm

import (
	"errors"
	"regexp/syntax"
	"unicode/utf8"

	"github.com/coregx/gonigmo/internal/conv"
)

// ErrStepLimit is returned when a search exceeds Request.StepLimit.
var ErrStepLimit = errors.New("vm: step limit exceeded")

// Context suppresses subject-edge assertions, mirroring the NOTBOL-style
// search options.
type Context uint8

const (
	// NotBOL: '^' does not match at the start of the subject.
	NotBOL Context = 1 << iota
	// NotEOL: '$' does not match at the end of the subject.
	NotEOL
	// NotBOS: '\A' does not match at the start of the subject.
	NotBOS
	// NotEOS: '\z' does not match at the end of the subject.
	NotEOS
)

// Request describes one search or anchored match.
type Request struct {
	Subject []byte
	Offset  int

	// Anchored restricts the match to start exactly at Offset.
	Anchored bool

	// Longest selects leftmost-longest semantics. PikeVM only.
	Longest bool

	// NotEmpty rejects empty matches.
	NotEmpty bool

	Context Context

	// StepLimit caps the number of instruction steps; 0 means unlimited.
	StepLimit int
}

// Finder reports candidate match start positions. Implementations must never
// skip a position where a match could start.
type Finder interface {
	Find(haystack []byte, at int) int
}

// Program is an immutable executable pattern, safe for concurrent use.
type Program struct {
	prog      *syntax.Prog
	start     uint32
	numSlots  int
	startCond syntax.EmptyOp
	finder    Finder
}

// NewProgram wraps prog with numCap capture groups (group 0 excluded).
// finder may be nil.
func NewProgram(prog *syntax.Prog, numCap int, finder Finder) *Program {
	return &Program{
		prog:      prog,
		start:     conv.IntToUint32(prog.Start),
		numSlots:  2 * (numCap + 1),
		startCond: prog.StartCond(),
		finder:    finder,
	}
}

// NumSlots returns the length of the capture slot slice (two per group).
func (p *Program) NumSlots() int {
	return p.numSlots
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.prog.Inst)
}

// CanBacktrack reports whether a Backtrack over a window of n bytes fits
// in maxBits visited bits.
func (p *Program) CanBacktrack(n, maxBits int) bool {
	return len(p.prog.Inst)*(n+1) <= maxBits
}

// impossible reports whether req can be rejected without running a program.
func (p *Program) impossible(req *Request) bool {
	if p.startCond == ^syntax.EmptyOp(0) {
		return true
	}
	// A pattern that begins with \A can only match at subject start.
	return p.startCond&syntax.EmptyBeginText != 0 && req.Offset > 0
}

func (p *Program) beginsAtText() bool {
	return p.startCond&syntax.EmptyBeginText != 0
}

// Scratch is the mutable per-search state. It is not safe for concurrent
// use; pool one per in-flight search.
type Scratch struct {
	// Caps receives the capture slots of the last successful search:
	// Caps[2*i], Caps[2*i+1] are the bounds of group i, -1 when unset.
	Caps []int

	bt   backtrackState
	pike pikeState
}

// NewScratch allocates scratch space sized for p.
func (p *Program) NewScratch() *Scratch {
	return &Scratch{Caps: make([]int, p.numSlots)}
}

func (s *Scratch) resetCaps(start int) {
	for i := range s.Caps {
		s.Caps[i] = -1
	}
	s.Caps[0] = start
}

const endOfText rune = -1

// input decodes the subject and evaluates zero-width assertions.
type input struct {
	b   []byte
	ctx Context
}

// step returns the rune at pos and its width; width 0 at end of subject.
func (in *input) step(pos int) (rune, int) {
	if pos < len(in.b) {
		c := in.b[pos]
		if c < utf8.RuneSelf {
			return rune(c), 1
		}
		return utf8.DecodeRune(in.b[pos:])
	}
	return endOfText, 0
}

// context returns the assertions satisfied at pos.
func (in *input) context(pos int) syntax.EmptyOp {
	r1, r2 := endOfText, endOfText
	if pos > 0 {
		r1, _ = utf8.DecodeLastRune(in.b[:pos])
	}
	if pos < len(in.b) {
		r2, _ = utf8.DecodeRune(in.b[pos:])
	}
	op := syntax.EmptyOpContext(r1, r2)
	if pos == 0 {
		if in.ctx&NotBOL != 0 {
			op &^= syntax.EmptyBeginLine
		}
		if in.ctx&NotBOS != 0 {
			op &^= syntax.EmptyBeginText
		}
	}
	if pos == len(in.b) {
		if in.ctx&NotEOL != 0 {
			op &^= syntax.EmptyEndLine
		}
		if in.ctx&NotEOS != 0 {
			op &^= syntax.EmptyEndText
		}
	}
	return op
}

func matchRune(inst *syntax.Inst, r rune) bool {
	switch inst.Op {
	case syntax.InstRune1:
		return r == inst.Rune[0]
	case syntax.InstRuneAny:
		return true
	case syntax.InstRuneAnyNotNL:
		return r != '\n'
	default:
		return inst.MatchRune(r)
	}
}

func isRuneOp(op syntax.InstOp) bool {
	switch op {
	case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
		return true
	}
	return false
}
