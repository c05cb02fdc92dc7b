package vm

import (
	"regexp/syntax"

	"github.com/coregx/gonigmo/internal/sparse"
)

// thread is a PikeVM thread parked on a consuming or match instruction.
type thread struct {
	inst *syntax.Inst
	cap  []int
}

// queue holds the threads of one generation. threads[i] belongs to the
// instruction set.At(i); entries for non-parking instructions stay nil.
type queue struct {
	set     *sparse.Set
	threads []*thread
}

func (q *queue) reset(numInst int) {
	if q.set == nil {
		q.set = sparse.New(numInst)
	} else if q.set.Capacity() != numInst {
		q.set.Resize(numInst)
	}
	q.set.Clear()
	q.threads = q.threads[:0]
}

type pikeState struct {
	q0, q1   queue
	free     []*thread
	seed     []int
	matched  bool
	steps    int
	limit    int
	exceeded bool
}

func (m *pikeState) alloc(inst *syntax.Inst, slots int) *thread {
	var t *thread
	if n := len(m.free); n > 0 {
		t = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		t = &thread{cap: make([]int, slots)}
	}
	if len(t.cap) != slots {
		t.cap = make([]int, slots)
	}
	t.inst = inst
	return t
}

func (m *pikeState) release(q *queue) {
	for _, t := range q.threads {
		if t != nil {
			m.free = append(m.free, t)
		}
	}
	q.set.Clear()
	q.threads = q.threads[:0]
}

// PikeVM runs the breadth-first simulation. On success s.Caps holds the match.
func (p *Program) PikeVM(s *Scratch, req *Request) (bool, error) {
	if p.impossible(req) {
		return false, nil
	}
	m := &s.pike
	m.q0.reset(len(p.prog.Inst))
	m.q1.reset(len(p.prog.Inst))
	m.matched = false
	m.steps, m.limit, m.exceeded = 0, req.StepLimit, false
	if len(m.seed) != p.numSlots {
		m.seed = make([]int, p.numSlots)
	}
	for i := range m.seed {
		m.seed[i] = -1
	}
	for i := range s.Caps {
		s.Caps[i] = -1
	}

	in := input{b: req.Subject, ctx: req.Context}
	anchored := req.Anchored || p.beginsAtText()
	runq, nextq := &m.q0, &m.q1

	pos := req.Offset
	r, w := in.step(pos)
	for {
		if runq.set.Len() == 0 {
			if m.matched {
				break
			}
			if anchored && pos != req.Offset {
				break
			}
			if !anchored && p.finder != nil {
				c := p.finder.Find(req.Subject, pos)
				if c < 0 {
					break
				}
				if c != pos {
					pos = c
					r, w = in.step(pos)
				}
			}
		}
		if !m.matched && (!anchored || pos == req.Offset) {
			m.seed[0] = pos
			if t := p.add(m, runq, p.start, pos, m.seed, in.context(pos), nil); t != nil {
				m.free = append(m.free, t)
			}
		}

		next := pos + w
		var nextCtx syntax.EmptyOp
		if w > 0 {
			nextCtx = in.context(next)
		}
		p.step(m, runq, nextq, pos, next, r, nextCtx, s.Caps, req)
		if m.exceeded {
			m.release(runq)
			m.release(nextq)
			return false, ErrStepLimit
		}
		if w == 0 {
			break
		}
		pos = next
		r, w = in.step(pos)
		runq, nextq = nextq, runq
	}
	m.release(nextq)
	m.release(runq)
	return m.matched, nil
}

// step advances every thread in runq over rune c at pos, filling nextq.
func (p *Program) step(m *pikeState, runq, nextq *queue, pos, next int, c rune, nextCtx syntax.EmptyOp, matchcap []int, req *Request) {
	for j := 0; j < len(runq.threads); j++ {
		t := runq.threads[j]
		if t == nil {
			continue
		}
		if req.Longest && m.matched && matchcap[0] < t.cap[0] {
			m.free = append(m.free, t)
			continue
		}

		i := t.inst
		add := false
		switch i.Op {
		case syntax.InstMatch:
			if req.NotEmpty && t.cap[0] == pos {
				break
			}
			if !req.Longest || !m.matched || matchcap[1] < pos {
				t.cap[1] = pos
				copy(matchcap, t.cap)
			}
			m.matched = true
			if !req.Longest {
				// Leftmost-first: lower-priority threads are cut off.
				for _, d := range runq.threads[j+1:] {
					if d != nil {
						m.free = append(m.free, d)
					}
				}
				runq.threads = runq.threads[:j+1]
			}
		default:
			add = isRuneOp(i.Op) && c != endOfText && matchRune(i, c)
		}
		if add {
			t = p.add(m, nextq, i.Out, next, t.cap, nextCtx, t)
		}
		if t != nil {
			m.free = append(m.free, t)
		}
	}
	runq.set.Clear()
	runq.threads = runq.threads[:0]
}

// add follows empty transitions from pc and parks threads on consuming and
// match instructions. t is a spare thread that may be reused; the returned
// thread, if any, is still spare.
func (p *Program) add(m *pikeState, q *queue, pc uint32, pos int, cap []int, ctx syntax.EmptyOp, t *thread) *thread {
	if pc == 0 || m.exceeded {
		return t
	}
	if !q.set.Insert(pc) {
		return t
	}
	idx := len(q.threads)
	q.threads = append(q.threads, nil)

	if m.limit > 0 {
		m.steps++
		if m.steps > m.limit {
			m.exceeded = true
			return t
		}
	}

	i := &p.prog.Inst[pc]
	switch i.Op {
	case syntax.InstFail:
	case syntax.InstAlt, syntax.InstAltMatch:
		t = p.add(m, q, i.Out, pos, cap, ctx, t)
		t = p.add(m, q, i.Arg, pos, cap, ctx, t)
	case syntax.InstEmptyWidth:
		if syntax.EmptyOp(i.Arg)&^ctx == 0 {
			t = p.add(m, q, i.Out, pos, cap, ctx, t)
		}
	case syntax.InstNop:
		t = p.add(m, q, i.Out, pos, cap, ctx, t)
	case syntax.InstCapture:
		if slot := int(i.Arg); slot < len(cap) {
			// cap is restored below, so nothing parked in between may
			// alias it.
			old := cap[slot]
			cap[slot] = pos
			p.add(m, q, i.Out, pos, cap, ctx, nil)
			cap[slot] = old
		} else {
			t = p.add(m, q, i.Out, pos, cap, ctx, t)
		}
	case syntax.InstMatch, syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
		if t == nil {
			t = m.alloc(i, len(cap))
		} else {
			t.inst = i
		}
		if &t.cap[0] != &cap[0] {
			copy(t.cap, cap)
		}
		q.threads[idx] = t
		t = nil
	}
	return t
}
