package vm

import "regexp/syntax"

// job is a pending backtracking branch. Restore jobs put capture slot pc
// back to pos when popped.
type job struct {
	pc      uint32
	pos     int
	restore bool
}

type backtrackState struct {
	// visited is a bit vector over (pc, pos-offset) pairs.
	visited []uint32
	stride  int
	offset  int
	jobs    []job
	steps   int
	limit   int
}

func (b *backtrackState) reset(numInst, offset, window, limit int) {
	b.stride = window + 1
	b.offset = offset
	b.steps = 0
	b.limit = limit
	b.jobs = b.jobs[:0]

	words := (numInst*b.stride + 31) / 32
	if cap(b.visited) >= words {
		b.visited = b.visited[:words]
		clear(b.visited)
	} else {
		b.visited = make([]uint32, words)
	}
}

// shouldVisit marks (pc, pos) and reports whether it was unvisited.
func (b *backtrackState) shouldVisit(pc uint32, pos int) bool {
	n := int(pc)*b.stride + (pos - b.offset)
	bit := uint32(1) << (n & 31)
	if b.visited[n/32]&bit != 0 {
		return false
	}
	b.visited[n/32] |= bit
	return true
}

// Backtrack runs the bounded backtracker. On success s.Caps holds the match.
// The caller must check CanBacktrack first.
func (p *Program) Backtrack(s *Scratch, req *Request) (bool, error) {
	if p.impossible(req) {
		return false, nil
	}
	in := input{b: req.Subject, ctx: req.Context}
	bt := &s.bt
	bt.reset(len(p.prog.Inst), req.Offset, len(req.Subject)-req.Offset, req.StepLimit)

	anchored := req.Anchored || p.beginsAtText()
	pos := req.Offset
	for {
		if !anchored && p.finder != nil {
			c := p.finder.Find(req.Subject, pos)
			if c < 0 {
				return false, nil
			}
			pos = c
		}

		s.resetCaps(pos)
		ok, err := p.tryBacktrack(bt, &in, s.Caps, pos, req.NotEmpty)
		if ok || err != nil {
			return ok, err
		}
		if anchored {
			return false, nil
		}
		_, w := in.step(pos)
		if w == 0 {
			return false, nil
		}
		pos += w
	}
}

// tryBacktrack explores the program depth first from start. Visited state
// is shared across start positions: a (pc, pos) pair that failed once fails
// for every later start too.
func (p *Program) tryBacktrack(bt *backtrackState, in *input, caps []int, start int, notEmpty bool) (bool, error) {
	bt.jobs = append(bt.jobs, job{pc: p.start, pos: start})
	for len(bt.jobs) > 0 {
		j := bt.jobs[len(bt.jobs)-1]
		bt.jobs = bt.jobs[:len(bt.jobs)-1]
		if j.restore {
			caps[j.pc] = j.pos
			continue
		}

		pc, pos := j.pc, j.pos
	walk:
		for {
			if !bt.shouldVisit(pc, pos) {
				break
			}
			if bt.limit > 0 {
				bt.steps++
				if bt.steps > bt.limit {
					bt.jobs = bt.jobs[:0]
					return false, ErrStepLimit
				}
			}

			inst := &p.prog.Inst[pc]
			switch inst.Op {
			case syntax.InstFail:
				break walk
			case syntax.InstAlt, syntax.InstAltMatch:
				bt.jobs = append(bt.jobs, job{pc: inst.Arg, pos: pos})
				pc = inst.Out
			case syntax.InstRune, syntax.InstRune1, syntax.InstRuneAny, syntax.InstRuneAnyNotNL:
				r, w := in.step(pos)
				if w == 0 || !matchRune(inst, r) {
					break walk
				}
				pc, pos = inst.Out, pos+w
			case syntax.InstCapture:
				if slot := int(inst.Arg); slot < len(caps) {
					bt.jobs = append(bt.jobs, job{pc: inst.Arg, pos: caps[slot], restore: true})
					caps[slot] = pos
				}
				pc = inst.Out
			case syntax.InstEmptyWidth:
				if syntax.EmptyOp(inst.Arg)&^in.context(pos) != 0 {
					break walk
				}
				pc = inst.Out
			case syntax.InstNop:
				pc = inst.Out
			case syntax.InstMatch:
				if notEmpty && pos == start {
					break walk
				}
				caps[1] = pos
				bt.jobs = bt.jobs[:0]
				return true, nil
			default:
				break walk
			}
		}
	}
	return false, nil
}
