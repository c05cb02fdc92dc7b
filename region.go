package gonigmo

import "slices"

// Pair is the byte range of one capture group. Both bounds are -1 when the
// group did not participate in the match.
type Pair struct {
	Begin int
	End   int
}

// Unset reports whether the group did not participate.
func (p Pair) Unset() bool {
	return p.Begin < 0
}

// Region receives the capture groups of one search: group 0 is the whole
// match, groups 1..N follow the order of their opening parentheses.
//
// A Region is reusable; each search overwrites it. It is not safe for
// concurrent use: give each in-flight search its own Region.
type Region struct {
	pairs    []Pair
	released bool
}

// NewRegion returns an empty region.
func NewRegion() *Region {
	return &Region{}
}

// Reset clears the pairs and keeps the backing storage.
func (r *Region) Reset() {
	r.checkLive()
	r.pairs = r.pairs[:0]
}

// Len returns the number of valid pairs.
func (r *Region) Len() int {
	r.checkLive()
	return len(r.pairs)
}

// Cap returns the capacity of the backing storage.
func (r *Region) Cap() int {
	r.checkLive()
	return cap(r.pairs)
}

// At returns pair i. It panics with *IndexError unless 0 <= i < Len().
func (r *Region) At(i int) Pair {
	r.checkLive()
	if i < 0 || i >= len(r.pairs) {
		panic(&IndexError{Index: i, Len: len(r.pairs)})
	}
	return r.pairs[i]
}

// Pairs returns a copy of the valid pairs.
func (r *Region) Pairs() []Pair {
	r.checkLive()
	return slices.Clone(r.pairs)
}

// AppendOffsets appends begin, end for every pair to dst.
func (r *Region) AppendOffsets(dst []int) []int {
	r.checkLive()
	for _, p := range r.pairs {
		dst = append(dst, p.Begin, p.End)
	}
	return dst
}

// Group returns the bytes of group i in subject, or nil when the group is
// unset.
func (r *Region) Group(subject []byte, i int) []byte {
	p := r.At(i)
	if p.Unset() {
		return nil
	}
	return subject[p.Begin:p.End]
}

// Release drops the backing storage. Any later use panics with ErrReleased;
// releasing twice is a no-op.
func (r *Region) Release() {
	r.pairs = nil
	r.released = true
}

// set overwrites the region with capture slots.
func (r *Region) set(caps []int) {
	n := len(caps) / 2
	r.pairs = slices.Grow(r.pairs[:0], n)[:n]
	for i := range r.pairs {
		r.pairs[i] = Pair{Begin: caps[2*i], End: caps[2*i+1]}
	}
}

// copyFrom overwrites r with src's pairs.
func (r *Region) copyFrom(src *Region) {
	r.pairs = append(r.pairs[:0], src.pairs...)
}

func (r *Region) checkLive() {
	if r.released {
		panic(ErrReleased)
	}
}
