// Package sparse provides the sparse set used by the PikeVM to track which
// program instructions are already queued for a given input position.
//
// Insertion, membership and clearing are O(1); iteration follows insertion
// order, which the PikeVM relies on to keep thread priorities.
package sparse

// Set is a set of uint32 values below a fixed capacity.
// The zero value is an empty set with capacity 0.
type Set struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // values in insertion order
}

// New creates a set able to hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound of storable values.
func (s *Set) Capacity() int {
	return len(s.sparse)
}

// Resize changes the capacity and clears the set.
// Existing backing storage is reused when it is large enough.
func (s *Set) Resize(capacity int) {
	if cap(s.sparse) >= capacity {
		s.sparse = s.sparse[:capacity]
	} else {
		s.sparse = make([]uint32, capacity)
	}
	if cap(s.dense) < capacity {
		s.dense = make([]uint32, 0, capacity)
	}
	s.dense = s.dense[:0]
}

// Insert adds value and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *Set) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Len returns the number of elements.
func (s *Set) Len() int {
	return len(s.dense)
}

// At returns the i-th inserted value.
func (s *Set) At(i int) uint32 {
	return s.dense[i]
}

// Clear removes all elements without touching the sparse array.
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Values returns the elements in insertion order.
// The slice is valid until the next mutation.
func (s *Set) Values() []uint32 {
	return s.dense
}
