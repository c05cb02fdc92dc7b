package prefilter

import "bytes"

// Memmem finds occurrences of a required literal prefix.
type Memmem struct {
	needle []byte
}

// NewMemmem creates a prefilter for a non-empty needle.
func NewMemmem(needle []byte) *Memmem {
	return &Memmem{needle: needle}
}

// Find implements Prefilter.
func (m *Memmem) Find(haystack []byte, at int) int {
	if at >= len(haystack) {
		return -1
	}
	var i int
	if len(m.needle) == 1 {
		i = bytes.IndexByte(haystack[at:], m.needle[0])
	} else {
		i = bytes.Index(haystack[at:], m.needle)
	}
	if i < 0 {
		return -1
	}
	return at + i
}

// Kind implements Prefilter.
func (m *Memmem) Kind() Kind {
	return KindMemmem
}
