package gonigmo

import "unicode/utf8"

// Scan calls fn for each successive match in subject, from left to right.
// After an empty match the next search starts one character further on.
// region receives the groups of each match before fn is called; it may be
// nil. Scanning stops when fn returns false.
//
// Scan returns the number of matches passed to fn, and the first search
// error if there was one.
func (re *Regex) Scan(subject []byte, opts Option, region *Region, fn func(i int, res Result, region *Region) bool) (int, error) {
	return re.ScanFrom(subject, 0, opts, region, fn)
}

// ScanFrom is Scan for matches that start at or after offset. As with
// Search, assertions still see the bytes before offset, and an offset
// outside [0, len(subject)] is a CodeInvalidArgument error.
func (re *Regex) ScanFrom(subject []byte, offset int, opts Option, region *Region, fn func(i int, res Result, region *Region) bool) (int, error) {
	if region == nil {
		region = NewRegion()
		defer region.Release()
	}

	n := 0
	for pos := offset; ; {
		res := re.Search(subject, pos, opts, region)
		switch res.Kind {
		case KindError:
			return n, res.Err
		case KindMismatch:
			return n, nil
		}

		n++
		if !fn(n-1, res, region) {
			return n, nil
		}

		if res.End > res.Begin {
			pos = res.End
			continue
		}
		if res.End >= len(subject) {
			return n, nil
		}
		_, w := utf8.DecodeRune(subject[res.End:])
		pos = res.End + w
	}
}
