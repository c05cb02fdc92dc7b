// Package gonigmo provides an Onigmo-style regular expression API over byte
// subjects: compile a pattern once, then search or anchored-match it at any
// offset and read the capture groups from a reusable Region.
//
// The contract follows Onigmo's onig_new / onig_search / onig_match:
//   - Compile takes a length-delimited pattern and Option bits with the
//     Onigmo values, and fails with an *Error carrying a Code and a message
//     bounded to MaxErrorMessageLen-1 bytes.
//   - Search scans from an offset for the leftmost match. The offset bounds
//     the match start only; '^', '\b' and friends see the whole subject.
//   - Match tries exactly one start position.
//   - Results are tagged: matched, mismatch (not an error) or error.
//
// Syntax is Ruby-flavoured on top of Go's RE2 parser: '^' and '$' are line
// anchors, OptionMultiline lets '.' match a newline, OptionSingleline makes
// the anchors match only at subject edges, and named groups hide plain
// groups unless OptionCaptureGroup is given. Group names may repeat.
//
// Basic usage:
//
//	re, err := gonigmo.Compile([]byte(`(\d+)-(\d+)`), gonigmo.OptionNone)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer re.Close()
//
//	region := gonigmo.NewRegion()
//	defer region.Release()
//
//	res := re.Search([]byte("call 12-34"), 0, gonigmo.OptionNone, region)
//	if res.Matched() {
//	    fmt.Println(region.At(1), region.At(2)) // {5 7} {8 10}
//	}
//
// Execution uses a bounded backtracker for short subjects and a PikeVM
// otherwise, so search time is linear in the subject. Literal and
// first-byte prefilters skip ahead to candidate positions.
package gonigmo
