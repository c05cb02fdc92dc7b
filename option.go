package gonigmo

import "strings"

// Option is a bitset of compile-time and search-time flags. The bit values
// follow Onigmo so that host callers can pass their option words through
// unchanged. Bits this package does not know are ignored.
type Option uint32

const (
	// OptionNone is the default: Ruby syntax, line anchors, '.' excludes '\n'.
	OptionNone Option = 0

	// OptionIgnoreCase enables case-insensitive matching.
	OptionIgnoreCase Option = 1 << 0

	// OptionExtend enables free-spacing mode: unescaped whitespace and '#'
	// comments outside bracket expressions are ignored.
	OptionExtend Option = 1 << 1

	// OptionMultiline makes '.' match '\n' (Ruby's /m).
	OptionMultiline Option = 1 << 2

	// OptionSingleline makes '^' and '$' match only at subject edges.
	// Unlike Onigmo, where '$' becomes '\Z', '$' here is '\z': it does not
	// match before a final newline.
	OptionSingleline Option = 1 << 3

	// OptionFindLongest selects the longest of the leftmost matches.
	OptionFindLongest Option = 1 << 4

	// OptionFindNotEmpty rejects empty matches.
	OptionFindNotEmpty Option = 1 << 5

	// OptionDontCaptureGroup makes plain groups non-capturing; named groups
	// still capture.
	OptionDontCaptureGroup Option = 1 << 7

	// OptionCaptureGroup makes plain groups capture even when the pattern
	// has named groups.
	OptionCaptureGroup Option = 1 << 8

	// OptionNotBOL: the subject start is not a line start.
	OptionNotBOL Option = 1 << 9

	// OptionNotEOL: the subject end is not a line end.
	OptionNotEOL Option = 1 << 10

	// OptionNotBOS: the subject start is not the string start for '\A'.
	OptionNotBOS Option = 1 << 11

	// OptionNotEOS: the subject end is not the string end for '\z'.
	OptionNotEOS Option = 1 << 12
)

// behaviorMask holds the bits that affect a single search. They may be given
// at compile time (default for every search) or per call.
const behaviorMask = OptionFindLongest | OptionFindNotEmpty |
	OptionNotBOL | OptionNotEOL | OptionNotBOS | OptionNotEOS

var optionNames = []struct {
	opt  Option
	name string
}{
	{OptionIgnoreCase, "IGNORECASE"},
	{OptionExtend, "EXTEND"},
	{OptionMultiline, "MULTILINE"},
	{OptionSingleline, "SINGLELINE"},
	{OptionFindLongest, "FIND_LONGEST"},
	{OptionFindNotEmpty, "FIND_NOT_EMPTY"},
	{OptionDontCaptureGroup, "DONT_CAPTURE_GROUP"},
	{OptionCaptureGroup, "CAPTURE_GROUP"},
	{OptionNotBOL, "NOTBOL"},
	{OptionNotEOL, "NOTEOL"},
	{OptionNotBOS, "NOTBOS"},
	{OptionNotEOS, "NOTEOS"},
}

// String returns the set flags joined by '|', or "NONE".
func (o Option) String() string {
	if o == OptionNone {
		return "NONE"
	}
	var parts []string
	for _, n := range optionNames {
		if o&n.opt != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}
