package compile

import "regexp/syntax"

// applyCapturePolicy drops non-capturing groups according to policy and
// renumbers the remaining groups in opening-parenthesis order.
func applyCapturePolicy(re *syntax.Regexp, policy CapturePolicy) {
	strip := false
	switch policy {
	case CaptureNamedOnly:
		strip = true
	case CaptureDefault:
		strip = hasNamedGroup(re)
	}
	if strip {
		stripUnnamed(re)
	}

	next := 1
	renumber(re, &next)
}

func hasNamedGroup(re *syntax.Regexp) bool {
	if re.Op == syntax.OpCapture && re.Name != "" {
		return true
	}
	for _, sub := range re.Sub {
		if hasNamedGroup(sub) {
			return true
		}
	}
	return false
}

// stripUnnamed replaces every unnamed capture node with its body.
func stripUnnamed(re *syntax.Regexp) {
	for re.Op == syntax.OpCapture && re.Name == "" {
		*re = *re.Sub[0]
	}
	for _, sub := range re.Sub {
		stripUnnamed(sub)
	}
}

// renumber assigns group indexes in pre-order, which is the order of the
// opening parentheses in the source.
func renumber(re *syntax.Regexp, next *int) {
	if re.Op == syntax.OpCapture {
		re.Cap = *next
		*next++
	}
	for _, sub := range re.Sub {
		renumber(sub, next)
	}
}
