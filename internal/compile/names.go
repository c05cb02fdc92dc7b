package compile

import (
	"bytes"
	"strconv"
)

// groupName locates the name of a named group opening at pattern[i], for the
// forms (?<name>...) and (?P<name>...). ok is false for anything else,
// including the (?<= and (?<! lookbehind openers.
func groupName(pattern []byte, i int) (start, end int, ok bool) {
	rest := pattern[i:]
	switch {
	case bytes.HasPrefix(rest, []byte("(?P<")):
		start = i + 4
	case bytes.HasPrefix(rest, []byte("(?<")):
		start = i + 3
		if start < len(pattern) && (pattern[start] == '=' || pattern[start] == '!') {
			return 0, 0, false
		}
	default:
		return 0, 0, false
	}
	n := bytes.IndexByte(pattern[start:], '>')
	if n < 0 {
		return 0, 0, false
	}
	return start, start + n, true
}

// scanGroupNames calls fn with the bounds of every group name outside
// escapes and bracket expressions.
func scanGroupNames(pattern []byte, fn func(start, end int)) {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '\\':
			i++
		case '[':
			i = classEnd(pattern, i) - 1
		case '(':
			if start, end, ok := groupName(pattern, i); ok {
				fn(start, end)
				i = end
			}
		}
	}
}

// aliasDuplicateNames rewrites the second and later uses of a group name to
// fresh names the parser accepts. The returned map takes each alias back to
// the name written in the pattern; it is nil when nothing was rewritten.
func aliasDuplicateNames(pattern []byte) ([]byte, map[string]string) {
	used := make(map[string]int)
	dup := false
	scanGroupNames(pattern, func(start, end int) {
		name := string(pattern[start:end])
		used[name]++
		if used[name] > 1 {
			dup = true
		}
	})
	if !dup {
		return pattern, nil
	}

	aliases := make(map[string]string)
	seen := make(map[string]bool)
	out := make([]byte, 0, len(pattern)+16)
	last := 0
	n := 0
	scanGroupNames(pattern, func(start, end int) {
		name := string(pattern[start:end])
		if !seen[name] {
			seen[name] = true
			return
		}
		var alias string
		for {
			n++
			alias = name + "_" + strconv.Itoa(n)
			if used[alias] == 0 {
				break
			}
		}
		used[alias] = 1
		aliases[alias] = name
		out = append(out, pattern[last:start]...)
		out = append(out, alias...)
		last = end
	})
	out = append(out, pattern[last:]...)
	return out, aliases
}
