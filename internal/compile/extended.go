package compile

// StripExtended removes free-spacing whitespace and '#' comments from
// pattern. Escaped characters and bracket expressions are copied unchanged.
func StripExtended(pattern []byte) []byte {
	out := make([]byte, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			out = append(out, c)
			if i+1 < len(pattern) {
				i++
				out = append(out, pattern[i])
			}
		case c == '[':
			end := classEnd(pattern, i)
			out = append(out, pattern[i:end]...)
			i = end - 1
		case c == '#':
			for i < len(pattern) && pattern[i] != '\n' {
				i++
			}
		case isSpace(c):
		default:
			out = append(out, c)
		}
	}
	return out
}

// classEnd returns the index just past the bracket expression starting at
// pattern[start], or len(pattern) when it is unterminated (the parser then
// reports the missing bracket).
func classEnd(pattern []byte, start int) int {
	i := start + 1
	if i < len(pattern) && pattern[i] == '^' {
		i++
	}
	// A leading ']' is a literal.
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) {
		switch c := pattern[i]; {
		case c == '\\':
			i += 2
			continue
		case c == '[' && i+1 < len(pattern) && pattern[i+1] == ':':
			// POSIX class such as [:alpha:].
			for j := i + 2; j+1 < len(pattern); j++ {
				if pattern[j] == ':' && pattern[j+1] == ']' {
					i = j + 1
					break
				}
			}
		case c == ']':
			return i + 1
		}
		i++
	}
	return len(pattern)
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
