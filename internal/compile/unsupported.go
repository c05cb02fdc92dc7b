package compile

import "bytes"

// UnsupportedError reports Ruby syntax that has no equivalent in the
// automaton-based executors: look-around, atomic and absent groups,
// backreferences, subexpression calls and possessive quantifiers.
type UnsupportedError struct {
	Construct string // the construct as written, e.g. "(?<=" or "\\1"
	Offset    int    // byte offset in the pattern
}

func (e *UnsupportedError) Error() string {
	return "unsupported construct " + e.Construct
}

var unsupportedGroups = [][]byte{
	[]byte("(?<="), []byte("(?<!"), []byte("(?="), []byte("(?!"),
	[]byte("(?>"), []byte("(?~"),
}

// escapes with a Ruby meaning the parser does not implement; \k and \g only
// when followed by a name or number.
const unsupportedEscapes = "ZGKRX"

// findUnsupported returns the first unsupported construct outside bracket
// expressions, or nil.
func findUnsupported(pattern []byte) *UnsupportedError {
	quant := false // the previous token was an unescaped quantifier
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '\\':
			if i+1 >= len(pattern) {
				return nil
			}
			if n := unsupportedEscapeLen(pattern[i+1:]); n > 0 {
				return &UnsupportedError{Construct: string(pattern[i : i+1+n]), Offset: i}
			}
			i++
			quant = false
		case '[':
			i = classEnd(pattern, i) - 1
			quant = false
		case '(':
			for _, g := range unsupportedGroups {
				if bytes.HasPrefix(pattern[i:], g) {
					return &UnsupportedError{Construct: string(g), Offset: i}
				}
			}
			if i+1 < len(pattern) && pattern[i+1] == '?' {
				i++
			}
			quant = false
		case '*', '+', '?':
			if quant {
				if c == '+' {
					return &UnsupportedError{Construct: string(pattern[i-1 : i+1]), Offset: i - 1}
				}
				// a lazy modifier ends the quantifier
				quant = false
				continue
			}
			quant = true
		default:
			quant = false
		}
	}
	return nil
}

// unsupportedEscapeLen returns the length of an unsupported escape body at
// the start of rest (the bytes after the backslash), or 0.
func unsupportedEscapeLen(rest []byte) int {
	c := rest[0]
	switch {
	case c >= '1' && c <= '9':
		// a single digit is a backreference; longer runs are octal
		if len(rest) == 1 || rest[1] < '0' || rest[1] > '9' {
			return 1
		}
	case c == 'k' || c == 'g':
		if len(rest) > 1 && (rest[1] == '<' || rest[1] == '\'') {
			return 2
		}
	case bytes.IndexByte([]byte(unsupportedEscapes), c) >= 0:
		return 1
	}
	return 0
}
