package gonigmo

import (
	"errors"
	"fmt"
	"regexp/syntax"
	"strings"
	"unicode/utf8"

	"github.com/coregx/gonigmo/internal/compile"
	"github.com/coregx/gonigmo/vm"
)

// MaxErrorMessageLen is the capacity of an error message buffer, including
// the terminator a C caller would need. Messages are at most
// MaxErrorMessageLen-1 bytes.
const MaxErrorMessageLen = 90

var (
	// ErrClosed is the panic value for use of a closed Regex.
	ErrClosed = errors.New("gonigmo: use of closed Regex")

	// ErrReleased is the panic value for use of a released Region.
	ErrReleased = errors.New("gonigmo: use of released Region")
)

// ErrorInfo is the engine-specific payload of an Error.
type ErrorInfo struct {
	// Expr is the offending part of the pattern, if known.
	Expr string

	// Err is the underlying cause, if any.
	Err error
}

// Error is a compile or search failure.
type Error struct {
	Code    Code
	Message string
	Info    ErrorInfo
}

// Error implements error.
func (e *Error) Error() string {
	return e.Message
}

// Is reports whether target is e's Code.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Info.Err
}

func newError(code Code, info ErrorInfo) *Error {
	return &Error{Code: code, Message: formatMessage(code, info), Info: info}
}

// formatMessage renders the message for code. A "%n" in the template is
// replaced by the expression; otherwise the expression is appended.
func formatMessage(code Code, info ErrorInfo) string {
	tmpl := code.template()
	expr := strings.ToValidUTF8(info.Expr, "\uFFFD")

	var msg string
	switch {
	case strings.Contains(tmpl, "%n") && expr != "":
		msg = strings.ReplaceAll(tmpl, "%n", expr)
	case strings.Contains(tmpl, "%n"):
		msg = strings.NewReplacer(" <%n>", "", " {%n}", "", "%n", "").Replace(tmpl)
	case expr != "":
		msg = tmpl + ": " + expr
	default:
		msg = tmpl
	}
	return boundMessage(msg)
}

// boundMessage truncates s to MaxErrorMessageLen-1 bytes without splitting
// a UTF-8 sequence.
func boundMessage(s string) string {
	limit := MaxErrorMessageLen - 1
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

var syntaxCodes = map[syntax.ErrorCode]Code{
	syntax.ErrInternalError:         CodeParserBug,
	syntax.ErrInvalidCharClass:      CodeInvalidPosixBracket,
	syntax.ErrInvalidCharRange:      CodeEmptyRangeInCharClass,
	syntax.ErrInvalidEscape:         CodeMetaCodeSyntax,
	syntax.ErrInvalidNamedCapture:   CodeInvalidGroupName,
	syntax.ErrInvalidPerlOp:         CodeUndefinedGroupOption,
	syntax.ErrInvalidRepeatOp:       CodeNestedRepeat,
	syntax.ErrInvalidRepeatSize:     CodeTooBigRepeatRange,
	syntax.ErrInvalidUTF8:           CodeInvalidCodePoint,
	syntax.ErrMissingBracket:        CodePrematureEndOfCharClass,
	syntax.ErrMissingParen:          CodeMissingParen,
	syntax.ErrMissingRepeatArgument: CodeTargetOfRepeatNotSpecified,
	syntax.ErrTrailingBackslash:     CodeEndPatternAtEscape,
	syntax.ErrUnexpectedParen:       CodeUnmatchedCloseParen,
	syntax.ErrNestingDepth:          CodeParseDepthLimit,
	syntax.ErrLarge:                 CodeMemory,
}

// compileError maps a parser failure onto the status taxonomy.
func compileError(err error) *Error {
	var uerr *compile.UnsupportedError
	if errors.As(err, &uerr) {
		return newError(CodeNoSupportConfig, ErrorInfo{Expr: uerr.Construct, Err: uerr})
	}
	var serr *syntax.Error
	if errors.As(err, &serr) {
		code, ok := syntaxCodes[serr.Code]
		if !ok {
			code = CodeParserBug
		}
		info := ErrorInfo{Expr: serr.Expr, Err: serr}
		switch {
		case code == CodeInvalidGroupName:
			info.Expr = groupNameOf(serr.Expr)
		case serr.Code != syntax.ErrInvalidCharRange:
		case strings.HasPrefix(serr.Expr, "[:"):
			code = CodeInvalidPosixBracket
		case strings.HasPrefix(serr.Expr, `\p`), strings.HasPrefix(serr.Expr, `\P`):
			code = CodeInvalidCharPropertyName
			info.Expr = strings.TrimSuffix(strings.TrimPrefix(serr.Expr[2:], "{"), "}")
		}
		return newError(code, info)
	}
	return newError(CodeParserBug, ErrorInfo{Err: err})
}

// groupNameOf extracts the name from a "(?P<name>" or "(?<name>" fragment.
func groupNameOf(expr string) string {
	if i := strings.IndexByte(expr, '<'); i >= 0 {
		expr = expr[i+1:]
	}
	return strings.TrimSuffix(expr, ">")
}

// searchError maps an executor failure onto the status taxonomy.
func searchError(err error) *Error {
	if errors.Is(err, vm.ErrStepLimit) {
		return newError(CodeMatchStepLimitOver, ErrorInfo{Err: err})
	}
	return newError(CodeParserBug, ErrorInfo{Err: err})
}

// IndexError reports an out-of-range Region access.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("gonigmo: region index %d out of range [0, %d)", e.Index, e.Len)
}
