package gonigmo

import "strconv"

// Code is a status code. Zero is success, CodeMismatch reports that no match
// was found, and every other negative value is an error. Values follow the
// Onigmo numbering.
type Code int

const (
	CodeNormal   Code = 0
	CodeMismatch Code = -1

	CodeNoSupportConfig    Code = -2
	CodeAborted            Code = -3
	CodeMemory             Code = -5
	CodeParserBug          Code = -11
	CodeParseDepthLimit    Code = -16
	CodeMatchStepLimitOver Code = -17
	CodeInvalidArgument    Code = -30

	// Syntax errors.
	CodePrematureEndOfCharClass    Code = -103
	CodeEndPatternAtEscape         Code = -104
	CodeMetaCodeSyntax             Code = -108
	CodeTargetOfRepeatNotSpecified Code = -113
	CodeNestedRepeat               Code = -115
	CodeUnmatchedCloseParen        Code = -116
	CodeMissingParen               Code = -117
	CodeUndefinedGroupOption       Code = -119
	CodeInvalidPosixBracket        Code = -121
	CodeTooBigRepeatRange          Code = -201
	CodeEmptyRangeInCharClass      Code = -203
	CodeInvalidGroupName           Code = -215
	CodeUndefinedNameReference     Code = -217
	CodeInvalidCharPropertyName    Code = -223

	// Encoding and option errors.
	CodeInvalidCodePoint            Code = -400
	CodeInvalidCombinationOfOptions Code = -403
)

// codeMessages are the message templates. "%n" is replaced by the
// offending expression when one is known.
var codeMessages = map[Code]string{
	CodeNormal:                      "success",
	CodeMismatch:                    "mismatch",
	CodeNoSupportConfig:             "no support in this configuration",
	CodeAborted:                     "search aborted",
	CodeMemory:                      "fail to memory allocation",
	CodeParserBug:                   "internal parser error (bug)",
	CodeParseDepthLimit:             "parse depth limit over",
	CodeMatchStepLimitOver:          "match step limit over",
	CodeInvalidArgument:             "invalid argument",
	CodePrematureEndOfCharClass:     "premature end of char-class",
	CodeEndPatternAtEscape:          "end pattern at escape",
	CodeMetaCodeSyntax:              "invalid meta-code syntax",
	CodeTargetOfRepeatNotSpecified:  "target of repeat operator is not specified",
	CodeNestedRepeat:                "nested repeat operator",
	CodeUnmatchedCloseParen:         "unmatched close parenthesis",
	CodeMissingParen:                "end pattern with unmatched parenthesis",
	CodeUndefinedGroupOption:        "undefined group option",
	CodeInvalidPosixBracket:         "invalid POSIX bracket type",
	CodeTooBigRepeatRange:           "too big number for repeat range",
	CodeEmptyRangeInCharClass:       "empty range in char class",
	CodeInvalidGroupName:            "invalid group name <%n>",
	CodeUndefinedNameReference:      "undefined name <%n> reference",
	CodeInvalidCharPropertyName:     "invalid character property name {%n}",
	CodeInvalidCodePoint:            "invalid code point value",
	CodeInvalidCombinationOfOptions: "invalid combination of options",
}

// template returns the message template for c.
func (c Code) template() string {
	if m, ok := codeMessages[c]; ok {
		return m
	}
	return "undefined error code"
}

// Error implements error so that codes can be used with errors.Is.
func (c Code) Error() string {
	return formatMessage(c, ErrorInfo{})
}

// String returns the message with the numeric code.
func (c Code) String() string {
	return c.Error() + " (" + strconv.Itoa(int(c)) + ")"
}

// IsError reports whether c is a hard error, as opposed to success or
// a mismatch.
func (c Code) IsError() bool {
	return c < CodeMismatch
}
