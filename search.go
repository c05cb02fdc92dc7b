package gonigmo

import (
	"strconv"

	"github.com/coregx/gonigmo/vm"
)

// Kind tags a Result.
type Kind uint8

const (
	// KindMismatch: no match. Not an error.
	KindMismatch Kind = iota
	// KindMatched: the region holds the groups; Begin and End bound group 0.
	KindMatched
	// KindError: the search failed; Err holds the code and message.
	KindError
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMatched:
		return "matched"
	case KindError:
		return "error"
	default:
		return "mismatch"
	}
}

// Result is the outcome of one search or anchored match.
type Result struct {
	Kind  Kind
	Begin int
	End   int
	Err   *Error
}

var mismatch = Result{Kind: KindMismatch, Begin: -1, End: -1}

func errorResult(err *Error) Result {
	return Result{Kind: KindError, Begin: -1, End: -1, Err: err}
}

// Matched reports whether the result is a match.
func (r Result) Matched() bool {
	return r.Kind == KindMatched
}

// Status returns the boundary status code: the match position for a match,
// CodeMismatch, or the error code.
func (r Result) Status() int {
	switch r.Kind {
	case KindMatched:
		return r.Begin
	case KindError:
		return int(r.Err.Code)
	default:
		return int(CodeMismatch)
	}
}

// Search finds the leftmost match in subject that starts at or after
// offset. Assertions such as '^' and '\b' still see the bytes before
// offset.
//
// On a match region, if not nil, holds NumCaptures()+1 pairs. On a mismatch
// or an error region is reset; it is never left half written.
//
// The search-time bits of opts (FindLongest, FindNotEmpty, NotBOL, NotEOL,
// NotBOS, NotEOS) are added to those given at compile time; compile-time
// bits in opts are ignored.
func (re *Regex) Search(subject []byte, offset int, opts Option, region *Region) Result {
	return re.exec(subject, offset, opts, region, false)
}

// Match attempts a match that starts exactly at offset.
func (re *Regex) Match(subject []byte, offset int, opts Option, region *Region) Result {
	return re.exec(subject, offset, opts, region, true)
}

// MatchStatus is the status-only form of Match: the match length, or
// a negative code.
func (re *Regex) MatchStatus(subject []byte, offset int, opts Option) int {
	res := re.exec(subject, offset, opts, nil, true)
	if res.Matched() {
		return res.End - res.Begin
	}
	return res.Status()
}

func (re *Regex) exec(subject []byte, offset int, opts Option, region *Region, anchored bool) Result {
	re.checkOpen()
	if region != nil {
		region.checkLive()
	}

	if offset < 0 || offset > len(subject) {
		if region != nil {
			region.Reset()
		}
		return errorResult(newError(CodeInvalidArgument, ErrorInfo{
			Expr: "offset " + strconv.Itoa(offset) + " outside [0, " + strconv.Itoa(len(subject)) + "]",
		}))
	}

	eff := re.options&behaviorMask | opts&behaviorMask
	req := vm.Request{
		Subject:   subject,
		Offset:    offset,
		Anchored:  anchored,
		Longest:   eff&OptionFindLongest != 0,
		NotEmpty:  eff&OptionFindNotEmpty != 0,
		Context:   contextFor(eff),
		StepLimit: re.config.MatchStepLimit,
	}

	s := re.states.get()
	defer re.states.put(s)

	var (
		matched bool
		err     error
	)
	if !req.Longest && re.vm.CanBacktrack(len(subject)-offset, re.config.MaxBacktrackBits) {
		matched, err = re.vm.Backtrack(s, &req)
	} else {
		matched, err = re.vm.PikeVM(s, &req)
	}

	switch {
	case err != nil:
		if region != nil {
			region.Reset()
		}
		return errorResult(searchError(err))
	case !matched:
		if region != nil {
			region.Reset()
		}
		return mismatch
	}

	if region != nil {
		region.set(s.Caps)
	}
	return Result{Kind: KindMatched, Begin: s.Caps[0], End: s.Caps[1]}
}

func contextFor(opts Option) vm.Context {
	var ctx vm.Context
	if opts&OptionNotBOL != 0 {
		ctx |= vm.NotBOL
	}
	if opts&OptionNotEOL != 0 {
		ctx |= vm.NotEOL
	}
	if opts&OptionNotBOS != 0 {
		ctx |= vm.NotBOS
	}
	if opts&OptionNotEOS != 0 {
		ctx |= vm.NotEOS
	}
	return ctx
}
