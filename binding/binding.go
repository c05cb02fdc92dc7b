// Package binding exposes gonigmo through opaque integer handles and plain
// status codes, the shape a C or FFI host expects: no pointers cross the
// boundary and every outcome is an int.
//
// Each handle owns its compiled pattern and one Region reused across calls.
// Calls on the same handle are serialised; different handles run in
// parallel. A handle is released exactly once by Free.
package binding

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/coregx/gonigmo"
)

// Handle identifies a compiled pattern. Zero is never a valid handle.
type Handle int64

type entry struct {
	mu     sync.Mutex
	re     *gonigmo.Regex
	region *gonigmo.Region
	freed  bool
}

var (
	mu      sync.RWMutex
	entries = make(map[Handle]*entry)
	next    Handle
	logger  = zerolog.Nop()
)

// SetLogger installs the logger for handle lifecycle events. The default
// discards everything.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func currentLogger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}

// Compile compiles pattern with the Onigmo option bits in options. It
// returns the new handle and CodeNormal, or a zero handle, the error code
// and a message of at most gonigmo.MaxErrorMessageLen-1 bytes.
func Compile(pattern []byte, options int) (Handle, int, string) {
	re, err := gonigmo.Compile(pattern, gonigmo.Option(uint32(options)))
	if err != nil {
		code, msg := describe(err)
		currentLogger().Debug().Int("code", code).Str("error", msg).Msg("compile failed")
		return 0, code, msg
	}

	mu.Lock()
	next++
	h := next
	entries[h] = &entry{re: re, region: gonigmo.NewRegion()}
	mu.Unlock()

	currentLogger().Debug().Int64("handle", int64(h)).Int("captures", re.NumCaptures()).Msg("compiled pattern")
	return h, int(gonigmo.CodeNormal), ""
}

func describe(err error) (int, string) {
	var gerr *gonigmo.Error
	if errors.As(err, &gerr) {
		return int(gerr.Code), gerr.Message
	}
	return int(gonigmo.CodeParserBug), gonigmo.CodeParserBug.Error()
}

// acquire returns the locked entry for h, or nil.
func acquire(h Handle) *entry {
	mu.RLock()
	e := entries[h]
	mu.RUnlock()
	if e == nil {
		return nil
	}
	e.mu.Lock()
	if e.freed {
		e.mu.Unlock()
		return nil
	}
	return e
}

// Search scans subject from offset. On a match status is the match
// position, captures holds begin, end for each of the count groups (group 0
// first, -1 for groups that did not participate) and msg is empty. On a
// mismatch status is CodeMismatch. On an error status is the error code and
// msg its message.
//
// captures is sized to the pattern's group count; it is never truncated to
// or overrun by a caller-chosen capacity.
func Search(h Handle, subject []byte, offset, options int) (status int, captures []int, count int, msg string) {
	e := acquire(h)
	if e == nil {
		return int(gonigmo.CodeInvalidArgument), nil, 0, gonigmo.CodeInvalidArgument.Error()
	}
	defer e.mu.Unlock()

	res := e.re.Search(subject, offset, gonigmo.Option(uint32(options)), e.region)
	switch res.Kind {
	case gonigmo.KindMatched:
		count = e.region.Len()
		captures = e.region.AppendOffsets(make([]int, 0, 2*count))
		return res.Begin, captures, count, ""
	case gonigmo.KindError:
		return int(res.Err.Code), nil, 0, res.Err.Message
	default:
		return int(gonigmo.CodeMismatch), nil, 0, ""
	}
}

// Match tries a match at exactly offset. It returns the match length,
// CodeMismatch or an error code.
func Match(h Handle, subject []byte, offset, options int) int {
	e := acquire(h)
	if e == nil {
		return int(gonigmo.CodeInvalidArgument)
	}
	defer e.mu.Unlock()
	return e.re.MatchStatus(subject, offset, gonigmo.Option(uint32(options)))
}

// NumCaptures returns the group count of h, not counting group 0, or
// CodeInvalidArgument for an unknown handle.
func NumCaptures(h Handle) int {
	e := acquire(h)
	if e == nil {
		return int(gonigmo.CodeInvalidArgument)
	}
	defer e.mu.Unlock()
	return e.re.NumCaptures()
}

// Free releases h. Freeing an unknown or already freed handle returns
// CodeInvalidArgument.
func Free(h Handle) int {
	mu.Lock()
	e := entries[h]
	delete(entries, h)
	mu.Unlock()
	if e == nil {
		currentLogger().Debug().Int64("handle", int64(h)).Msg("free of unknown handle")
		return int(gonigmo.CodeInvalidArgument)
	}

	e.mu.Lock()
	e.freed = true
	e.re.Close()
	e.region.Release()
	e.mu.Unlock()

	currentLogger().Debug().Int64("handle", int64(h)).Msg("freed pattern")
	return int(gonigmo.CodeNormal)
}

// Live returns the number of handles not yet freed.
func Live() int {
	mu.RLock()
	defer mu.RUnlock()
	return len(entries)
}
