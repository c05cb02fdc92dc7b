package gonigmo

import (
	"bytes"
	"context"
)

// SearchContext is Search with a deadline. The search runs on its own
// goroutine over a private copy of subject; if ctx ends first the result is
// a CodeAborted error wrapping ctx.Err() and the abandoned search runs to
// completion in the background with its result discarded.
func (re *Regex) SearchContext(ctx context.Context, subject []byte, offset int, opts Option, region *Region) Result {
	re.checkOpen()
	if region != nil {
		region.checkLive()
	}
	if err := ctx.Err(); err != nil {
		if region != nil {
			region.Reset()
		}
		return errorResult(newError(CodeAborted, ErrorInfo{Err: err}))
	}

	type outcome struct {
		res    Result
		region *Region
	}
	done := make(chan outcome, 1)
	subj := bytes.Clone(subject)
	go func() {
		private := NewRegion()
		res := re.Search(subj, offset, opts, private)
		done <- outcome{res: res, region: private}
	}()

	select {
	case out := <-done:
		if region != nil {
			region.copyFrom(out.region)
		}
		return out.res
	case <-ctx.Done():
		if region != nil {
			region.Reset()
		}
		return errorResult(newError(CodeAborted, ErrorInfo{Err: ctx.Err()}))
	}
}
