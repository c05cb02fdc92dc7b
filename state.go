package gonigmo

import (
	"sync"

	"github.com/coregx/gonigmo/vm"
)

// searchStatePool manages per-search scratch space so that one Regex can
// serve concurrent searches. This follows the stdlib regexp pattern of
// using sync.Pool for concurrent safety.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(p *vm.Program) *searchStatePool {
	sp := &searchStatePool{}
	sp.pool.New = func() any {
		return p.NewScratch()
	}
	return sp
}

func (sp *searchStatePool) get() *vm.Scratch {
	return sp.pool.Get().(*vm.Scratch)
}

func (sp *searchStatePool) put(s *vm.Scratch) {
	sp.pool.Put(s)
}
