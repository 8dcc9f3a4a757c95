package republisher

import (
	"sync"

	"github.com/lblod/republisher/internal/report"
)

// OutcomeHook is called whenever a unit outcome is added to the run report.
type OutcomeHook func(category report.Category, entry report.Entry)

// hooks manages outcome callbacks.
type hooks struct {
	mu        sync.RWMutex
	onOutcome []OutcomeHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnOutcome registers a callback for unit outcomes.
func (h *hooks) OnOutcome(fn OutcomeHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onOutcome = append(h.onOutcome, fn)
}

func (h *hooks) trigger(category report.Category, entry report.Entry) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onOutcome {
		fn(category, entry)
	}
}
