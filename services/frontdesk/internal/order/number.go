package order

import (
	"fmt"
	"sync"
	"time"
)

// NumberGenerator issues order numbers from a strictly increasing
// millisecond counter, so two orders created in the same millisecond still
// get distinct numbers.
type NumberGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewNumberGenerator(now func() time.Time) *NumberGenerator {
	if now == nil {
		now = time.Now
	}
	return &NumberGenerator{now: now}
}

// Next returns "ORD-" followed by the last six digits of the counter.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("ORD-%06d", ms%1_000_000)
}
