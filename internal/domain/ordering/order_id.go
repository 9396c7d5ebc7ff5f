package ordering

import (
	"fmt"
	"sync"
	"time"
)

// OrderIDGenerator produces order identifiers of the form ORD-<millis>.
// Identifiers are time-based and strictly monotonic within a process:
// when two orders are confirmed in the same millisecond the second one
// gets the next millisecond value, so ids never collide.
type OrderIDGenerator struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewOrderIDGenerator creates a generator backed by the wall clock
func NewOrderIDGenerator() *OrderIDGenerator {
	return &OrderIDGenerator{now: time.Now}
}

// Next returns the next unique order identifier
func (g *OrderIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := g.now().UnixMilli()
	if millis <= g.last {
		millis = g.last + 1
	}
	g.last = millis

	return fmt.Sprintf("ORD-%d", millis)
}
