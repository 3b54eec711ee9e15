package todo

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource hands out task IDs. Every call must return a value never
// returned before by the same source.
type IDSource interface {
	NextID() string
}

// UUIDSource generates time-ordered UUIDv7 IDs, so IDs sort in creation order.
type UUIDSource struct{}

// NextID returns a new UUIDv7 string.
func (UUIDSource) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails when the system random source is broken.
		return uuid.NewString()
	}
	return id.String()
}

// CounterSource generates sequential IDs ("t1", "t2", ...).
type CounterSource struct {
	Prefix string
	n      int
}

// NewCounterSource returns a CounterSource using prefix.
func NewCounterSource(prefix string) *CounterSource {
	return &CounterSource{Prefix: prefix}
}

// NextID returns the next ID in sequence.
func (c *CounterSource) NextID() string {
	c.n++
	prefix := c.Prefix
	if prefix == "" {
		prefix = "t"
	}
	return fmt.Sprintf("%s%d", prefix, c.n)
}
