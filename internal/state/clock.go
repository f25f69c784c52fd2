package state

import (
	"sync"

	"github.com/google/uuid"
)

func newPathID() string {
	return uuid.NewString()
}

// Clock issues generation sequence numbers and remembers the newest one
// observed, so out-of-order results can be told apart from current ones.
type Clock struct {
	mu       sync.Mutex
	counter  uint64
	observed uint64
}

// Tick returns the next sequence number.
func (c *Clock) Tick() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counter++
	return c.counter
}

// Observe records seq and reports whether it is newer than every sequence
// number observed before.
func (c *Clock) Observe(seq uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq <= c.observed {
		return false
	}
	c.observed = seq
	if seq > c.counter {
		c.counter = seq
	}
	return true
}

// Latest returns the newest observed sequence number.
func (c *Clock) Latest() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.observed
}
