package sim

import (
	"sync"
	"time"
)

// Clock stamps log lines and paces compute and I/O bursts.
type Clock interface {
	// Reset establishes the time origin.
	Reset()
	// Now returns the elapsed time since the origin. Monotonic.
	Now() time.Duration
	// Wait blocks the caller for d.
	Wait(d time.Duration)
}

// WallClock waits in real time. Now reads the monotonic wall clock.
type WallClock struct {
	mu     sync.Mutex
	origin time.Time
}

// NewWallClock creates a WallClock whose origin is the moment of creation.
func NewWallClock() *WallClock {
	return &WallClock{origin: time.Now()}
}

func (c *WallClock) Reset() {
	c.mu.Lock()
	c.origin = time.Now()
	c.mu.Unlock()
}

func (c *WallClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return time.Since(c.origin)
}

func (c *WallClock) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// VirtualClock advances simulated time on Wait without sleeping.
// Timestamps depend only on the waits performed, so runs are reproducible.
type VirtualClock struct {
	mu      sync.Mutex
	elapsed time.Duration
}

// NewVirtualClock creates a VirtualClock at time zero.
func NewVirtualClock() *VirtualClock {
	return &VirtualClock{}
}

func (c *VirtualClock) Reset() {
	c.mu.Lock()
	c.elapsed = 0
	c.mu.Unlock()
}

func (c *VirtualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

func (c *VirtualClock) Wait(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	c.elapsed += d
	c.mu.Unlock()
}

// NewClock creates a Clock by name. Valid names: "wall" (default), "virtual".
// Empty string defaults to wall. Panics on unrecognized names.
func NewClock(name string) Clock {
	switch name {
	case "", "wall":
		return NewWallClock()
	case "virtual":
		return NewVirtualClock()
	default:
		panic("unknown clock " + name)
	}
}

// IsValidClock returns true if name is a recognized clock name.
func IsValidClock(name string) bool {
	return name == "" || name == "wall" || name == "virtual"
}
