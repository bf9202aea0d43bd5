package clock

import (
	"sync"
	"time"

	model "reverse-auction-coordinator/internal/models"
)

// Default anti-sniping settings, applied when an auction carries none.
const (
	DefaultExtensionWindow   = 3 * time.Minute
	DefaultExtensionDuration = 3 * time.Minute
)

// TimeSource allows injecting time into the clock and services. All
// countdown arithmetic derives from this single authoritative source;
// clients only ever see server-issued timestamps.
type TimeSource interface {
	Now() time.Time
}

type systemTime struct{}

// NewSystemTime returns a source backed by time.Now.
func NewSystemTime() TimeSource {
	return systemTime{}
}

func (systemTime) Now() time.Time {
	return time.Now().UTC()
}

// FixedTime is a settable source for tests.
type FixedTime struct {
	mu  sync.Mutex
	now time.Time
}

// NewFixedTime returns a source frozen at t until advanced.
func NewFixedTime(t time.Time) *FixedTime {
	return &FixedTime{now: t.UTC()}
}

func (f *FixedTime) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Advance moves the frozen instant forward by d.
func (f *FixedTime) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// AuctionClock is the single authoritative timer for one auction.
// While running, remaining time is always recomputed from the stored
// deadline, so a missed tick never accumulates drift. While paused,
// the remainder is frozen and the deadline is re-derived on resume.
type AuctionClock struct {
	mu        sync.Mutex
	deadline  time.Time
	frozen    time.Duration // remainder preserved across a pause
	running   bool
	autoExt   bool
	window    time.Duration
	extension time.Duration
}

// NewAuctionClock builds a clock from the auction's schedule and
// extension settings. The clock starts stopped; Start fires when the
// state machine moves the auction to Active.
func NewAuctionClock(a model.Auction) *AuctionClock {
	window := a.ExtensionWindow
	if window <= 0 {
		window = DefaultExtensionWindow
	}
	extension := a.ExtensionDuration
	if extension <= 0 {
		extension = DefaultExtensionDuration
	}
	return &AuctionClock{
		deadline:  a.EndTime,
		frozen:    a.EndTime.Sub(a.StartTime),
		autoExt:   a.AutoExtend,
		window:    window,
		extension: extension,
	}
}

// Start begins the countdown toward the scheduled deadline.
func (c *AuctionClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
}

// Pause freezes the remainder without resetting it.
func (c *AuctionClock) Pause(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	c.frozen = c.deadline.Sub(now)
	if c.frozen < 0 {
		c.frozen = 0
	}
	c.running = false
}

// Stop halts the clock for good and zeroes the remainder, so a
// force-ended auction never reports time left.
func (c *AuctionClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frozen = 0
	c.running = false
}

// Resume continues the countdown from the frozen remainder, not from
// wall-clock time elapsed during the pause.
func (c *AuctionClock) Resume(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.deadline = now.Add(c.frozen)
	c.running = true
}

// Remaining reports the time left on the clock, never negative.
func (c *AuctionClock) Remaining(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.remainingLocked(now)
}

func (c *AuctionClock) remainingLocked(now time.Time) time.Duration {
	rem := c.frozen
	if c.running {
		rem = c.deadline.Sub(now)
	}
	if rem < 0 {
		rem = 0
	}
	return rem
}

// Expired reports whether a running clock has reached zero.
func (c *AuctionClock) Expired(now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running && c.remainingLocked(now) == 0
}

// OnTopBidImproved evaluates the anti-sniping rule: a new rank-1 bid
// landing inside the extension window pushes the deadline out by the
// extension duration. There is no cap on how often this repeats.
// Returns whether an extension was applied and the new remainder.
func (c *AuctionClock) OnTopBidImproved(now time.Time) (bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rem := c.remainingLocked(now)
	if !c.autoExt || !c.running || rem == 0 || rem > c.window {
		return false, rem
	}
	c.deadline = c.deadline.Add(c.extension)
	return true, c.remainingLocked(now)
}
