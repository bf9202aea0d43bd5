package ledger

import (
	"fmt"
	"sync"
	"time"

	"reverse-auction-coordinator/internal/auctionerrors"
)

// lotLocks serializes bid mutations per lot. Each lot gets a
// capacity-one channel used as a mutex with a bounded wait, so a
// stalled lot fails fast with ErrLotBusy instead of stalling callers
// indefinitely. Locks for different lots are fully independent.
type lotLocks struct {
	mu    sync.Mutex
	slots map[string]chan struct{} // key: lotID
}

func newLotLocks() *lotLocks {
	return &lotLocks{slots: make(map[string]chan struct{})}
}

func (l *lotLocks) slot(lotID string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	slot, ok := l.slots[lotID]
	if !ok {
		slot = make(chan struct{}, 1)
		l.slots[lotID] = slot
	}
	return slot
}

// acquire takes the lot's lock, waiting at most wait. The returned
// release function must be called exactly once.
func (l *lotLocks) acquire(lotID string, wait time.Duration) (release func(), err error) {
	slot := l.slot(lotID)

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case slot <- struct{}{}:
		return func() { <-slot }, nil
	case <-timer.C:
		return nil, fmt.Errorf("lock wait %s elapsed: %w", wait, auctionerrors.ErrLotBusy)
	}
}
