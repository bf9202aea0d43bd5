package broadcast

import (
	"sync"
	"time"

	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/utils"
)

// subscriberBuffer bounds how far a subscriber may fall behind before
// it is dropped and expected to resync.
const subscriberBuffer = 16

// Subscriber is one live viewer of an auction room. Events arrive on C
// until the hub drops the subscriber or Leave is called, after which C
// is closed.
type Subscriber struct {
	C    chan model.Event
	once sync.Once
}

func newSubscriber() *Subscriber {
	return &Subscriber{C: make(chan model.Event, subscriberBuffer)}
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.C) })
}

// Hub fans ranking, clock and status changes out to per-auction rooms.
// Delivery is best-effort, at-most-once per live push; ordering is
// preserved within one auction via a per-room sequence number.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Subscriber]struct{} // key: auctionID
	seq   map[string]uint64                   // key: auctionID -> last sequence
	now   func() time.Time
}

// NewHub creates an empty hub stamping events with the given time
// source so every push carries an authoritative server timestamp.
func NewHub(now func() time.Time) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Subscriber]struct{}),
		seq:   make(map[string]uint64),
		now:   now,
	}
}

// Join adds a subscriber to an auction room
func (h *Hub) Join(auctionID string) *Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := newSubscriber()
	room, ok := h.rooms[auctionID]
	if !ok {
		room = make(map[*Subscriber]struct{})
		h.rooms[auctionID] = room
	}
	room[sub] = struct{}{}
	return sub
}

// Leave removes a subscriber from an auction room and closes its channel
func (h *Hub) Leave(auctionID string, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if room, ok := h.rooms[auctionID]; ok {
		delete(room, sub)
		if len(room) == 0 {
			delete(h.rooms, auctionID)
		}
	}
	sub.close()
}

// RoomSize reports the current number of subscribers for an auction.
func (h *Hub) RoomSize(auctionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[auctionID])
}

// Publish pushes an event to every subscriber of the auction's room.
// The send never blocks: a subscriber whose buffer is full is dropped
// on the spot and must recover through resync. A delivery failure
// never aborts the mutation that produced the event.
func (h *Hub) Publish(auctionID string, eventType model.EventType, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.seq[auctionID]++
	ev := model.Event{
		Type:       eventType,
		AuctionID:  auctionID,
		Seq:        h.seq[auctionID],
		ServerTime: h.now(),
		Payload:    payload,
	}

	room := h.rooms[auctionID]
	for sub := range room {
		select {
		case sub.C <- ev:
		default:
			delete(room, sub)
			sub.close()
			utils.Warn("broadcast: dropped slow subscriber", map[string]any{
				"auction_id": auctionID,
				"event":      string(eventType),
				"seq":        ev.Seq,
			})
		}
	}
}
