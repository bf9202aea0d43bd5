package broadcast

import (
	"testing"
	"time"

	model "reverse-auction-coordinator/internal/models"

	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
}

func TestHub_PublishReachesRoomOnly(t *testing.T) {
	t.Parallel()

	hub := NewHub(fixedNow)
	subA := hub.Join("auction1")
	subB := hub.Join("auction1")
	subOther := hub.Join("auction2")

	hub.Publish("auction1", model.EventBidPlaced, "payload")

	for _, sub := range []*Subscriber{subA, subB} {
		ev := <-sub.C
		require.Equal(t, model.EventBidPlaced, ev.Type)
		require.Equal(t, "auction1", ev.AuctionID)
		require.Equal(t, uint64(1), ev.Seq)
		require.Equal(t, fixedNow(), ev.ServerTime)
		require.Equal(t, "payload", ev.Payload)
	}

	select {
	case ev := <-subOther.C:
		t.Fatalf("auction2 subscriber received %v", ev)
	default:
	}
}

// Ordering is preserved per auction via the room sequence number.
func TestHub_PerAuctionOrdering(t *testing.T) {
	t.Parallel()

	hub := NewHub(fixedNow)
	sub := hub.Join("auction1")

	hub.Publish("auction1", model.EventBidPlaced, nil)
	hub.Publish("auction1", model.EventRankingChanged, nil)
	hub.Publish("auction1", model.EventClockExtended, nil)

	var seqs []uint64
	var types []model.EventType
	for i := 0; i < 3; i++ {
		ev := <-sub.C
		seqs = append(seqs, ev.Seq)
		types = append(types, ev.Type)
	}
	require.Equal(t, []uint64{1, 2, 3}, seqs)
	require.Equal(t, []model.EventType{model.EventBidPlaced, model.EventRankingChanged, model.EventClockExtended}, types)
}

func TestHub_LeaveClosesChannel(t *testing.T) {
	t.Parallel()

	hub := NewHub(fixedNow)
	sub := hub.Join("auction1")
	hub.Leave("auction1", sub)

	_, open := <-sub.C
	require.False(t, open)
	require.Zero(t, hub.RoomSize("auction1"))

	// Publishing to an empty room is a no-op.
	hub.Publish("auction1", model.EventBidPlaced, nil)
}

// A subscriber that stops draining is dropped instead of blocking the
// publisher; its channel closes so the transport can tear down.
func TestHub_SlowSubscriberDropped(t *testing.T) {
	t.Parallel()

	hub := NewHub(fixedNow)
	slow := hub.Join("auction1")

	// One more event than the buffer holds: the overflowing send drops
	// the subscriber on the spot.
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Publish("auction1", model.EventRankingChanged, i)
	}
	require.Zero(t, hub.RoomSize("auction1"))

	// The buffered events are still readable, then the channel closes.
	drained := 0
	for range slow.C {
		drained++
	}
	require.Equal(t, subscriberBuffer, drained)

	// Leave after a drop is harmless.
	hub.Leave("auction1", slow)
}
