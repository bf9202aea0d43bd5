package statemachine

import (
	"errors"
	"testing"

	"reverse-auction-coordinator/internal/auctionerrors"
	model "reverse-auction-coordinator/internal/models"

	"github.com/stretchr/testify/require"
)

// Tests Transition
func TestTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    model.AuctionStatus
		to      model.AuctionStatus
		wantErr bool
	}{
		{name: "scheduled_to_active", from: model.StatusScheduled, to: model.StatusActive},
		{name: "scheduled_to_ended", from: model.StatusScheduled, to: model.StatusEnded},
		{name: "active_to_paused", from: model.StatusActive, to: model.StatusPaused},
		{name: "paused_to_active", from: model.StatusPaused, to: model.StatusActive},
		{name: "active_to_ended", from: model.StatusActive, to: model.StatusEnded},
		{name: "paused_to_ended", from: model.StatusPaused, to: model.StatusEnded},
		{name: "scheduled_to_paused_rejected", from: model.StatusScheduled, to: model.StatusPaused, wantErr: true},
		{name: "ended_is_terminal", from: model.StatusEnded, to: model.StatusActive, wantErr: true},
		{name: "ended_cannot_pause", from: model.StatusEnded, to: model.StatusPaused, wantErr: true},
		{name: "no_self_transition", from: model.StatusActive, to: model.StatusActive, wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Transition(tc.from, tc.to)
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, errors.Is(err, auctionerrors.ErrInvalidTransition))
				require.Equal(t, tc.from, got, "status must be unchanged on rejection")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.to, got)
		})
	}
}

func TestAcceptsBids(t *testing.T) {
	t.Parallel()

	require.True(t, AcceptsBids(model.StatusActive))
	require.False(t, AcceptsBids(model.StatusScheduled))
	require.False(t, AcceptsBids(model.StatusPaused))
	require.False(t, AcceptsBids(model.StatusEnded))
}
