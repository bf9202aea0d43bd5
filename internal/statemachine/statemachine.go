package statemachine

import (
	"fmt"

	"reverse-auction-coordinator/internal/auctionerrors"
	model "reverse-auction-coordinator/internal/models"
)

// allowed enumerates the legal lifecycle edges. Ended is terminal.
var allowed = map[model.AuctionStatus][]model.AuctionStatus{
	model.StatusScheduled: {model.StatusActive, model.StatusEnded},
	model.StatusActive:    {model.StatusPaused, model.StatusEnded},
	model.StatusPaused:    {model.StatusActive, model.StatusEnded},
	model.StatusEnded:     {},
}

// Transition validates a status change and returns the new status.
// Scheduled to Active is clock-driven at start time; transitions into
// Ended come from the clock reaching zero or an operator termination;
// Active/Paused toggling is operator-driven.
func Transition(from, to model.AuctionStatus) (model.AuctionStatus, error) {
	for _, next := range allowed[from] {
		if next == to {
			return to, nil
		}
	}
	return from, fmt.Errorf("transition %s -> %s: %w", from, to, auctionerrors.ErrInvalidTransition)
}

// AcceptsBids reports whether the ledger may mutate bids in this state.
// Only Active auctions accept submissions, updates and withdrawals.
func AcceptsBids(status model.AuctionStatus) bool {
	return status == model.StatusActive
}
