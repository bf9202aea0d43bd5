package auctionerrors

import "errors"

// Lookup errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrLotNotFound     = errors.New("lot not found")
	ErrBidNotFound     = errors.New("bid not found")
)

// Business rule errors
var (
	ErrAuctionNotActive   = errors.New("auction is not active")
	ErrDuplicateActiveBid = errors.New("supplier already holds an active bid for this lot")
	ErrBidNotImprovement  = errors.New("bid does not improve on the stored total cost")
	ErrReserveExceeded    = errors.New("total cost exceeds the auction reserve price")
	ErrUnknownCurrency    = errors.New("unknown currency code")
	ErrInvalidBid         = errors.New("invalid bid")
	ErrInvalidTransition  = errors.New("invalid auction status transition")
)

// Contention errors
var (
	// ErrLotBusy is returned when the per-lot serialization cannot be
	// acquired within the configured wait. The caller may retry.
	ErrLotBusy = errors.New("lot is busy, try again")
)
