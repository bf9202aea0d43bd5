package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is the lifecycle state of an auction.
type AuctionStatus string

const (
	StatusScheduled AuctionStatus = "Scheduled"
	StatusActive    AuctionStatus = "Active"
	StatusPaused    AuctionStatus = "Paused"
	StatusEnded     AuctionStatus = "Ended"
)

// BidStatus marks whether a bid still competes in its lot.
type BidStatus string

const (
	BidActive    BidStatus = "Active"
	BidWithdrawn BidStatus = "Withdrawn"
)

// Supplier represents an invited participant in a reverse auction
type Supplier struct {
	SupplierID string `json:"supplier_id"`
	Name       string `json:"name"`
}

// Auction holds the schedule, reserve and extension settings for one event.
// Status and clock-derived fields are mutated only by the coordinator's
// timer task and operator transitions.
type Auction struct {
	AuctionID          string          `json:"auction_id"`
	Title              string          `json:"title"`
	Status             AuctionStatus   `json:"status"`
	ReservePrice       decimal.Decimal `json:"reserve_price"`
	SettlementCurrency string          `json:"settlement_currency"`
	StartTime          time.Time       `json:"start_time"`
	EndTime            time.Time       `json:"end_time"`
	AutoExtend         bool            `json:"auto_extend"`
	ExtensionWindow    time.Duration   `json:"extension_window"`
	ExtensionDuration  time.Duration   `json:"extension_duration"`
	LotIDs             []string        `json:"lot_ids"`
	SupplierIDs        []string        `json:"supplier_ids"`
}

// Lot is a single item suppliers bid on independently. Immutable once
// the auction is active except for administrative correction.
type Lot struct {
	LotID      string          `json:"lot_id"`
	AuctionID  string          `json:"auction_id"`
	Name       string          `json:"name"`
	Material   string          `json:"material"`
	Volume     int             `json:"volume"`
	Dimensions string          `json:"dimensions"`
	PriorCost  decimal.Decimal `json:"prior_cost"`
}

// BidComponents are the supplier-entered monetary parts of a bid. All
// monetary fields are denominated in Currency. Duty is either a flat
// charge or, when DutyPercent is true, a percentage applied to
// (amount + fob).
type BidComponents struct {
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FOB         decimal.Decimal `json:"fob"`
	Cartons     int             `json:"cartons"`
	Tax         decimal.Decimal `json:"tax"`
	Duty        decimal.Decimal `json:"duty"`
	DutyPercent bool            `json:"duty_percent"`
}

// Bid is one supplier's standing offer on a lot. At most one Active bid
// exists per (lot, supplier); updates mutate it in place. TotalCost is
// the landed cost in the auction's settlement currency and is the sole
// ranking criterion.
type Bid struct {
	BidID      string          `json:"bid_id"`
	AuctionID  string          `json:"auction_id"`
	LotID      string          `json:"lot_id"`
	SupplierID string          `json:"supplier_id"`
	Components BidComponents   `json:"components"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	Rank       int             `json:"rank"`
	Status     BidStatus       `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// EventType enumerates the push notifications emitted to auction rooms.
type EventType string

const (
	EventBidPlaced      EventType = "BidPlaced"
	EventRankingChanged EventType = "RankingChanged"
	EventStatusChanged  EventType = "StatusChanged"
	EventClockExtended  EventType = "ClockExtended"
)

// Event is a single room broadcast. Seq is per-auction and strictly
// increasing so subscribers can detect gaps and resync.
type Event struct {
	Type       EventType `json:"type"`
	AuctionID  string    `json:"auction_id"`
	Seq        uint64    `json:"seq"`
	ServerTime time.Time `json:"server_time"`
	Payload    any       `json:"payload,omitempty"`
}

// LotRanking is the ordered Active-bid snapshot for one lot.
type LotRanking struct {
	LotID string `json:"lot_id"`
	Bids  []Bid  `json:"bids"`
}

// AuctionSnapshot is the full pull-based recovery state for a room:
// everything a late or reconnecting subscriber needs to catch up.
type AuctionSnapshot struct {
	AuctionID        string        `json:"auction_id"`
	Status           AuctionStatus `json:"status"`
	RemainingSeconds int64         `json:"remaining_seconds"`
	ServerTime       time.Time     `json:"server_time"`
	Lots             []LotRanking  `json:"lots"`
}
