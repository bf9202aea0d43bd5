package helpers

import (
	"time"

	"reverse-auction-coordinator/internal/currency"
	model "reverse-auction-coordinator/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs

type PlaceBidRequest struct {
	AuctionID   string  `json:"auction_id" binding:"required"`
	LotID       string  `json:"lot_id" binding:"required"`
	SupplierID  string  `json:"supplier_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required"`
	FOB         float64 `json:"fob" binding:"gte=0"`
	Cartons     int     `json:"cartons" binding:"gte=0"`
	Tax         float64 `json:"tax" binding:"gte=0"`
	Duty        float64 `json:"duty" binding:"gte=0"`
	DutyPercent bool    `json:"duty_percent"`
}

type UpdateBidRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Currency    string  `json:"currency" binding:"required"`
	FOB         float64 `json:"fob" binding:"gte=0"`
	Cartons     int     `json:"cartons" binding:"gte=0"`
	Tax         float64 `json:"tax" binding:"gte=0"`
	Duty        float64 `json:"duty" binding:"gte=0"`
	DutyPercent bool    `json:"duty_percent"`
}

type BidResponse struct {
	BidID       string  `json:"bid_id"`
	AuctionID   string  `json:"auction_id"`
	LotID       string  `json:"lot_id"`
	SupplierID  string  `json:"supplier_id"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	FOB         float64 `json:"fob"`
	Cartons     int     `json:"cartons"`
	Tax         float64 `json:"tax"`
	Duty        float64 `json:"duty"`
	DutyPercent bool    `json:"duty_percent"`
	TotalCost   float64 `json:"total_cost"`
	Rank        int     `json:"rank"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type RankingResponse struct {
	LotID      string        `json:"lot_id"`
	ServerTime string        `json:"server_time"`
	Bids       []BidResponse `json:"bids"`
}

type AuctionStatusResponse struct {
	AuctionID        string `json:"auction_id"`
	Status           string `json:"status"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	ServerTime       string `json:"server_time"`
}

type ResyncResponse struct {
	AuctionID        string            `json:"auction_id"`
	Status           string            `json:"status"`
	RemainingSeconds int64             `json:"remaining_seconds"`
	ServerTime       string            `json:"server_time"`
	Lots             []RankingResponse `json:"lots"`
}

// Components converts the request's float inputs to decimal components.
func (r PlaceBidRequest) Components() model.BidComponents {
	return components(r.Amount, r.Currency, r.FOB, r.Cartons, r.Tax, r.Duty, r.DutyPercent)
}

// Components converts the request's float inputs to decimal components.
func (r UpdateBidRequest) Components() model.BidComponents {
	return components(r.Amount, r.Currency, r.FOB, r.Cartons, r.Tax, r.Duty, r.DutyPercent)
}

func components(amount float64, code string, fob float64, cartons int, tax, duty float64, dutyPercent bool) model.BidComponents {
	return model.BidComponents{
		Amount:      decimal.NewFromFloat(amount),
		Currency:    code,
		FOB:         decimal.NewFromFloat(fob),
		Cartons:     cartons,
		Tax:         decimal.NewFromFloat(tax),
		Duty:        decimal.NewFromFloat(duty),
		DutyPercent: dutyPercent,
	}
}

// ToBidResponse renders a bid for clients. Monetary values are rounded
// to two decimals here, at display time only.
func ToBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:       b.BidID,
		AuctionID:   b.AuctionID,
		LotID:       b.LotID,
		SupplierID:  b.SupplierID,
		Amount:      currency.Display(b.Components.Amount).InexactFloat64(),
		Currency:    b.Components.Currency,
		FOB:         currency.Display(b.Components.FOB).InexactFloat64(),
		Cartons:     b.Components.Cartons,
		Tax:         currency.Display(b.Components.Tax).InexactFloat64(),
		Duty:        currency.Display(b.Components.Duty).InexactFloat64(),
		DutyPercent: b.Components.DutyPercent,
		TotalCost:   currency.Display(b.TotalCost).InexactFloat64(),
		Rank:        b.Rank,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ToBidResponses renders an ordered bid sequence.
func ToBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, ToBidResponse(b))
	}
	return out
}
