package handler

import (
	"fmt"
	"net/http"
	"time"

	"reverse-auction-coordinator/internal/broadcast"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/services/auction/helpers"
	"reverse-auction-coordinator/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AuctionServiceInterface is the request/response boundary the UI/API
// layer calls into.
type AuctionServiceInterface interface {
	SubmitBid(auctionID, lotID, supplierID string, components model.BidComponents) (model.Bid, error)
	UpdateBid(bidID string, components model.BidComponents) (model.Bid, error)
	WithdrawBid(bidID string) error
	Ranking(lotID string) ([]model.Bid, error)
	BidsBySupplier(supplierID string) ([]model.Bid, error)
	PauseAuction(auctionID string) (model.AuctionStatus, error)
	ResumeAuction(auctionID string) (model.AuctionStatus, error)
	EndAuction(auctionID string) (model.AuctionStatus, error)
	AuctionState(auctionID string) (model.AuctionSnapshot, error)
	Resync(auctionID string) (model.AuctionSnapshot, error)
	Subscribe(auctionID string) (*broadcast.Subscriber, error)
	Unsubscribe(auctionID string, sub *broadcast.Subscriber)
	Now() time.Time
}

type AuctionHandler struct {
	service  AuctionServiceInterface
	upgrader websocket.Upgrader
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin checks belong to the outer API layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// SubmitBidHandler handles POST /bids
func (h *AuctionHandler) SubmitBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "SubmitBidHandler", err)
		return
	}

	bid, err := h.service.SubmitBid(req.AuctionID, req.LotID, req.SupplierID, req.Components())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("SubmitBidHandler: failed to submit bid", map[string]any{
			"handler":     "SubmitBidHandler",
			"auction_id":  req.AuctionID,
			"lot_id":      req.LotID,
			"supplier_id": req.SupplierID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid submitted successfully")
	helpers.LogSuccess("SubmitBidHandler", "bid submitted successfully", map[string]any{
		"bid_id":      bid.BidID,
		"lot_id":      bid.LotID,
		"supplier_id": bid.SupplierID,
		"total_cost":  bid.TotalCost.String(),
		"rank":        bid.Rank,
	})
}

// UpdateBidHandler handles PUT /bids/:bid_id
func (h *AuctionHandler) UpdateBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	var req helpers.UpdateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateBidHandler", err)
		return
	}

	bid, err := h.service.UpdateBid(bidID, req.Components())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateBidHandler: failed to update bid", map[string]any{
			"bid_id": bidID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid updated successfully")
	helpers.LogSuccess("UpdateBidHandler", "bid updated successfully", map[string]any{
		"bid_id":     bid.BidID,
		"lot_id":     bid.LotID,
		"total_cost": bid.TotalCost.String(),
		"rank":       bid.Rank,
	})
}

// WithdrawBidHandler handles DELETE /bids/:bid_id
func (h *AuctionHandler) WithdrawBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	if err := h.service.WithdrawBid(bidID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WithdrawBidHandler: failed to withdraw bid", map[string]any{
			"bid_id": bidID,
			"error":  err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"bid_id": bidID}, "bid withdrawn successfully")
	helpers.LogSuccess("WithdrawBidHandler", "bid withdrawn successfully", map[string]any{"bid_id": bidID})
}

// GetRankingHandler handles GET /lots/:lot_id/ranking
func (h *AuctionHandler) GetRankingHandler(c *gin.Context) {
	lotID := c.Param("lot_id")

	bids, err := h.service.Ranking(lotID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetRankingHandler: error retrieving ranking", map[string]any{"lot_id": lotID, "error": err.Error()})
		return
	}

	resp := helpers.RankingResponse{
		LotID:      lotID,
		ServerTime: h.service.Now().UTC().Format(time.RFC3339),
		Bids:       helpers.ToBidResponses(bids),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "ranking retrieved successfully")
	helpers.LogSuccess("GetRankingHandler", "ranking retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(resp.Bids),
	})
}

// GetSupplierBidsHandler handles GET /suppliers/:supplier_id/bids
func (h *AuctionHandler) GetSupplierBidsHandler(c *gin.Context) {
	supplierID := c.Param("supplier_id")

	bids, err := h.service.BidsBySupplier(supplierID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetSupplierBidsHandler: error retrieving bids", map[string]any{"supplier_id": supplierID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetSupplierBidsHandler", "bids retrieved successfully", map[string]any{
		"supplier_id": supplierID,
		"count":       len(bids),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	snap, err := h.service.AuctionState(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, statusResponse(snap), "auction retrieved successfully")
}

// PauseAuctionHandler handles POST /auctions/:auction_id/pause
func (h *AuctionHandler) PauseAuctionHandler(c *gin.Context) {
	h.operatorTransition(c, "PauseAuctionHandler", h.service.PauseAuction, "auction paused")
}

// ResumeAuctionHandler handles POST /auctions/:auction_id/resume
func (h *AuctionHandler) ResumeAuctionHandler(c *gin.Context) {
	h.operatorTransition(c, "ResumeAuctionHandler", h.service.ResumeAuction, "auction resumed")
}

// EndAuctionHandler handles POST /auctions/:auction_id/end
func (h *AuctionHandler) EndAuctionHandler(c *gin.Context) {
	h.operatorTransition(c, "EndAuctionHandler", h.service.EndAuction, "auction ended")
}

func (h *AuctionHandler) operatorTransition(c *gin.Context, handlerName string, op func(string) (model.AuctionStatus, error), message string) {
	auctionID := c.Param("auction_id")

	status, err := op(auctionID)
	if err != nil {
		httpStatus, msg := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, httpStatus, fmt.Errorf("%s: %w", msg, err), msg)
		utils.Warn(handlerName+": transition failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{
		"auction_id":  auctionID,
		"status":      string(status),
		"server_time": h.service.Now().UTC().Format(time.RFC3339),
	}, message)
	helpers.LogSuccess(handlerName, message, map[string]any{"auction_id": auctionID, "status": string(status)})
}

// ResyncHandler handles GET /auctions/:auction_id/resync
func (h *AuctionHandler) ResyncHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	snap, err := h.service.Resync(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ResyncHandler: error building snapshot", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := helpers.ResyncResponse{
		AuctionID:        snap.AuctionID,
		Status:           string(snap.Status),
		RemainingSeconds: snap.RemainingSeconds,
		ServerTime:       snap.ServerTime.UTC().Format(time.RFC3339),
		Lots:             make([]helpers.RankingResponse, 0, len(snap.Lots)),
	}
	for _, lot := range snap.Lots {
		resp.Lots = append(resp.Lots, helpers.RankingResponse{
			LotID:      lot.LotID,
			ServerTime: resp.ServerTime,
			Bids:       helpers.ToBidResponses(lot.Bids),
		})
	}

	utils.JSONResponse(c, http.StatusOK, resp, "snapshot retrieved successfully")
	helpers.LogSuccess("ResyncHandler", "snapshot retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"lots":       len(resp.Lots),
	})
}

// SubscribeHandler handles GET /auctions/:auction_id/subscribe by
// upgrading to a WebSocket and streaming room events until either side
// disconnects. Push delivery is best-effort; a client that falls behind
// is dropped by the hub and recovers through ResyncHandler.
func (h *AuctionHandler) SubscribeHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	sub, err := h.service.Subscribe(auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.service.Unsubscribe(auctionID, sub)
		utils.Warn("SubscribeHandler: websocket upgrade failed", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	// Reader drains control frames and detects the client going away.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.service.Unsubscribe(auctionID, sub)
				return
			}
		}
	}()

	go func() {
		defer conn.Close()
		for ev := range sub.C {
			if err := conn.WriteJSON(ev); err != nil {
				h.service.Unsubscribe(auctionID, sub)
				return
			}
		}
	}()

	helpers.LogSuccess("SubscribeHandler", "subscriber joined", map[string]any{"auction_id": auctionID})
}

func statusResponse(snap model.AuctionSnapshot) helpers.AuctionStatusResponse {
	return helpers.AuctionStatusResponse{
		AuctionID:        snap.AuctionID,
		Status:           string(snap.Status),
		RemainingSeconds: snap.RemainingSeconds,
		ServerTime:       snap.ServerTime.UTC().Format(time.RFC3339),
	}
}
