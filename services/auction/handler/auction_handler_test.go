package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reverse-auction-coordinator/internal/auctionerrors"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/services/auction/helpers"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) (*gin.Engine, *MockAuctionServiceInterface) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockService := NewMockAuctionServiceInterface(ctrl)
	h := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids", h.SubmitBidHandler)
	router.PUT("/bids/:bid_id", h.UpdateBidHandler)
	router.DELETE("/bids/:bid_id", h.WithdrawBidHandler)
	router.GET("/lots/:lot_id/ranking", h.GetRankingHandler)
	router.GET("/suppliers/:supplier_id/bids", h.GetSupplierBidsHandler)
	router.POST("/auctions/:auction_id/pause", h.PauseAuctionHandler)
	router.POST("/auctions/:auction_id/resume", h.ResumeAuctionHandler)
	router.GET("/auctions/:auction_id/resync", h.ResyncHandler)
	return router, mockService
}

func doRequest(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

func sampleBid(rank int, totalCost int64) model.Bid {
	return model.Bid{
		BidID:      uuid.NewString(),
		AuctionID:  "auction1",
		LotID:      "lot1",
		SupplierID: "supplier1",
		Components: model.BidComponents{
			Amount:   decimal.NewFromInt(totalCost),
			Currency: "USD",
		},
		TotalCost: decimal.NewFromInt(totalCost),
		Rank:      rank,
		Status:    model.BidActive,
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}
}

// Test SubmitBidHandler
func TestSubmitBidHandler(t *testing.T) {
	validRequest := helpers.PlaceBidRequest{
		AuctionID:  "auction1",
		LotID:      "lot1",
		SupplierID: "supplier1",
		Amount:     100,
		Currency:   "USD",
	}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:        "success_valid_bid",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(sampleBid(1, 100), nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid submitted successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "bid_id should be a valid UUID")
				require.Equal(t, "lot1", data["lot_id"])
				require.Equal(t, 100.0, data["total_cost"])
				require.Equal(t, 1.0, data["rank"])
				require.Equal(t, "Active", data["status"])
				_, err := time.Parse(time.RFC3339, data["created_at"].(string))
				require.NoError(t, err)
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_lot_id",
			requestBody: helpers.PlaceBidRequest{
				AuctionID: "auction1", SupplierID: "supplier1", Amount: 100, Currency: "USD",
			},
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "negative_amount",
			requestBody: helpers.PlaceBidRequest{
				AuctionID: "auction1", LotID: "lot1", SupplierID: "supplier1", Amount: -5, Currency: "USD",
			},
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "auction_not_active",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrAuctionNotActive))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction is not accepting bids",
		},
		{
			name:        "duplicate_active_bid",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrDuplicateActiveBid))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "active bid already exists, update it instead",
		},
		{
			name:        "reserve_exceeded",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrReserveExceeded))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "total cost exceeds the reserve price",
		},
		{
			name:        "unknown_currency",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrUnknownCurrency))
			},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "unknown currency code",
		},
		{
			name:        "lot_busy",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					SubmitBid("auction1", "lot1", "supplier1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrLotBusy))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedMsg:    "lot is busy, retry shortly",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, mockService := setupRouter(t)
			tc.mockSetup(mockService)

			resp, w := doRequest(t, router, http.MethodPost, "/bids", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test UpdateBidHandler
func TestUpdateBidHandler(t *testing.T) {
	validRequest := helpers.UpdateBidRequest{Amount: 80, Currency: "USD"}

	tests := []struct {
		name           string
		bidID          string
		requestBody    any
		mockSetup      func(m *MockAuctionServiceInterface)
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			bidID:       "bid1",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					UpdateBid("bid1", gomock.Any()).
					Return(sampleBid(1, 80), nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "bid updated successfully",
		},
		{
			name:        "not_improvement",
			bidID:       "bid1",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					UpdateBid("bid1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrBidNotImprovement))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid must improve on the stored total cost",
		},
		{
			name:        "bid_not_found",
			bidID:       "missing",
			requestBody: validRequest,
			mockSetup: func(m *MockAuctionServiceInterface) {
				m.EXPECT().
					UpdateBid("missing", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("service: %w", auctionerrors.ErrBidNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "bid not found",
		},
		{
			name:           "invalid_payload",
			bidID:          "bid1",
			requestBody:    helpers.UpdateBidRequest{Amount: 80},
			mockSetup:      func(m *MockAuctionServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router, mockService := setupRouter(t)
			tc.mockSetup(mockService)

			resp, w := doRequest(t, router, http.MethodPut, "/bids/"+tc.bidID, tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])
		})
	}
}

// Test WithdrawBidHandler
func TestWithdrawBidHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().WithdrawBid("bid1").Return(nil)

		resp, w := doRequest(t, router, http.MethodDelete, "/bids/bid1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "bid withdrawn successfully", resp["message"])
	})

	t.Run("not_found", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().WithdrawBid("missing").Return(fmt.Errorf("service: %w", auctionerrors.ErrBidNotFound))

		_, w := doRequest(t, router, http.MethodDelete, "/bids/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test GetRankingHandler
func TestGetRankingHandler(t *testing.T) {
	t.Run("ordered_bids_with_server_time", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().Ranking("lot1").Return([]model.Bid{sampleBid(1, 90), sampleBid(2, 100)}, nil)
		mockService.EXPECT().Now().Return(testNow)

		resp, w := doRequest(t, router, http.MethodGet, "/lots/lot1/ranking", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "lot1", data["lot_id"])
		require.Equal(t, testNow.Format(time.RFC3339), data["server_time"])

		bids := data["bids"].([]any)
		require.Len(t, bids, 2)
		first := bids[0].(map[string]any)
		require.Equal(t, 1.0, first["rank"])
		require.Equal(t, 90.0, first["total_cost"])
	})

	t.Run("lot_not_found", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().Ranking("missing").Return(nil, fmt.Errorf("service: %w", auctionerrors.ErrLotNotFound))

		_, w := doRequest(t, router, http.MethodGet, "/lots/missing/ranking", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test pause/resume handlers
func TestPauseResumeHandlers(t *testing.T) {
	t.Run("pause_success", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().PauseAuction("auction1").Return(model.StatusPaused, nil)
		mockService.EXPECT().Now().Return(testNow)

		resp, w := doRequest(t, router, http.MethodPost, "/auctions/auction1/pause", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].(map[string]any)
		require.Equal(t, "Paused", data["status"])
		require.Equal(t, testNow.Format(time.RFC3339), data["server_time"])
	})

	t.Run("resume_invalid_transition", func(t *testing.T) {
		router, mockService := setupRouter(t)
		mockService.EXPECT().
			ResumeAuction("auction1").
			Return(model.StatusEnded, fmt.Errorf("service: %w", auctionerrors.ErrInvalidTransition))

		_, w := doRequest(t, router, http.MethodPost, "/auctions/auction1/resume", nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// Test ResyncHandler
func TestResyncHandler(t *testing.T) {
	router, mockService := setupRouter(t)
	mockService.EXPECT().Resync("auction1").Return(model.AuctionSnapshot{
		AuctionID:        "auction1",
		Status:           model.StatusActive,
		RemainingSeconds: 300,
		ServerTime:       testNow,
		Lots: []model.LotRanking{
			{LotID: "lot1", Bids: []model.Bid{sampleBid(1, 90)}},
			{LotID: "lot2"},
		},
	}, nil)

	resp, w := doRequest(t, router, http.MethodGet, "/auctions/auction1/resync", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp["data"].(map[string]any)
	require.Equal(t, "Active", data["status"])
	require.Equal(t, 300.0, data["remaining_seconds"])
	require.Equal(t, testNow.Format(time.RFC3339), data["server_time"])
	require.Len(t, data["lots"].([]any), 2)
}
