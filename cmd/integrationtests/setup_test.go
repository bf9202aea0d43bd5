package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "reverse-auction-coordinator/internal/auctionService"
	"reverse-auction-coordinator/internal/clock"
	"reverse-auction-coordinator/internal/currency"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/internal/repository"
	"reverse-auction-coordinator/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

// TestEnv wires the full stack behind the real router: in-memory
// store, static rates, a settable time source and a fast timer task.
type TestEnv struct {
	Router *gin.Engine
	Time   *clock.FixedTime
	Svc    *auction.AuctionService
}

// SetupTestEnv starts a registered auction whose start time has
// already passed, so the timer task activates it on its first tick.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	rates := currency.NewStaticRates("USD", map[string]float64{"EUR": 0.9})
	ft := clock.NewFixedTime(testStart)

	svc := auction.NewAuctionService(store, rates, ft, 5*time.Millisecond, 0)
	t.Cleanup(svc.Close)

	a := model.Auction{
		AuctionID:          "auction1",
		Title:              "integration auction",
		ReservePrice:       decimal.NewFromInt(1000),
		SettlementCurrency: "USD",
		StartTime:          testStart,
		EndTime:            testStart.Add(10 * time.Minute),
		AutoExtend:         true,
		ExtensionWindow:    3 * time.Minute,
		ExtensionDuration:  3 * time.Minute,
	}
	lots := []model.Lot{
		{LotID: "lot1", AuctionID: "auction1", Name: "brackets", Material: "steel"},
		{LotID: "lot2", AuctionID: "auction1", Name: "housings", Material: "aluminium"},
	}
	require.NoError(t, svc.RegisterAuction(a, lots))

	env := &TestEnv{Router: server.SetupRouter(svc), Time: ft, Svc: svc}
	env.WaitForStatus(t, "Active")
	return env
}

// ExecuteRequest executes an HTTP request and returns the parsed
// response envelope with the recorder.
func (e *TestEnv) ExecuteRequest(t *testing.T, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
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
	e.Router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return resp, w
}

// Data unwraps the envelope's data object.
func Data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	data, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return data
}

// WaitForStatus polls the auction view until the timer task has driven
// it to the wanted status.
func (e *TestEnv) WaitForStatus(t *testing.T, want string) {
	t.Helper()
	require.Eventually(t, func() bool {
		resp, w := e.ExecuteRequest(t, "GET", "/auctions/auction1", nil)
		return w.Code == 200 && Data(t, resp)["status"] == want
	}, 2*time.Second, 5*time.Millisecond)
}
