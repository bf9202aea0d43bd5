package main

import (
	"fmt"
	"os"
	"time"

	"reverse-auction-coordinator/config"
	auction "reverse-auction-coordinator/internal/auctionService"
	"reverse-auction-coordinator/internal/clock"
	"reverse-auction-coordinator/internal/currency"
	model "reverse-auction-coordinator/internal/models"
	"reverse-auction-coordinator/internal/repository"
	"reverse-auction-coordinator/internal/server"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	store := repository.NewMemoryStore()
	rates := currency.NewStaticRates(cfg.Currency.Reference, cfg.Currency.Rates)
	timeSource := clock.NewSystemTime()

	auctionSvc := auction.NewAuctionService(store, rates, timeSource, cfg.Clock.TickInterval, cfg.Ledger.LockWait)
	defer auctionSvc.Close()

	if err := prepopulateAuction(auctionSvc, cfg, timeSource); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to seed sample auction: %v\n", err)
		os.Exit(1)
	}

	router := server.SetupRouter(auctionSvc)

	fmt.Printf("Starting auction coordinator on %s...\n", cfg.Server.Port)
	if err := router.Run(cfg.Server.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateAuction registers a sample auction so the API is usable
// out of the box; real auctions arrive from the scheduling layer.
func prepopulateAuction(svc *auction.AuctionService, cfg *config.Config, ts clock.TimeSource) error {
	now := ts.Now()
	a := model.Auction{
		AuctionID:          "auction1",
		Title:              "Sample reverse auction",
		ReservePrice:       decimal.NewFromInt(10000),
		SettlementCurrency: cfg.Currency.Reference,
		StartTime:          now,
		EndTime:            now.Add(30 * time.Minute),
		AutoExtend:         true,
		ExtensionWindow:    cfg.Clock.ExtensionWindow,
		ExtensionDuration:  cfg.Clock.ExtensionDuration,
		LotIDs:             []string{"lot1", "lot2"},
		SupplierIDs:        []string{"supplier1", "supplier2", "supplier3"},
	}
	lots := []model.Lot{
		{LotID: "lot1", AuctionID: a.AuctionID, Name: "Steel brackets", Material: "steel", Volume: 5000, Dimensions: "120x80x40", PriorCost: decimal.NewFromInt(9000)},
		{LotID: "lot2", AuctionID: a.AuctionID, Name: "Aluminium housings", Material: "aluminium", Volume: 2000, Dimensions: "60x60x30", PriorCost: decimal.NewFromInt(7000)},
	}
	return svc.RegisterAuction(a, lots)
}
