package server

import (
	auction "reverse-auction-coordinator/internal/auctionService"
	handler "reverse-auction-coordinator/services/auction/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the coordinator
func SetupRouter(auctionService *auction.AuctionService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(auctionService)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.SubmitBidHandler)
		bids.PUT("/:bid_id", auctionHandler.UpdateBidHandler)
		bids.DELETE("/:bid_id", auctionHandler.WithdrawBidHandler)
	}

	lots := router.Group("/lots")
	{
		lots.GET("/:lot_id/ranking", auctionHandler.GetRankingHandler)
	}

	auctions := router.Group("/auctions")
	{
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/pause", auctionHandler.PauseAuctionHandler)
		auctions.POST("/:auction_id/resume", auctionHandler.ResumeAuctionHandler)
		auctions.POST("/:auction_id/end", auctionHandler.EndAuctionHandler)
		auctions.GET("/:auction_id/resync", auctionHandler.ResyncHandler)
		auctions.GET("/:auction_id/subscribe", auctionHandler.SubscribeHandler)
	}

	suppliers := router.Group("/suppliers")
	{
		suppliers.GET("/:supplier_id/bids", auctionHandler.GetSupplierBidsHandler)
	}

	return router
}
