package server

import (
	"github.com/gin-gonic/gin"

	auction "silent-auction/internal/auctionService"
	"silent-auction/internal/events"
	"silent-auction/internal/identity"
	handler "silent-auction/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc *auction.AuctionService, resolver identity.Resolver, hub *events.Hub) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware(resolver))

	auctionHandler := handler.NewAuctionHandler(svc)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.POST("/:auction_id/bids", auctionHandler.PlaceBidHandler)
		auctions.POST("/:auction_id/close", auctionHandler.CloseAuctionHandler)
		auctions.POST("/:auction_id/members", auctionHandler.AddMemberHandler)
	}

	admins := router.Group("/admins")
	{
		admins.POST("", auctionHandler.CreateAdminHandler)
	}

	router.GET("/events", StreamEventsHandler(hub))

	return router
}
