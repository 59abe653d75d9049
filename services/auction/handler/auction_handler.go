package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	model "silent-auction/internal/models"
	"silent-auction/services/auction/helpers"
	"silent-auction/utils"
)

//go:generate mockgen -package=handler -destination=mock_service.go -source=auction_handler.go

type AuctionServiceInterface interface {
	CreateAuction(caller, description string, initialPrice int64, silent bool) (model.Auction, error)
	GetAuction(caller, auctionID string) (model.Auction, error)
	ListAuctions(caller string) ([]model.Auction, error)
	PlaceBid(caller, auctionID string, amount int64) (model.Bid, error)
	CloseAuction(caller, auctionID string) (*model.Bid, error)
	CreateAdmin(caller, newIdentity string) (model.Admin, error)
	AddMember(caller, auctionID, newMember string) error
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	caller := helpers.Caller(c)
	created, err := h.service.CreateAuction(caller, req.Description, req.InitialPrice, req.Silent)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler": "CreateAuctionHandler",
			"caller":  caller,
			"silent":  req.Silent,
			"error":   err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(created), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": created.AuctionID,
		"caller":     caller,
		"silent":     created.Silent(),
	})
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	caller := helpers.Caller(c)
	auctions, err := h.service.ListAuctions(caller)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"caller": caller, "error": err.Error()})
		return
	}

	resp := make([]helpers.AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		resp = append(resp, helpers.NewAuctionResponse(a))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"caller": caller,
		"count":  len(resp),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	caller := helpers.Caller(c)
	auctionID := c.Param("auction_id")

	found, err := h.service.GetAuction(caller, auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Info("GetAuctionHandler: auction not returned", map[string]any{"auction_id": auctionID, "caller": caller})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(found), "auction retrieved successfully")
	helpers.LogSuccess("GetAuctionHandler", "auction retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"caller":     caller,
	})
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	caller := helpers.Caller(c)
	auctionID := c.Param("auction_id")

	bid, err := h.service.PlaceBid(caller, auctionID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": auctionID,
			"caller":     caller,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(&bid), "bid accepted successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted successfully", map[string]any{
		"auction_id": auctionID,
		"bidder":     bid.Bidder,
		"amount":     bid.Amount,
	})
}

// CloseAuctionHandler handles POST /auctions/:auction_id/close
func (h *AuctionHandler) CloseAuctionHandler(c *gin.Context) {
	caller := helpers.Caller(c)
	auctionID := c.Param("auction_id")

	winning, err := h.service.CloseAuction(caller, auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CloseAuctionHandler: failed to close auction", map[string]any{
			"auction_id": auctionID,
			"caller":     caller,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.CloseAuctionResponse{
		AuctionID:  auctionID,
		WinningBid: helpers.NewBidResponse(winning),
	}

	utils.JSONResponse(c, http.StatusOK, resp, "auction closed successfully")
	helpers.LogSuccess("CloseAuctionHandler", "auction closed successfully", map[string]any{
		"auction_id": auctionID,
		"caller":     caller,
		"has_winner": winning != nil,
	})
}

// CreateAdminHandler handles POST /admins
func (h *AuctionHandler) CreateAdminHandler(c *gin.Context) {
	var req helpers.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAdminHandler", err)
		return
	}

	caller := helpers.Caller(c)
	admin, err := h.service.CreateAdmin(caller, req.Identity)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAdminHandler: failed to enroll administrator", map[string]any{
			"handler":  "CreateAdminHandler",
			"caller":   caller,
			"identity": req.Identity,
			"error":    err.Error(),
		})
		return
	}

	resp := helpers.AdminResponse{Identity: admin.Identity, EnrolledBy: admin.EnrolledBy}
	utils.JSONResponse(c, http.StatusCreated, resp, "administrator enrolled successfully")
	helpers.LogSuccess("CreateAdminHandler", "administrator enrolled successfully", map[string]any{
		"identity":    admin.Identity,
		"enrolled_by": admin.EnrolledBy,
	})
}

// AddMemberHandler handles POST /auctions/:auction_id/members
func (h *AuctionHandler) AddMemberHandler(c *gin.Context) {
	var req helpers.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AddMemberHandler", err)
		return
	}

	caller := helpers.Caller(c)
	auctionID := c.Param("auction_id")

	if err := h.service.AddMember(caller, auctionID, req.Identity); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AddMemberHandler: failed to add member", map[string]any{
			"auction_id": auctionID,
			"caller":     caller,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, nil, "member added successfully")
	helpers.LogSuccess("AddMemberHandler", "member added successfully", map[string]any{
		"auction_id": auctionID,
		"caller":     caller,
	})
}
