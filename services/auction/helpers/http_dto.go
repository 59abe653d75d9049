package helpers

import model "silent-auction/internal/models"

// Request/Response DTOs
type CreateAuctionRequest struct {
	Description  string `json:"description" binding:"required"`
	InitialPrice int64  `json:"initial_price" binding:"min=0"`
	Silent       bool   `json:"silent"`
}

type PlaceBidRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}

type CreateAdminRequest struct {
	Identity string `json:"identity" binding:"required"`
}

type AddMemberRequest struct {
	Identity string `json:"identity" binding:"required"`
}

type BidResponse struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

type AuctionResponse struct {
	AuctionID    string       `json:"auction_id"`
	Description  string       `json:"description"`
	InitialPrice int64        `json:"initial_price"`
	LastBid      *BidResponse `json:"last_bid,omitempty"`
	Creator      string       `json:"creator"`
	Closed       bool         `json:"closed"`
	Silent       bool         `json:"silent"`
	ChannelID    string       `json:"channel_id"`
}

type CloseAuctionResponse struct {
	AuctionID  string       `json:"auction_id"`
	WinningBid *BidResponse `json:"winning_bid,omitempty"`
}

type AdminResponse struct {
	Identity   string `json:"identity"`
	EnrolledBy string `json:"enrolled_by,omitempty"`
}

// NewAuctionResponse converts an auction record into its response shape.
func NewAuctionResponse(a model.Auction) AuctionResponse {
	return AuctionResponse{
		AuctionID:    a.AuctionID,
		Description:  a.Description,
		InitialPrice: a.InitialPrice,
		LastBid:      NewBidResponse(a.LastBid),
		Creator:      a.Creator,
		Closed:       a.Closed,
		Silent:       a.Silent(),
		ChannelID:    a.ChannelID,
	}
}

// NewBidResponse converts an embedded bid, passing nil through.
func NewBidResponse(b *model.Bid) *BidResponse {
	if b == nil {
		return nil
	}
	return &BidResponse{Bidder: b.Bidder, Amount: b.Amount}
}
