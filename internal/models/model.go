package models

// Ledger object types, used as the key prefix for every stored record.
const (
	TypeAuction = "auction"
	TypeAdmin   = "admin"
	TypeChannel = "channel"
)

// OpenChannelID is the identifier of the channel every participant can read.
// It is a fixed well-known id; the open channel itself is never stored.
const OpenChannelID = "open"

// Bid represents the currently highest accepted bid on an auction.
// It is only ever embedded in an Auction; no bid history is kept.
type Bid struct {
	Bidder string `json:"bidder"`
	Amount int64  `json:"amount"`
}

// Auction represents an auction record on the ledger
type Auction struct {
	ObjectType   string `json:"objectType"`
	AuctionID    string `json:"auction_id"`
	Description  string `json:"description"`
	InitialPrice int64  `json:"initial_price"`
	LastBid      *Bid   `json:"last_bid,omitempty"`
	Creator      string `json:"creator"`
	Closed       bool   `json:"closed"`
	ChannelID    string `json:"channel_id"`
}

// Silent reports whether the auction lives in a members-only channel.
func (a Auction) Silent() bool {
	return a.ChannelID != OpenChannelID
}

// Admin represents an enrolled administrator. EnrolledBy is empty for the
// bootstrap administrator, who was auto-approved against an empty admin set.
type Admin struct {
	ObjectType string `json:"objectType"`
	Identity   string `json:"identity"`
	EnrolledBy string `json:"enrolled_by,omitempty"`
}

// Channel represents a silent (members-only) visibility channel. The open
// channel has no record; its id is OpenChannelID and everyone is a member.
type Channel struct {
	ObjectType string   `json:"objectType"`
	ChannelID  string   `json:"channel_id"`
	Creator    string   `json:"creator"`
	Members    []string `json:"members"`
}
