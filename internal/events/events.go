// Package events publishes outward notifications for every state-changing
// operation. An event is either fully detailed (open channel) or a masked
// notice that names the silent channel but never its auction's product or bid
// detail.
package events

import "silent-auction/internal/models"

//go:generate mockgen -package=events -destination=mock_emitter.go -source=events.go

// Event names
const (
	AuctionCreated = "auction.created"
	BidPlaced      = "bid.placed"
	AuctionClosed  = "auction.closed"
	AdminEnrolled  = "admin.enrolled"
	MemberAdded    = "member.added"
)

// Kind tags the event variant: full detail or masked notice.
type Kind string

const (
	KindFull   Kind = "full"
	KindMasked Kind = "masked"
)

// Event is the tagged union emitted to notification sinks. Exactly one of the
// payload groups is set: Auction (and optionally Bid) for full-detail events,
// ChannelID+Notice for masked ones, Admin for enrollment events.
type Event struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`

	Auction *models.Auction `json:"auction,omitempty"`
	Bid     *models.Bid     `json:"bid,omitempty"`
	Admin   *models.Admin   `json:"admin,omitempty"`

	ChannelID string `json:"channel_id,omitempty"`
	Notice    string `json:"notice,omitempty"`
}

// FullDetail builds a fully detailed event for an open-channel auction.
func FullDetail(name string, auction models.Auction) Event {
	return Event{Name: name, Kind: KindFull, Auction: &auction, Bid: auction.LastBid}
}

// MaskedNotice builds a masked event for a silent-channel auction. Only the
// channel reference and a free-form notice leave the channel.
func MaskedNotice(name, channelID, notice string) Event {
	return Event{Name: name, Kind: KindMasked, ChannelID: channelID, Notice: notice}
}

// AdminEvent builds the enrollment event; administrator records are public.
func AdminEvent(admin models.Admin) Event {
	return Event{Name: AdminEnrolled, Kind: KindFull, Admin: &admin}
}

// Emitter is the notification sink boundary. Emit must not block the caller
// for long and must never fail the enclosing operation: the state transition
// has already committed by the time an event is emitted.
type Emitter interface {
	Emit(event Event)
}

// Multi fans an event out to several sinks in order.
func Multi(emitters ...Emitter) Emitter {
	return multiEmitter(emitters)
}

type multiEmitter []Emitter

func (m multiEmitter) Emit(event Event) {
	for _, e := range m {
		e.Emit(event)
	}
}
