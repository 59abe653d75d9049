package events

import "silent-auction/utils"

// LogEmitter writes every event to the structured log. Masked events carry
// only the channel reference and notice, so logging them leaks nothing.
type LogEmitter struct{}

func (LogEmitter) Emit(event Event) {
	fields := map[string]any{
		"event": event.Name,
		"kind":  string(event.Kind),
	}
	switch {
	case event.Auction != nil:
		fields["auction_id"] = event.Auction.AuctionID
		fields["description"] = event.Auction.Description
		fields["closed"] = event.Auction.Closed
		if event.Bid != nil {
			fields["bidder"] = event.Bid.Bidder
			fields["amount"] = event.Bid.Amount
		}
	case event.Admin != nil:
		fields["identity"] = event.Admin.Identity
		fields["enrolled_by"] = event.Admin.EnrolledBy
	default:
		fields["channel_id"] = event.ChannelID
		fields["notice"] = event.Notice
	}
	utils.Info("ledger event", fields)
}
