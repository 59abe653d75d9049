package auction

import (
	"encoding/json"
	"fmt"

	"silent-auction/internal/access"
	"silent-auction/internal/auctionerrors"
	"silent-auction/internal/channel"
	"silent-auction/internal/events"
	"silent-auction/internal/ledger"
	"silent-auction/internal/models"
	"silent-auction/utils"
)

// AuctionService implements the auction state machine: registry operations,
// bid validation, administrator enrollment and channel membership management.
// Every operation runs as one serializable store transaction; notifications
// are emitted only after the transaction commits.
type AuctionService struct {
	store   ledger.Store
	emitter events.Emitter
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(store ledger.Store, emitter events.Emitter) *AuctionService {
	return &AuctionService{
		store:   store,
		emitter: emitter,
	}
}

// CreateAuction registers a new auction. With the silent flag the caller must
// be an administrator and the auction is placed in a freshly allocated silent
// channel whose only member is the caller; otherwise it lives in the open
// channel.
func (s *AuctionService) CreateAuction(caller, description string, initialPrice int64, silent bool) (models.Auction, error) {
	if caller == "" || description == "" {
		return models.Auction{}, fmt.Errorf("service: missing caller or description: %w", auctionerrors.ErrInvalidRequest)
	}
	if initialPrice < 0 {
		return models.Auction{}, fmt.Errorf("service: negative initial price: %w", auctionerrors.ErrInvalidRequest)
	}

	var created models.Auction
	err := s.store.Update(func(tx ledger.Tx) error {
		callerIsAdmin, err := access.IsAdmin(tx, caller)
		if err != nil {
			return err
		}
		channelID, err := channel.Resolve(tx, callerIsAdmin, silent, caller)
		if err != nil {
			return err
		}

		created = models.Auction{
			ObjectType:   models.TypeAuction,
			AuctionID:    utils.GenerateID(models.TypeAuction),
			Description:  description,
			InitialPrice: initialPrice,
			Creator:      caller,
			ChannelID:    channelID,
		}
		return tx.Put(ledger.Key(models.TypeAuction, created.AuctionID), created)
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}

	s.notify(events.AuctionCreated, created, "a silent auction was opened")
	return created, nil
}

// GetAuction returns the auction iff it exists and the caller may observe its
// channel. Absence and lack of access are the same error on purpose.
func (s *AuctionService) GetAuction(caller, auctionID string) (models.Auction, error) {
	var found models.Auction
	err := s.store.View(func(tx ledger.ReadTx) error {
		var err error
		found, err = lookupVisible(tx, caller, auctionID)
		return err
	})
	if err != nil {
		return models.Auction{}, err
	}
	return found, nil
}

// ListAuctions returns every auction the caller may observe.
func (s *AuctionService) ListAuctions(caller string) ([]models.Auction, error) {
	visible := make([]models.Auction, 0)
	err := s.store.View(func(tx ledger.ReadTx) error {
		return eachAuction(tx, func(a models.Auction) error {
			member, err := channel.IsMember(tx, a.ChannelID, caller)
			if err != nil {
				return err
			}
			if member {
				visible = append(visible, a)
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return visible, nil
}

// PlaceBid validates a bid against the auction's current state and, when
// accepted, replaces the auction's last bid. Amounts must strictly exceed the
// previous bid, or the initial price if no bid was placed yet; ties are
// rejected. Any rejection leaves the auction untouched.
func (s *AuctionService) PlaceBid(caller, auctionID string, amount int64) (models.Bid, error) {
	if caller == "" || auctionID == "" {
		return models.Bid{}, fmt.Errorf("service: missing caller or auction id: %w", auctionerrors.ErrInvalidRequest)
	}

	var updated models.Auction
	err := s.store.Update(func(tx ledger.Tx) error {
		a, err := lookupVisible(tx, caller, auctionID)
		if err != nil {
			return err
		}
		if a.Closed {
			return closedErr(a)
		}

		floor := a.InitialPrice
		if a.LastBid != nil {
			floor = a.LastBid.Amount
		}
		if amount <= floor {
			if a.Silent() {
				return fmt.Errorf("service: bid of %d on silent auction %s does not exceed the current minimum: %w",
					amount, a.AuctionID, auctionerrors.ErrBidTooLow)
			}
			return fmt.Errorf("service: bid of %d on auction %s must exceed %d: %w",
				amount, a.AuctionID, floor, auctionerrors.ErrBidTooLow)
		}

		a.LastBid = &models.Bid{Bidder: caller, Amount: amount}
		if err := tx.Put(ledger.Key(models.TypeAuction, a.AuctionID), a); err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return models.Bid{}, err
	}

	s.notify(events.BidPlaced, updated, "a bid was accepted on a silent auction")
	return *updated.LastBid, nil
}

// CloseAuction closes the auction and returns the winning bid, or nil if no
// bid was ever accepted. Only the creator may close; closing is one-way.
func (s *AuctionService) CloseAuction(caller, auctionID string) (*models.Bid, error) {
	var closed models.Auction
	err := s.store.Update(func(tx ledger.Tx) error {
		a, err := lookupVisible(tx, caller, auctionID)
		if err != nil {
			return err
		}
		if caller != a.Creator {
			return fmt.Errorf("service: only the creator may close auction %s: %w", a.AuctionID, auctionerrors.ErrPermissionDenied)
		}
		if a.Closed {
			return closedErr(a)
		}

		a.Closed = true
		if err := tx.Put(ledger.Key(models.TypeAuction, a.AuctionID), a); err != nil {
			return err
		}
		closed = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(events.AuctionClosed, closed, "a silent auction was closed")
	return closed.LastBid, nil
}

// CreateAdmin enrolls a new administrator. The first enrollment ever is
// auto-approved; all later ones require the caller to already be enrolled.
func (s *AuctionService) CreateAdmin(caller, newIdentity string) (models.Admin, error) {
	var admin models.Admin
	err := s.store.Update(func(tx ledger.Tx) error {
		var err error
		admin, err = access.Enroll(tx, caller, newIdentity)
		return err
	})
	if err != nil {
		return models.Admin{}, fmt.Errorf("service: failed to enroll administrator: %w", err)
	}

	s.emitter.Emit(events.AdminEvent(admin))
	return admin, nil
}

// AddMember grants newMember visibility of a silent auction's channel. The
// caller must be an administrator AND the auction's creator, and the auction
// must still be open. The request is authorized in the open scope while its
// effect lands in the silent channel.
func (s *AuctionService) AddMember(caller, auctionID, newMember string) error {
	if newMember == "" {
		return fmt.Errorf("service: missing member identity: %w", auctionerrors.ErrInvalidRequest)
	}

	var target models.Auction
	err := s.store.Update(func(tx ledger.Tx) error {
		callerIsAdmin, err := access.IsAdmin(tx, caller)
		if err != nil {
			return err
		}
		if !callerIsAdmin {
			return fmt.Errorf("service: %s is not an administrator: %w", caller, auctionerrors.ErrPermissionDenied)
		}

		a, err := lookupVisible(tx, caller, auctionID)
		if err != nil {
			return err
		}
		if a.Closed {
			return closedErr(a)
		}
		if caller != a.Creator {
			return fmt.Errorf("service: only the creator may add members to auction %s: %w", a.AuctionID, auctionerrors.ErrPermissionDenied)
		}
		if !a.Silent() {
			return fmt.Errorf("service: auction %s is not in a silent channel: %w", a.AuctionID, auctionerrors.ErrInvalidRequest)
		}

		if err := channel.AddMember(tx, a.ChannelID, newMember); err != nil {
			return err
		}
		target = a
		return nil
	})
	if err != nil {
		return err
	}

	s.emitter.Emit(events.MaskedNotice(events.MemberAdded, target.ChannelID, "a member was added to the channel"))
	return nil
}

// notify emits the full-detail event for open-channel auctions and the masked
// notice for silent ones.
func (s *AuctionService) notify(name string, a models.Auction, notice string) {
	if a.Silent() {
		s.emitter.Emit(events.MaskedNotice(name, a.ChannelID, notice))
		return
	}
	s.emitter.Emit(events.FullDetail(name, a))
}

// lookupVisible fetches an auction with the visibility check applied. A
// missing auction and one the caller cannot observe produce the exact same
// error, so silent auctions' existence never leaks.
func lookupVisible(tx ledger.ReadTx, caller, auctionID string) (models.Auction, error) {
	var a models.Auction
	found, err := tx.Get(ledger.Key(models.TypeAuction, auctionID), &a)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: lookup auction %s: %w", auctionID, err)
	}
	if found {
		member, err := channel.IsMember(tx, a.ChannelID, caller)
		if err != nil {
			return models.Auction{}, fmt.Errorf("service: membership check for auction %s: %w", auctionID, err)
		}
		if member {
			return a, nil
		}
	}
	return models.Auction{}, fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNoAccess)
}

// closedErr reports the already-closed condition, masking auction detail when
// the auction lives in a silent channel.
func closedErr(a models.Auction) error {
	if a.Silent() {
		return fmt.Errorf("service: silent auction %s: %w", a.AuctionID, auctionerrors.ErrAuctionClosed)
	}
	return fmt.Errorf("service: auction %s (%s): %w", a.AuctionID, a.Description, auctionerrors.ErrAuctionClosed)
}

// eachAuction decodes every auction record for the caller.
func eachAuction(tx ledger.ReadTx, each func(models.Auction) error) error {
	return tx.List(models.TypeAuction, func(key string, raw []byte) error {
		var a models.Auction
		if err := json.Unmarshal(raw, &a); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		return each(a)
	})
}
