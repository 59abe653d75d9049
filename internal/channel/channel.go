// Package channel implements the visibility model: one open channel readable
// by everyone, plus silent channels that restrict reads and writes to an
// explicit membership list.
package channel

import (
	"fmt"

	"github.com/samber/lo"

	"silent-auction/internal/auctionerrors"
	"silent-auction/internal/ledger"
	"silent-auction/internal/models"
	"silent-auction/utils"
)

// Resolve decides which channel a new auction is written to. Without the
// silent flag it is always the open channel. With it, only an administrator
// may proceed, and a fresh silent channel is allocated with the creator as
// its sole member. Every successful silent resolution allocates a distinct
// channel; channels are never reused.
func Resolve(tx ledger.Tx, callerIsAdmin, silent bool, creator string) (string, error) {
	if !silent {
		return models.OpenChannelID, nil
	}
	if !callerIsAdmin {
		return "", fmt.Errorf("channel: caller %s is not an administrator: %w", creator, auctionerrors.ErrPermissionDenied)
	}
	return Allocate(tx, creator)
}

// Allocate creates a new silent channel whose membership is just the creator.
func Allocate(tx ledger.Tx, creator string) (string, error) {
	ch := models.Channel{
		ObjectType: models.TypeChannel,
		ChannelID:  utils.GenerateID(models.TypeChannel),
		Creator:    creator,
		Members:    []string{creator},
	}
	if err := tx.Put(ledger.Key(models.TypeChannel, ch.ChannelID), ch); err != nil {
		return "", fmt.Errorf("channel: allocate: %w", err)
	}
	return ch.ChannelID, nil
}

// IsMember reports whether identity may observe records in the given channel.
// The open channel is readable by everyone; a silent channel only by its
// membership list. An unknown channel id is treated as inaccessible.
func IsMember(tx ledger.ReadTx, channelID, identity string) (bool, error) {
	if channelID == models.OpenChannelID {
		return true, nil
	}

	var ch models.Channel
	found, err := tx.Get(ledger.Key(models.TypeChannel, channelID), &ch)
	if err != nil {
		return false, fmt.Errorf("channel: lookup %s: %w", channelID, err)
	}
	if !found {
		return false, nil
	}
	return lo.Contains(ch.Members, identity), nil
}

// AddMember appends identity to a silent channel's membership list. Adding an
// existing member is a no-op. Membership is append-only; removal is not
// modeled.
func AddMember(tx ledger.Tx, channelID, identity string) error {
	if channelID == models.OpenChannelID {
		return fmt.Errorf("channel: the open channel has no membership list: %w", auctionerrors.ErrInvalidRequest)
	}

	key := ledger.Key(models.TypeChannel, channelID)
	var ch models.Channel
	found, err := tx.Get(key, &ch)
	if err != nil {
		return fmt.Errorf("channel: lookup %s: %w", channelID, err)
	}
	if !found {
		return fmt.Errorf("channel: unknown channel %s: %w", channelID, auctionerrors.ErrInvalidRequest)
	}

	if lo.Contains(ch.Members, identity) {
		return nil
	}
	ch.Members = append(ch.Members, identity)
	if err := tx.Put(key, ch); err != nil {
		return fmt.Errorf("channel: update %s: %w", channelID, err)
	}
	return nil
}
