// Package access implements the administrator registry: bootstrap of the very
// first administrator and admin-gated enrollment of every later one.
package access

import (
	"fmt"

	"silent-auction/internal/auctionerrors"
	"silent-auction/internal/ledger"
	"silent-auction/internal/models"
)

// IsFirstAdmin reports whether the administrator set is still empty. This is
// the bootstrap escape hatch: while it holds, anyone may enroll the first
// administrator.
func IsFirstAdmin(tx ledger.ReadTx) (bool, error) {
	empty := true
	err := tx.List(models.TypeAdmin, func(string, []byte) error {
		empty = false
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("access: scan administrators: %w", err)
	}
	return empty, nil
}

// IsAdmin reports whether identity is an enrolled administrator.
func IsAdmin(tx ledger.ReadTx, identity string) (bool, error) {
	var admin models.Admin
	found, err := tx.Get(ledger.Key(models.TypeAdmin, identity), &admin)
	if err != nil {
		return false, fmt.Errorf("access: lookup administrator %s: %w", identity, err)
	}
	return found, nil
}

// Enroll registers newIdentity as an administrator. The requester must either
// be enrolling against an empty administrator set (bootstrap) or already be an
// administrator. Both the permission check and the duplicate check run inside
// the caller's transaction, so two concurrent bootstrap attempts cannot both
// succeed.
func Enroll(tx ledger.Tx, requester, newIdentity string) (models.Admin, error) {
	if newIdentity == "" {
		return models.Admin{}, fmt.Errorf("access: empty administrator identity: %w", auctionerrors.ErrInvalidRequest)
	}

	first, err := IsFirstAdmin(tx)
	if err != nil {
		return models.Admin{}, err
	}
	if !first {
		requesterIsAdmin, err := IsAdmin(tx, requester)
		if err != nil {
			return models.Admin{}, err
		}
		if !requesterIsAdmin {
			return models.Admin{}, fmt.Errorf("access: %s may not enroll administrators: %w", requester, auctionerrors.ErrPermissionDenied)
		}
	}

	exists, err := IsAdmin(tx, newIdentity)
	if err != nil {
		return models.Admin{}, err
	}
	if exists {
		return models.Admin{}, fmt.Errorf("access: %s: %w", newIdentity, auctionerrors.ErrAdminExists)
	}

	admin := models.Admin{
		ObjectType: models.TypeAdmin,
		Identity:   newIdentity,
	}
	if !first {
		admin.EnrolledBy = requester
	}
	if err := tx.Put(ledger.Key(models.TypeAdmin, newIdentity), admin); err != nil {
		return models.Admin{}, fmt.Errorf("access: enroll %s: %w", newIdentity, err)
	}
	return admin, nil
}
