package auctionerrors

import "errors"

// Visibility errors. ErrNoAccess deliberately covers both "does not exist" and
// "exists in a silent channel the caller is not a member of" — callers must not
// be able to tell the two apart.
var (
	ErrNoAccess = errors.New("auction not found or not accessible")
)

// Authorization and state errors
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAuctionClosed    = errors.New("auction already closed")
	ErrAdminExists      = errors.New("administrator already enrolled")
)

// Request validation errors
var (
	ErrBidTooLow      = errors.New("bid amount too low")
	ErrInvalidRequest = errors.New("invalid request")
)
