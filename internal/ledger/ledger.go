package ledger

import (
	"errors"
	"fmt"
)

// ErrStoreClosed is returned for transactions started after Close.
var ErrStoreClosed = errors.New("ledger store closed")

// ReadTx is the read-only view of the ledger state within a transaction.
type ReadTx interface {
	// Get unmarshals the value stored under key into out and reports whether
	// the key exists.
	Get(key string, out any) (bool, error)
	// List invokes each for every record of the given object type. Iteration
	// stops at the first error, which is returned.
	List(objectType string, each func(key string, raw []byte) error) error
}

// Tx extends ReadTx with writes. Writes become visible to other transactions
// only when the enclosing Update commits; if the transaction function returns
// an error, every write is discarded.
type Tx interface {
	ReadTx
	// Put stores val under key, overwriting any previous value.
	Put(key string, val any) error
}

// Store is the key-value state store the auction core runs against. Every
// transaction is serializable: no two concurrent transactions may interleave
// a read and a later write to the same key. That single guarantee is what
// linearizes concurrent bids and makes the first-admin bootstrap race safe.
type Store interface {
	// Update runs fn in a serializable read-write transaction. All writes
	// commit atomically iff fn returns nil.
	Update(fn func(tx Tx) error) error
	// View runs fn in a read-only transaction.
	View(fn func(tx ReadTx) error) error
}

// Key builds the composite ledger key for a record of the given object type.
func Key(objectType, id string) string {
	return fmt.Sprintf("%s:%s", objectType, id)
}
