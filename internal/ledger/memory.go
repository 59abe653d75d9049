package ledger

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// Records are kept JSON-encoded, keyed by "<type>:<id>". A single RWMutex is
// held for the whole transaction, which gives each Update serializable
// read-modify-write semantics without per-key versioning.
type MemoryStore struct {
	mu     sync.RWMutex
	state  map[string][]byte
	closed bool
}

// NewMemoryStore creates a new in-memory store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: make(map[string][]byte),
	}
}

// Update runs fn under the write lock. Writes are staged in a private map and
// merged into the shared state only if fn succeeds, so a failed transaction
// commits nothing.
func (s *MemoryStore) Update(fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx := &memoryTx{state: s.state, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}

	for k, v := range tx.staged {
		s.state[k] = v
	}
	return nil
}

// View runs fn under the read lock.
func (s *MemoryStore) View(fn func(tx ReadTx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}
	return fn(&memoryTx{state: s.state})
}

// Close rejects all further transactions.
func (s *MemoryStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// memoryTx overlays staged writes on the committed state. Reads see the
// transaction's own writes.
type memoryTx struct {
	state  map[string][]byte
	staged map[string][]byte
}

func (tx *memoryTx) Get(key string, out any) (bool, error) {
	raw, ok := tx.staged[key]
	if !ok {
		raw, ok = tx.state[key]
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("ledger: decode %s: %w", key, err)
	}
	return true, nil
}

func (tx *memoryTx) Put(key string, val any) error {
	if tx.staged == nil {
		return fmt.Errorf("ledger: put %s: transaction is read-only", key)
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("ledger: encode %s: %w", key, err)
	}
	tx.staged[key] = raw
	return nil
}

func (tx *memoryTx) List(objectType string, each func(key string, raw []byte) error) error {
	prefix := objectType + ":"

	keys := make([]string, 0)
	for k := range tx.state {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	for k := range tx.staged {
		if strings.HasPrefix(k, prefix) {
			if _, committed := tx.state[k]; !committed {
				keys = append(keys, k)
			}
		}
	}
	// Deterministic iteration order, the same on every replica.
	sort.Strings(keys)

	for _, k := range keys {
		raw, ok := tx.staged[k]
		if !ok {
			raw = tx.state[k]
		}
		if err := each(k, raw); err != nil {
			return err
		}
	}
	return nil
}
