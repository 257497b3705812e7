// Package store provides the in-memory ledger backing the item service.
// It is the authoritative owner of all auction state: every read returns an
// independent copy, so no caller ever holds a competing mutable reference
// into the backing map.
package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/mgrady/bidwell/internal/domain/items"
)

// make sure MemoryLedger implements the repository port
var _ items.Repository = (*MemoryLedger)(nil)

// MemoryLedger is an identifier-keyed in-process store of auction items.
// IDs are monotonically increasing per process lifetime and rendered as
// decimal strings. Creation order is preserved for enumeration.
type MemoryLedger struct {
	mu     sync.RWMutex
	items  map[string]*items.Item
	order  []string
	nextID int64
}

// NewMemoryLedger creates an empty ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		items: make(map[string]*items.Item),
	}
}

// CreateItem assigns a fresh id to the item and inserts a copy of it.
func (l *MemoryLedger) CreateItem(ctx context.Context, item *items.Item) (*items.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.nextID++
	stored := item.Clone()
	stored.ID = strconv.FormatInt(l.nextID, 10)

	l.items[stored.ID] = stored
	l.order = append(l.order, stored.ID)

	return stored.Clone(), nil
}

// GetItemByID retrieves an item by its ID.
func (l *MemoryLedger) GetItemByID(ctx context.Context, id string) (*items.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	item, ok := l.items[id]
	if !ok {
		return nil, items.ErrItemNotFound
	}
	return item.Clone(), nil
}

// ListItems retrieves every item in creation order.
func (l *MemoryLedger) ListItems(ctx context.Context) ([]*items.Item, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	list := make([]*items.Item, 0, len(l.order))
	for _, id := range l.order {
		list = append(list, l.items[id].Clone())
	}
	return list, nil
}

// UpdateStatus updates an item's status. The active -> closed transition is
// one-way: an attempt to reopen a closed item is a no-op returning the item
// unchanged.
func (l *MemoryLedger) UpdateStatus(ctx context.Context, id string, status items.ItemStatus) (*items.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[id]
	if !ok {
		return nil, items.ErrItemNotFound
	}

	if item.Status == items.ItemStatusClosed && status == items.ItemStatusActive {
		return item.Clone(), nil
	}

	item.Status = status
	return item.Clone(), nil
}

// PlaceBid records a bid when it strictly exceeds the item's minimum
// acceptable bid; otherwise it rejects without mutating the item. Status is
// deliberately not consulted here: the expiration check belongs to the
// caller and must run before the bid is evaluated.
func (l *MemoryLedger) PlaceBid(ctx context.Context, id string, amount float64) (*items.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[id]
	if !ok {
		return nil, items.ErrItemNotFound
	}

	if min := item.MinimumBid(); amount <= min {
		return nil, &items.BidTooLowError{Minimum: min}
	}

	bid := amount
	item.CurrentBid = &bid
	item.BidCount++

	return item.Clone(), nil
}

// Clear empties the ledger and resets id generation.
func (l *MemoryLedger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = make(map[string]*items.Item)
	l.order = nil
	l.nextID = 0
	return nil
}
