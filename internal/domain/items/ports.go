package items

import "context"

// Repository defines the interface for the item ledger. It is the only
// component that mutates auction state; everything else goes through it.
type Repository interface {
	// CreateItem assigns a fresh id to the item and inserts it
	CreateItem(ctx context.Context, item *Item) (*Item, error)

	// GetItemByID retrieves an item by its ID
	GetItemByID(ctx context.Context, id string) (*Item, error)

	// ListItems retrieves every item in creation order
	ListItems(ctx context.Context) ([]*Item, error)

	// UpdateStatus updates an item's status. The active -> closed transition
	// is one-way: a closed item never goes back to active.
	UpdateStatus(ctx context.Context, id string, status ItemStatus) (*Item, error)

	// PlaceBid records a bid when it strictly exceeds the item's minimum
	// acceptable bid. It does not look at the item's status; callers must
	// run the expiration check first.
	PlaceBid(ctx context.Context, id string, amount float64) (*Item, error)

	// Clear empties the ledger and resets id generation. Test utility.
	Clear(ctx context.Context) error
}
