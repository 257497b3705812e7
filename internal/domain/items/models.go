package items

import "time"

// ItemStatus represents the lifecycle state of an auction item
type ItemStatus string

const (
	ItemStatusActive ItemStatus = "active"
	ItemStatusClosed ItemStatus = "closed"
)

// Item represents one auction listing
type Item struct {
	ID            string
	Title         string
	Description   string
	StartingPrice float64
	CurrentBid    *float64 // nil until the first accepted bid
	BidCount      int
	EndsAt        time.Time
	CreatedAt     time.Time
	Status        ItemStatus
}

// MinimumBid returns the amount a new bid must strictly exceed: the current
// high bid when one exists, otherwise the starting price.
func (i *Item) MinimumBid() float64 {
	if i.CurrentBid != nil {
		return *i.CurrentBid
	}
	return i.StartingPrice
}

// Expired reports whether the item's deadline has passed at now.
// The boundary is inclusive: an item whose deadline equals now is expired.
func (i *Item) Expired(now time.Time) bool {
	return !now.Before(i.EndsAt)
}

// Clone returns an independent copy of the item, including its bid pointer.
func (i *Item) Clone() *Item {
	c := *i
	if i.CurrentBid != nil {
		bid := *i.CurrentBid
		c.CurrentBid = &bid
	}
	return &c
}

// CreateItemCommand represents the command to create a new item
type CreateItemCommand struct {
	Title         string
	Description   string
	StartingPrice float64
	EndsAt        time.Time
}

// PlaceBidCommand represents the command to place a bid on an item
type PlaceBidCommand struct {
	ItemID   string
	BidderID string
	Amount   float64
}
