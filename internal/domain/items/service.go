package items

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mgrady/bidwell/internal/clock"
)

// Service errors
var (
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidStartingPrice = errors.New("starting price must be a non-negative number")
	ErrInvalidEndTime       = errors.New("end time must be in the future")
	ErrItemNotFound         = errors.New("item not found")
	ErrAuctionEnded         = errors.New("auction has ended")
	ErrBidTooLow            = errors.New("bid amount must exceed the current minimum")
)

// BidTooLowError reports a rejected bid together with the minimum a retry
// must exceed. It matches ErrBidTooLow under errors.Is.
type BidTooLowError struct {
	Minimum float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be greater than %g", e.Minimum)
}

func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}

// Service implements the core business logic for auction items: creation,
// reads with the lazy expiration check, and the check-then-bid sequence.
type Service struct {
	repo  Repository
	clock clock.Clock

	// mu serializes every sequence that can mutate the ledger, including the
	// lazy close performed on reads, so the expiration check and the bid
	// accept cannot interleave with any other operation. The in-memory
	// analog of locking the item row for the duration of the bid.
	mu sync.Mutex
}

// NewService creates a new item service
func NewService(repo Repository, clk clock.Clock) *Service {
	return &Service{repo: repo, clock: clk}
}

// CreateItem creates a new auction item
func (s *Service) CreateItem(ctx context.Context, cmd CreateItemCommand) (*Item, error) {
	if strings.TrimSpace(cmd.Title) == "" {
		return nil, ErrTitleRequired
	}

	if cmd.StartingPrice < 0 {
		return nil, ErrInvalidStartingPrice
	}

	now := s.clock.Now()
	if !cmd.EndsAt.After(now) {
		return nil, ErrInvalidEndTime
	}

	item := &Item{
		Title:         cmd.Title,
		Description:   cmd.Description,
		StartingPrice: cmd.StartingPrice,
		CurrentBid:    nil,
		BidCount:      0,
		EndsAt:        cmd.EndsAt,
		CreatedAt:     now,
		Status:        ItemStatusActive,
	}

	created, err := s.repo.CreateItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	return created, nil
}

// GetItem retrieves an item by ID, applying the lazy expiration check before
// returning it.
func (s *Service) GetItem(ctx context.Context, id string) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.checkExpiration(ctx, item)
}

// ListItems retrieves every item in creation order, applying the lazy
// expiration check to each.
func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	checked := make([]*Item, len(list))
	for i, item := range list {
		checked[i], err = s.checkExpiration(ctx, item)
		if err != nil {
			return nil, err
		}
	}
	return checked, nil
}

// PlaceBid runs the expiration check against the target item and, only if it
// is still active, forwards the bid to the ledger. The check happens strictly
// before the bid is evaluated; a bid on an item whose deadline has passed is
// rejected with ErrAuctionEnded even when no prior read had flipped its status.
func (s *Service) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.repo.GetItemByID(ctx, cmd.ItemID)
	if err != nil {
		return nil, err
	}

	item, err = s.checkExpiration(ctx, item)
	if err != nil {
		return nil, err
	}

	if item.Status != ItemStatusActive {
		return nil, ErrAuctionEnded
	}

	return s.repo.PlaceBid(ctx, cmd.ItemID, cmd.Amount)
}

// CloseExpired is the eager sweep: it walks every item, closes the active
// ones whose deadline has passed at now, and returns how many it closed.
// The caller supplies its own notion of now so the sweep and the lazy path
// can be driven by independent time sources.
func (s *Service) CloseExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list items: %w", err)
	}

	closed := 0
	for _, item := range list {
		if item.Status != ItemStatusActive || !item.Expired(now) {
			continue
		}
		if _, err := s.repo.UpdateStatus(ctx, item.ID, ItemStatusClosed); err != nil {
			return closed, fmt.Errorf("failed to close item %s: %w", item.ID, err)
		}
		closed++
	}
	return closed, nil
}

// checkExpiration applies the lazy expiration check: an active item whose
// deadline has passed is closed in the ledger before being returned. Closing
// is idempotent; re-checking a closed item is a no-op. Callers hold s.mu.
func (s *Service) checkExpiration(ctx context.Context, item *Item) (*Item, error) {
	if item.Status == ItemStatusActive && item.Expired(s.clock.Now()) {
		updated, err := s.repo.UpdateStatus(ctx, item.ID, ItemStatusClosed)
		if err != nil {
			return nil, fmt.Errorf("failed to close expired item %s: %w", item.ID, err)
		}
		return updated, nil
	}
	return item, nil
}
