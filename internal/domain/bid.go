package domain

import (
	"context"
	"time"
)

// Bid is an accepted bid. Bids are append-only and never mutated.
type Bid struct {
	ID        int64
	AuctionID int64
	BidderID  int64
	Amount    float64
	CreatedAt time.Time
}

// BidRepository defines persistence operations for bids.
type BidRepository interface {
	// Place records the bid and updates the auction's current price as a
	// single transaction. The auction row is read, checked, and written
	// under the engine's locking discipline, so two concurrent bidders can
	// never both pass the floor-price check against a stale price.
	//
	// Returns ErrNotFound if the auction does not exist, ErrAuctionClosed
	// if its end time has passed, and ErrBidTooLow if the amount does not
	// strictly exceed the floor price. On success the bid's ID and
	// CreatedAt are filled in.
	Place(ctx context.Context, bid *Bid) error

	ListByAuction(ctx context.Context, auctionID int64) ([]Bid, error)
}
