package domain

import (
	"context"
	"time"
)

// Auction is a single listing. CurrentPrice is nil until the first
// accepted bid; after that it always equals the amount of the most
// recently accepted bid.
type Auction struct {
	ID           int64
	Title        string
	Description  string
	StartPrice   float64
	CurrentPrice *float64
	EndTime      time.Time
	SellerID     int64
	ImageURL     string
	CreatedAt    time.Time
}

// FloorPrice is the amount a new bid must strictly exceed: the current
// price if any bid has been accepted, otherwise the start price.
func (a *Auction) FloorPrice() float64 {
	if a.CurrentPrice != nil {
		return *a.CurrentPrice
	}
	return a.StartPrice
}

// Closed reports whether the auction has ended as of the given time.
// The open/closed state is never persisted; it is recomputed per request.
func (a *Auction) Closed(now time.Time) bool {
	return now.After(a.EndTime)
}

// AuctionRepository defines persistence operations for auctions.
type AuctionRepository interface {
	Create(ctx context.Context, auction *Auction) error
	GetByID(ctx context.Context, id int64) (*Auction, error)
	List(ctx context.Context) ([]Auction, error)
}
