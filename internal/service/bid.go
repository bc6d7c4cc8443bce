package service

import (
	"context"
	"errors"
	"fmt"

	"auctionbazaar/internal/domain"
)

// BidService validates and records bids against auctions.
type BidService struct {
	bids     domain.BidRepository
	auctions domain.AuctionRepository
	users    domain.UserRepository
}

// NewBidService creates a new BidService.
func NewBidService(bids domain.BidRepository, auctions domain.AuctionRepository, users domain.UserRepository) *BidService {
	return &BidService{bids: bids, auctions: auctions, users: users}
}

// Place accepts a bid if the auction exists, is still open, and the
// amount strictly exceeds the floor price (current price if set,
// otherwise start price). Ties lose. The state checks and both writes
// run inside one repository transaction, so the recorded bid and the
// auction's current price cannot diverge under concurrent bidding.
func (s *BidService) Place(ctx context.Context, auctionID, bidderID int64, amount float64) (*domain.Bid, error) {
	if bidderID <= 0 {
		return nil, fmt.Errorf("%w: bidder id is required", domain.ErrInvalidInput)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be greater than zero", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, bidderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: bidder %d does not exist", domain.ErrInvalidInput, bidderID)
		}
		return nil, fmt.Errorf("get bidder: %w", err)
	}

	bid := &domain.Bid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		Amount:    amount,
	}

	if err := s.bids.Place(ctx, bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// ListForAuction returns the auction's bids in acceptance order.
func (s *BidService) ListForAuction(ctx context.Context, auctionID int64) ([]domain.Bid, error) {
	if _, err := s.auctions.GetByID(ctx, auctionID); err != nil {
		return nil, err
	}
	return s.bids.ListByAuction(ctx, auctionID)
}
