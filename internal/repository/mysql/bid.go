package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auctionbazaar/internal/domain"
)

// BidRepository implements domain.BidRepository using MySQL.
type BidRepository struct {
	db *sql.DB
}

// Place runs the whole accept-bid sequence in one transaction. The
// SELECT ... FOR UPDATE takes a row lock on the auction, so concurrent
// bidders for the same auction serialize on the floor-price check and a
// losing bid can never overwrite a higher accepted one.
func (r *BidRepository) Place(ctx context.Context, bid *domain.Bid) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var auction domain.Auction
	var currentPrice sql.NullFloat64
	err = tx.QueryRowContext(ctx,
		`SELECT start_price, current_price, end_time FROM auctions WHERE id = ? FOR UPDATE`,
		bid.AuctionID,
	).Scan(&auction.StartPrice, &currentPrice, &auction.EndTime)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("query auction: %w", err)
	}
	if currentPrice.Valid {
		auction.CurrentPrice = &currentPrice.Float64
	}

	now := time.Now().UTC()
	if auction.Closed(now) {
		return domain.ErrAuctionClosed
	}

	if floor := auction.FloorPrice(); bid.Amount <= floor {
		return fmt.Errorf("%w: current price is %.2f", domain.ErrBidTooLow, floor)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO bids (auction_id, bidder_id, amount, created_at) VALUES (?, ?, ?, ?)`,
		bid.AuctionID, bid.BidderID, bid.Amount, now,
	)
	if err != nil {
		return fmt.Errorf("insert bid: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE auctions SET current_price = ? WHERE id = ?`,
		bid.Amount, bid.AuctionID,
	); err != nil {
		return fmt.Errorf("update current price: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	bid.ID = id
	bid.CreatedAt = now
	return nil
}

func (r *BidRepository) ListByAuction(ctx context.Context, auctionID int64) ([]domain.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, auction_id, bidder_id, amount, created_at
		 FROM bids WHERE auction_id = ? ORDER BY id`,
		auctionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bids: %w", err)
	}
	defer rows.Close()

	bids := []domain.Bid{}
	for rows.Next() {
		var bid domain.Bid
		if err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.BidderID, &bid.Amount, &bid.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bid: %w", err)
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
