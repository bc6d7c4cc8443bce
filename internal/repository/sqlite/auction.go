package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"auctionbazaar/internal/domain"
)

// AuctionRepository implements domain.AuctionRepository using SQLite.
type AuctionRepository struct {
	db *sql.DB
}

func (r *AuctionRepository) Create(ctx context.Context, auction *domain.Auction) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO auctions (title, description, start_price, current_price, end_time, seller_id, image_url, created_at)
		 VALUES (?, ?, ?, NULL, ?, ?, ?, ?)`,
		auction.Title, auction.Description, auction.StartPrice,
		auction.EndTime.UTC(), auction.SellerID, nullString(auction.ImageURL), now,
	)
	if err != nil {
		return fmt.Errorf("insert auction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	auction.ID = id
	auction.CurrentPrice = nil
	auction.CreatedAt = now
	return nil
}

func (r *AuctionRepository) GetByID(ctx context.Context, id int64) (*domain.Auction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, start_price, current_price, end_time, seller_id, image_url, created_at
		 FROM auctions WHERE id = ?`, id,
	)

	auction, err := scanAuction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query auction by id: %w", err)
	}
	return auction, nil
}

func (r *AuctionRepository) List(ctx context.Context) ([]domain.Auction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, description, start_price, current_price, end_time, seller_id, image_url, created_at
		 FROM auctions`,
	)
	if err != nil {
		return nil, fmt.Errorf("query auctions: %w", err)
	}
	defer rows.Close()

	auctions := []domain.Auction{}
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auction: %w", err)
		}
		auctions = append(auctions, *auction)
	}
	return auctions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*domain.Auction, error) {
	auction := &domain.Auction{}
	var currentPrice sql.NullFloat64
	var imageURL sql.NullString

	err := row.Scan(
		&auction.ID, &auction.Title, &auction.Description, &auction.StartPrice,
		&currentPrice, &auction.EndTime, &auction.SellerID, &imageURL, &auction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if currentPrice.Valid {
		auction.CurrentPrice = &currentPrice.Float64
	}
	auction.ImageURL = imageURL.String
	return auction, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
