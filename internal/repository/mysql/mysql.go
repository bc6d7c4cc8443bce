// Package mysql implements the storage interfaces over MySQL. Select it
// with STORAGE_DRIVER=mysql; the DSN must include parseTime=true so
// DATETIME columns scan into time.Time.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/repository/migrate"
	"auctionbazaar/internal/repository/mysql/migrations"
)

// Config holds connection settings for the MySQL pool.
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB wraps the MySQL connection pool and its repositories.
type DB struct {
	SqlDB *sql.DB

	users    *UserRepository
	auctions *AuctionRepository
	bids     *BidRepository
}

var _ domain.Database = (*DB)(nil)

// New opens a MySQL connection pool with the given settings.
func New(cfg Config) (*DB, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db := &DB{SqlDB: sqlDB}
	db.users = &UserRepository{db: sqlDB}
	db.auctions = &AuctionRepository{db: sqlDB}
	db.bids = &BidRepository{db: sqlDB}
	return db, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrate.Run(ctx, d.SqlDB, migrations.FS)
}

// Close closes the underlying pool.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository       { return d.users }
func (d *DB) Auctions() domain.AuctionRepository { return d.auctions }
func (d *DB) Bids() domain.BidRepository         { return d.bids }
