// Package sqlite implements the storage interfaces over an embedded
// SQLite database. It is the default engine.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/repository/migrate"
	"auctionbazaar/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite connection and its repositories.
type DB struct {
	SqlDB *sql.DB

	users    *UserRepository
	auctions *AuctionRepository
	bids     *BidRepository
}

var _ domain.Database = (*DB)(nil)

// New opens a SQLite database at the given path and configures it for
// use. WAL mode keeps readers off the writer's back; the single-writer
// connection pool serializes every write, which is what gives bid
// placement its per-auction ordering guarantee on this engine.
func New(dbPath string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := sqlDB.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)

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

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() domain.UserRepository       { return d.users }
func (d *DB) Auctions() domain.AuctionRepository { return d.auctions }
func (d *DB) Bids() domain.BidRepository         { return d.bids }
