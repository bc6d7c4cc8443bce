package domain

import "context"

// Database bundles the repositories of one storage engine together with
// its lifecycle operations. Each implementation (SQLite, MySQL) owns its
// own migration files and strategy, so the entire backend is swappable
// through configuration.
type Database interface {
	Users() UserRepository
	Auctions() AuctionRepository
	Bids() BidRepository
	Migrate(ctx context.Context) error
	Close() error
}

// FileStore persists uploaded files under a flat, collision-resistant
// name. Implementations store only bytes; callers keep the reference.
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}
