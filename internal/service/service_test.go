package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/repository/localfs"
	"auctionbazaar/internal/repository/sqlite"
	"auctionbazaar/internal/service"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests-0123456789"
	// Cost 4 keeps the hashing fast in tests.
	testBcryptCost   = 4
	testMaxImageSize = 1 << 20
)

type testEnv struct {
	db    *sqlite.DB
	files *localfs.Store
	dir   string

	auth     *service.AuthService
	auctions *service.AuctionService
	bids     *service.BidService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(context.Background()))
	t.Cleanup(func() { db.Close() })

	dir := filepath.Join(t.TempDir(), "uploads")
	files, err := localfs.New(dir)
	require.NoError(t, err)

	return &testEnv{
		db:       db,
		files:    files,
		dir:      dir,
		auth:     service.NewAuthService(db.Users(), testJWTSecret, time.Hour, testBcryptCost),
		auctions: service.NewAuctionService(db.Auctions(), db.Users(), files, testMaxImageSize),
		bids:     service.NewBidService(db.Bids(), db.Auctions(), db.Users()),
	}
}

func (e *testEnv) registerUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), email, "password123", "Test User")
	require.NoError(t, err)
	return user
}

func (e *testEnv) createAuction(t *testing.T, sellerID int64, startPrice float64, endTime time.Time) *domain.Auction {
	t.Helper()
	auction, err := e.auctions.Create(context.Background(), service.CreateAuctionInput{
		Title:       "Vintage Lamp",
		Description: "Still works",
		StartPrice:  startPrice,
		EndTime:     endTime,
		SellerID:    sellerID,
	})
	require.NoError(t, err)
	return auction
}
