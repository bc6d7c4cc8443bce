package sqlite_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/repository/sqlite"
)

func hoursFromNow(h int) time.Time {
	return time.Now().UTC().Add(time.Duration(h) * time.Hour)
}

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, Name: "Test User", PasswordHash: "hash", Role: domain.RoleUser}
	require.NoError(t, db.Users().Create(context.Background(), user))
	return user
}

func createTestAuction(t *testing.T, db *sqlite.DB, sellerID int64, startPrice float64, endTime time.Time) *domain.Auction {
	t.Helper()
	auction := &domain.Auction{
		Title:       "Test Auction",
		Description: "A thing for sale",
		StartPrice:  startPrice,
		EndTime:     endTime,
		SellerID:    sellerID,
	}
	require.NoError(t, db.Auctions().Create(context.Background(), auction))
	return auction
}

func TestBidRepository_Place_FirstBid(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	bidder := createTestUser(t, db, "bidder@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	bid := &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 101}
	require.NoError(t, db.Bids().Place(ctx, bid))
	require.NotZero(t, bid.ID)
	require.False(t, bid.CreatedAt.IsZero())

	got, err := db.Auctions().GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentPrice)
	require.Equal(t, 101.0, *got.CurrentPrice)
}

func TestBidRepository_Place_FloorIsStartPriceWithoutBids(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	bidder := createTestUser(t, db, "bidder@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	// Equal to the start price loses; ties do not win.
	err := db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 100})
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	// The rejected bid must leave no trace.
	bids, err := db.Bids().ListByAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.Empty(t, bids)

	got, err := db.Auctions().GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Nil(t, got.CurrentPrice)
}

func TestBidRepository_Place_FloorMovesWithAcceptedBids(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	bidder := createTestUser(t, db, "bidder@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	require.NoError(t, db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 101}))

	err := db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 101})
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	require.NoError(t, db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 102}))

	got, err := db.Auctions().GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, 102.0, *got.CurrentPrice)
}

func TestBidRepository_Place_ClosedAuction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	bidder := createTestUser(t, db, "bidder@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, time.Now().UTC().Add(-time.Minute))

	// A generous amount does not reopen a closed auction.
	err := db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 10000})
	require.ErrorIs(t, err, domain.ErrAuctionClosed)
}

func TestBidRepository_Place_UnknownAuction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	bidder := createTestUser(t, db, "bidder@example.com")

	err := db.Bids().Place(ctx, &domain.Bid{AuctionID: 9999, BidderID: bidder.ID, Amount: 1000000})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBidRepository_Place_Concurrent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	const n = 8
	bidders := make([]*domain.User, n)
	for i := range bidders {
		bidders[i] = createTestUser(t, db, fmt.Sprintf("bidder%d@example.com", i))
	}

	// All amounts beat the start price; only some will beat the floor at
	// their serialization point. No ordering is imposed.
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bid := &domain.Bid{AuctionID: auction.ID, BidderID: bidders[i].ID, Amount: float64(101 + i)}
			errs[i] = db.Bids().Place(ctx, bid)
		}(i)
	}
	wg.Wait()

	// The only acceptable failure is losing the floor-price race.
	for i, err := range errs {
		if err != nil {
			require.ErrorIs(t, err, domain.ErrBidTooLow, "bid %d failed unexpectedly", i)
		}
	}

	// The maximum amount beats any floor, so it is always accepted and no
	// losing bid may overwrite it.
	got, err := db.Auctions().GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentPrice)
	require.Equal(t, float64(101+n-1), *got.CurrentPrice)

	// Accepted bids must be strictly increasing in acceptance order, and
	// the current price must equal the last accepted amount.
	bids, err := db.Bids().ListByAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.NotEmpty(t, bids)
	for i := 1; i < len(bids); i++ {
		require.Greater(t, bids[i].Amount, bids[i-1].Amount,
			"bid %d does not exceed its predecessor", i)
	}
	require.Equal(t, *got.CurrentPrice, bids[len(bids)-1].Amount)
}

func TestBidRepository_ListByAuction_Empty(t *testing.T) {
	db := newTestDB(t)

	seller := createTestUser(t, db, "seller@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	bids, err := db.Bids().ListByAuction(context.Background(), auction.ID)
	require.NoError(t, err)
	require.Empty(t, bids)
}

func TestBidRepository_Place_RejectedLeavesPriceUntouched(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createTestUser(t, db, "seller@example.com")
	bidder := createTestUser(t, db, "bidder@example.com")
	auction := createTestAuction(t, db, seller.ID, 100, hoursFromNow(24))

	require.NoError(t, db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 150}))

	err := db.Bids().Place(ctx, &domain.Bid{AuctionID: auction.ID, BidderID: bidder.ID, Amount: 120})
	require.True(t, errors.Is(err, domain.ErrBidTooLow))

	got, err := db.Auctions().GetByID(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, 150.0, *got.CurrentPrice)

	bids, err := db.Bids().ListByAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 1)
}
