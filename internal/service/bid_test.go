package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auctionbazaar/internal/domain"
)

func TestBidService_Place_FirstBidAboveStartPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.registerUser(t, "seller@example.com")
	bidder := env.registerUser(t, "bidder@example.com")
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(24*time.Hour))

	// Equal to the start price is rejected; ties do not win.
	_, err := env.bids.Place(ctx, auction.ID, bidder.ID, 100)
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	bid, err := env.bids.Place(ctx, auction.ID, bidder.ID, 101)
	require.NoError(t, err)
	require.NotZero(t, bid.ID)

	got, err := env.auctions.Get(ctx, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CurrentPrice)
	require.Equal(t, 101.0, *got.CurrentPrice)
}

func TestBidService_Place_FloorFollowsCurrentPrice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.registerUser(t, "seller@example.com")
	bidder := env.registerUser(t, "bidder@example.com")
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(24*time.Hour))

	_, err := env.bids.Place(ctx, auction.ID, bidder.ID, 101)
	require.NoError(t, err)

	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, 101)
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, 102)
	require.NoError(t, err)

	got, err := env.auctions.Get(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, 102.0, *got.CurrentPrice)
}

func TestBidService_Place_ClosedAuction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.registerUser(t, "seller@example.com")
	bidder := env.registerUser(t, "bidder@example.com")

	// Create with a future end time, then move it into the past directly;
	// the service refuses to create already-ended auctions.
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(time.Hour))
	_, err := env.db.SqlDB.Exec("UPDATE auctions SET end_time = ? WHERE id = ?",
		time.Now().UTC().Add(-time.Minute), auction.ID)
	require.NoError(t, err)

	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, 10000)
	require.ErrorIs(t, err, domain.ErrAuctionClosed)
}

func TestBidService_Place_UnknownAuction(t *testing.T) {
	env := newTestEnv(t)
	bidder := env.registerUser(t, "bidder@example.com")

	_, err := env.bids.Place(context.Background(), 9999, bidder.ID, 1000000)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBidService_Place_UnknownBidder(t *testing.T) {
	env := newTestEnv(t)
	seller := env.registerUser(t, "seller@example.com")
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(time.Hour))

	_, err := env.bids.Place(context.Background(), auction.ID, 4242, 150)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBidService_Place_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.registerUser(t, "seller@example.com")
	bidder := env.registerUser(t, "bidder@example.com")
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(time.Hour))

	_, err := env.bids.Place(ctx, auction.ID, 0, 150)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, 0)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, -10)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBidService_ListForAuction(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seller := env.registerUser(t, "seller@example.com")
	bidder := env.registerUser(t, "bidder@example.com")
	auction := env.createAuction(t, seller.ID, 100, time.Now().Add(time.Hour))

	_, err := env.bids.Place(ctx, auction.ID, bidder.ID, 110)
	require.NoError(t, err)
	_, err = env.bids.Place(ctx, auction.ID, bidder.ID, 120)
	require.NoError(t, err)

	bids, err := env.bids.ListForAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	require.Equal(t, 110.0, bids[0].Amount)
	require.Equal(t, 120.0, bids[1].Amount)
}

func TestBidService_ListForAuction_UnknownAuction(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.bids.ListForAuction(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
