package handler

import (
	"time"

	"auctionbazaar/internal/domain"
)

// UserDTO is the JSON representation of a user. The password hash never
// leaves the server.
type UserDTO struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func toUserDTO(u *domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

// AuctionDTO is the JSON representation of an auction. current_price is
// null until the first accepted bid; image_url is null when no image
// was uploaded.
type AuctionDTO struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	StartPrice   float64  `json:"start_price"`
	CurrentPrice *float64 `json:"current_price"`
	EndTime      string   `json:"end_time"`
	SellerID     int64    `json:"seller_id"`
	ImageURL     *string  `json:"image_url"`
	CreatedAt    string   `json:"created_at"`
}

func toAuctionDTO(a *domain.Auction) AuctionDTO {
	dto := AuctionDTO{
		ID:           a.ID,
		Title:        a.Title,
		Description:  a.Description,
		StartPrice:   a.StartPrice,
		CurrentPrice: a.CurrentPrice,
		EndTime:      a.EndTime.Format(time.RFC3339),
		SellerID:     a.SellerID,
		CreatedAt:    a.CreatedAt.Format(time.RFC3339),
	}
	if a.ImageURL != "" {
		dto.ImageURL = &a.ImageURL
	}
	return dto
}

func toAuctionDTOs(auctions []domain.Auction) []AuctionDTO {
	dtos := make([]AuctionDTO, len(auctions))
	for i := range auctions {
		dtos[i] = toAuctionDTO(&auctions[i])
	}
	return dtos
}

// BidDTO is the JSON representation of a bid.
type BidDTO struct {
	ID        int64   `json:"id"`
	AuctionID int64   `json:"auction_id"`
	BidderID  int64   `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

func toBidDTO(b *domain.Bid) BidDTO {
	return BidDTO{
		ID:        b.ID,
		AuctionID: b.AuctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

func toBidDTOs(bids []domain.Bid) []BidDTO {
	dtos := make([]BidDTO, len(bids))
	for i := range bids {
		dtos[i] = toBidDTO(&bids[i])
	}
	return dtos
}
