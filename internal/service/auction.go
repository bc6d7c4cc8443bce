package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"auctionbazaar/internal/domain"
)

// ImageUpload is an optional image attachment on auction creation.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateAuctionInput carries the fields for a new auction.
type CreateAuctionInput struct {
	Title       string
	Description string
	StartPrice  float64
	EndTime     time.Time
	SellerID    int64
	Image       *ImageUpload
}

// AuctionService creates and lists auctions.
type AuctionService struct {
	auctions     domain.AuctionRepository
	users        domain.UserRepository
	files        domain.FileStore
	maxImageSize int64
}

// NewAuctionService creates a new AuctionService.
func NewAuctionService(auctions domain.AuctionRepository, users domain.UserRepository, files domain.FileStore, maxImageSize int64) *AuctionService {
	return &AuctionService{
		auctions:     auctions,
		users:        users,
		files:        files,
		maxImageSize: maxImageSize,
	}
}

// Create validates the input, verifies the seller exists, stores the
// optional image, and inserts the auction with no current price. The
// image file is written before the row; if the insert fails the file is
// removed best-effort so no orphan remains.
func (s *AuctionService) Create(ctx context.Context, in CreateAuctionInput) (*domain.Auction, error) {
	if in.Title == "" || in.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", domain.ErrInvalidInput)
	}
	if in.StartPrice <= 0 {
		return nil, fmt.Errorf("%w: start price must be greater than zero", domain.ErrInvalidInput)
	}
	if in.EndTime.IsZero() {
		return nil, fmt.Errorf("%w: end time is required", domain.ErrInvalidInput)
	}
	if !in.EndTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: end time must be in the future", domain.ErrInvalidInput)
	}
	if in.SellerID <= 0 {
		return nil, fmt.Errorf("%w: seller id is required", domain.ErrInvalidInput)
	}

	if _, err := s.users.GetByID(ctx, in.SellerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: seller %d does not exist", domain.ErrInvalidInput, in.SellerID)
		}
		return nil, fmt.Errorf("get seller: %w", err)
	}

	var imageName, imageURL string
	if in.Image != nil {
		name, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		imageName = name
		imageURL = "/uploads/" + name
	}

	auction := &domain.Auction{
		Title:       in.Title,
		Description: in.Description,
		StartPrice:  in.StartPrice,
		EndTime:     in.EndTime,
		SellerID:    in.SellerID,
		ImageURL:    imageURL,
	}

	if err := s.auctions.Create(ctx, auction); err != nil {
		if imageName != "" {
			// Best-effort cleanup of the stored file.
			s.files.Delete(ctx, imageName)
		}
		return nil, fmt.Errorf("create auction: %w", err)
	}

	return auction, nil
}

// List returns all auctions in storage-native order.
func (s *AuctionService) List(ctx context.Context) ([]domain.Auction, error) {
	return s.auctions.List(ctx)
}

// Get returns one auction by ID.
func (s *AuctionService) Get(ctx context.Context, id int64) (*domain.Auction, error) {
	return s.auctions.GetByID(ctx, id)
}

func (s *AuctionService) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	if img.ContentType != "image/jpeg" && img.ContentType != "image/png" {
		return "", fmt.Errorf("%w: only JPEG and PNG images are accepted", domain.ErrInvalidInput)
	}
	if int64(len(img.Data)) > s.maxImageSize {
		return "", fmt.Errorf("%w: image exceeds %d byte limit", domain.ErrInvalidInput, s.maxImageSize)
	}

	name := storedImageName(img.Filename)
	if err := s.files.Save(ctx, name, img.Data); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// storedImageName builds a collision-resistant file name from a
// millisecond timestamp prefix and the sanitized original name.
func storedImageName(original string) string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(original))
}

func sanitizeFilename(name string) string {
	// Strip any path the client sent, keep only safe characters.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}
