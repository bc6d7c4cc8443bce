package handler

import (
	"errors"
	"net/http"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/service"
	"auctionbazaar/pkg/logger"
)

// BidHandler handles bid placement and the per-auction bid history.
type BidHandler struct {
	bids *service.BidService
	log  logger.Logger
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bids *service.BidService, log logger.Logger) *BidHandler {
	return &BidHandler{bids: bids, log: log}
}

// HandleCreate places a bid on an auction.
// POST /api/auctions/{auctionId}/bids
// Request:  {"bidder_id":1,"amount":101}
// Response: 201 {"message":"...","bid":{...}}, 404 for an unknown
// auction, 400 when the auction has ended or the amount does not beat
// the current price.
func (h *BidHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := auctionIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Auction not found")
		return
	}

	var req struct {
		BidderID int64   `json:"bidder_id"`
		Amount   float64 `json:"amount"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bid, err := h.bids.Place(r.Context(), auctionID, req.BidderID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Auction not found")
		case errors.Is(err, domain.ErrAuctionClosed):
			writeError(w, http.StatusBadRequest, "Auction has ended")
		case errors.Is(err, domain.ErrBidTooLow):
			writeError(w, http.StatusBadRequest, "Bid amount must be higher than current price")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "All fields are required")
		default:
			h.log.Error("place bid", "error", err, "auction_id", auctionID)
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Bid placed successfully",
		"bid":     toBidDTO(bid),
	})
}

// HandleList returns an auction's bids in acceptance order.
// GET /api/auctions/{auctionId}/bids
// Response: 200 [{...}, ...] or 404
func (h *BidHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	auctionID, ok := auctionIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Auction not found")
		return
	}

	bids, err := h.bids.ListForAuction(r.Context(), auctionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Auction not found")
			return
		}
		h.log.Error("list bids", "error", err, "auction_id", auctionID)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toBidDTOs(bids))
}
