package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/service"
	"auctionbazaar/pkg/logger"
)

// Extra headroom for the non-file fields of a multipart request.
const multipartFormOverhead = 1 << 20

// AuctionHandler handles auction creation and listing.
type AuctionHandler struct {
	auctions     *service.AuctionService
	maxImageSize int64
	log          logger.Logger
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(auctions *service.AuctionService, maxImageSize int64, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{auctions: auctions, maxImageSize: maxImageSize, log: log}
}

// HandleCreate processes auction creation. There is exactly one creation
// endpoint; the image is an optional capability of it. A
// multipart/form-data body may carry an "image" part alongside the
// string fields; a plain JSON body creates an auction without an image.
// POST /api/auctions
// Response: 201 {"message":"...","auction":{...}}
func (h *AuctionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := h.readCreateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	auction, err := h.auctions.Create(r.Context(), *in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "All fields are required")
			return
		}
		h.log.Error("create auction", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Auction created successfully",
		"auction": toAuctionDTO(auction),
	})
}

// HandleList returns all auctions.
// GET /api/auctions
// Response: 200 [{...}, ...]
func (h *AuctionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.auctions.List(r.Context())
	if err != nil {
		h.log.Error("list auctions", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toAuctionDTOs(auctions))
}

// HandleGet returns one auction.
// GET /api/auctions/{auctionId}
// Response: 200 {...} or 404
func (h *AuctionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := auctionIDFromRequest(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Auction not found")
		return
	}

	auction, err := h.auctions.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Auction not found")
			return
		}
		h.log.Error("get auction", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}
	writeJSON(w, http.StatusOK, toAuctionDTO(auction))
}

func (h *AuctionHandler) readCreateRequest(r *http.Request) (*service.CreateAuctionInput, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		return h.readMultipartCreate(r)
	}

	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		StartPrice  float64 `json:"start_price"`
		EndTime     string  `json:"end_time"`
		SellerID    int64   `json:"seller_id"`
	}
	if err := readJSON(r, &req); err != nil {
		return nil, errors.New("Invalid request body")
	}

	endTime, err := parseEndTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	return &service.CreateAuctionInput{
		Title:       req.Title,
		Description: req.Description,
		StartPrice:  req.StartPrice,
		EndTime:     endTime,
		SellerID:    req.SellerID,
	}, nil
}

func (h *AuctionHandler) readMultipartCreate(r *http.Request) (*service.CreateAuctionInput, error) {
	if err := r.ParseMultipartForm(h.maxImageSize + multipartFormOverhead); err != nil {
		return nil, errors.New("Invalid multipart body")
	}

	in := &service.CreateAuctionInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if v := r.FormValue("start_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.New("Invalid start_price")
		}
		in.StartPrice = price
	}

	if v := r.FormValue("seller_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("Invalid seller_id")
		}
		in.SellerID = id
	}

	endTime, err := parseEndTime(r.FormValue("end_time"))
	if err != nil {
		return nil, err
	}
	in.EndTime = endTime

	file, header, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Image is optional.
	case err != nil:
		return nil, errors.New("Invalid image attachment")
	default:
		defer file.Close()
		data, err := io.ReadAll(io.LimitReader(file, h.maxImageSize+1))
		if err != nil {
			return nil, errors.New("Invalid image attachment")
		}
		in.Image = &service.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	}

	return in, nil
}

// parseEndTime accepts RFC 3339 and the HTML datetime-local format.
func parseEndTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("Invalid end_time")
}

func auctionIDFromRequest(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["auctionId"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
