package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"auctionbazaar/internal/service"
	"auctionbazaar/pkg/logger"
)

// NewRouter builds the full HTTP surface: the JSON API under /api, the
// health check, and the public upload directory.
func NewRouter(
	auth *service.AuthService,
	auctions *service.AuctionService,
	bids *service.BidService,
	uploadsDir string,
	maxImageSize int64,
	log logger.Logger,
) *mux.Router {
	authHandler := NewAuthHandler(auth, log)
	auctionHandler := NewAuctionHandler(auctions, maxImageSize, log)
	bidHandler := NewBidHandler(bids, log)

	r := mux.NewRouter()
	r.Use(RequestLogger(log), Recover(log))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", authHandler.HandleRegister).Methods(http.MethodPost)
	api.HandleFunc("/login", authHandler.HandleLogin).Methods(http.MethodPost)
	api.HandleFunc("/me", authHandler.HandleMe).Methods(http.MethodGet)
	api.HandleFunc("/auctions", auctionHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/auctions", auctionHandler.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{auctionId}", auctionHandler.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/auctions/{auctionId}/bids", bidHandler.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/auctions/{auctionId}/bids", bidHandler.HandleList).Methods(http.MethodGet)

	r.HandleFunc("/healthz", HandleHealthz).Methods(http.MethodGet)

	// Uploaded images are public by path.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))),
	)

	return r
}
