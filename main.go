package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"auctionbazaar/internal/config"
	"auctionbazaar/internal/domain"
	"auctionbazaar/internal/handler"
	"auctionbazaar/internal/repository/localfs"
	"auctionbazaar/internal/repository/mysql"
	"auctionbazaar/internal/repository/sqlite"
	"auctionbazaar/internal/service"
	"auctionbazaar/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level)

	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatal("failed to open database", "driver", cfg.Storage.Driver, "error", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal("failed to run migrations", "error", err)
	}
	log.Info("database migrations applied", "driver", cfg.Storage.Driver)

	files, err := localfs.New(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("failed to prepare upload directory", "error", err)
	}

	authService := service.NewAuthService(db.Users(), cfg.JWT.Secret, cfg.JWT.Expiry, cfg.Auth.BcryptCost)
	auctionService := service.NewAuctionService(db.Auctions(), db.Users(), files, cfg.Uploads.MaxImageSize)
	bidService := service.NewBidService(db.Bids(), db.Auctions(), db.Users())

	router := handler.NewRouter(authService, auctionService, bidService, files.Root(), cfg.Uploads.MaxImageSize, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown error", "error", err)
	}
	log.Info("server stopped")
}

func openDatabase(cfg *config.Config) (domain.Database, error) {
	switch cfg.Storage.Driver {
	case config.DriverMySQL:
		return mysql.New(mysql.Config{
			DSN:             cfg.MySQL.DSN,
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
		})
	default:
		return sqlite.New(cfg.SQLite.Path)
	}
}
