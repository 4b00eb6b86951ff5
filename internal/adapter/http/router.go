package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fleetpay/walletledger/internal/adapter/http/handler"
	"github.com/fleetpay/walletledger/internal/adapter/http/middleware"
	"github.com/fleetpay/walletledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	HolderHandler     *handler.HolderHandler
	TransferHandler   *handler.TransferHandler
	EntryHandler      *handler.EntryHandler
	WithdrawalHandler *handler.WithdrawalHandler
	LedgerHandler     *handler.LedgerHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	r.Use(middleware.Actor)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotency := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore).WithTTL(cfg.IdempotencyTTL)
			r.Use(idempotency.Wrap)
		}

		// Holders
		r.Route("/holders", func(r chi.Router) {
			r.Post("/", cfg.HolderHandler.Create)
			r.Get("/", cfg.HolderHandler.List)
			r.Get("/{id}", cfg.HolderHandler.Get)
			r.Post("/{id}/debit", cfg.TransferHandler.Debit)
			r.Post("/{id}/credit", cfg.TransferHandler.Credit)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByHolder)
			r.Get("/{id}/transfers", cfg.TransferHandler.ListByHolder)
			r.Get("/{id}/withdrawals", cfg.WithdrawalHandler.ListByHolder)
			r.Get("/{id}/reconciliation", cfg.LedgerHandler.ReconcileHolder)
		})

		// Transfers
		r.Route("/transfers", func(r chi.Router) {
			r.Post("/", cfg.TransferHandler.Create)
			r.Get("/{id}", cfg.TransferHandler.Get)
			r.Post("/{id}/reverse", cfg.TransferHandler.Reverse)
			r.Get("/{id}/entries", cfg.EntryHandler.ListByTransfer)
		})

		// Entries
		r.Route("/entries", func(r chi.Router) {
			r.Patch("/{id}/status", cfg.EntryHandler.UpdateStatus)
		})

		// Withdrawals
		r.Route("/withdrawals", func(r chi.Router) {
			r.Post("/", cfg.WithdrawalHandler.Request)
			r.Get("/{id}", cfg.WithdrawalHandler.Get)
			r.Post("/{id}/approve", cfg.WithdrawalHandler.Approve)
			r.Post("/{id}/reject", cfg.WithdrawalHandler.Reject)
		})

		// Ledger
		r.Get("/ledger/conservation", cfg.LedgerHandler.CheckConservation)
	})

	return r
}
