package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/handlers"
	custommiddleware "github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/middleware"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/config"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	analyticsService *service.AnalyticsService,
	priceService *service.PriceService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/portfolio", func(r chi.Router) {
			rebalanceHandler := handlers.NewRebalanceHandler()
			returnsHandler := handlers.NewReturnsHandler(analyticsService)
			r.Post("/rebalance", rebalanceHandler.Rebalance)
			r.Post("/returns", returnsHandler.Returns)
			r.Post("/performance", returnsHandler.Performance)
		})

		r.Route("/prices", func(r chi.Router) {
			priceHandler := handlers.NewPriceHandler(priceService)
			r.Get("/{ticker}", priceHandler.History)
			r.Post("/refresh", priceHandler.Refresh)
		})

		r.Route("/settings", func(r chi.Router) {
			settingHandler := handlers.NewSettingHandler(priceService)
			r.Put("/quote-token", settingHandler.SetQuoteToken)
		})
	})

	return r
}
